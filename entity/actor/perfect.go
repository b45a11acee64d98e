package actor

import (
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"

	"github.com/drivora/sandbox-go/entity"
)

// 朝向偏差小于该阈值时不再转动
const headingEpsilon = 1e-4

// PerfectVehicle 完美跟踪车辆
// 说明：控制量直接给定期望加速度与期望朝向，朝向在一个tick内收敛；
// 快照中的加速度标量不回写（保持0）
type PerfectVehicle struct {
	base
	control MotionControl
}

func newPerfectVehicle(bp *Blueprint, id string, loc entity.Location) Actor {
	p := &PerfectVehicle{base: newBase(bp, id, loc)}
	p.control = MotionControl{Heading: p.loc.Yaw}
	return p
}

// SetMotionControl 设置控制指令，下一tick生效
func (p *PerfectVehicle) SetMotionControl(control MotionControl) { p.control = control }

// MotionControl 返回当前控制指令
func (p *PerfectVehicle) MotionControl() MotionControl { return p.control }

// Tick 推进一个步长
// 功能：速度沿期望加速度积分，朝向直接向期望值收敛
// 参数：dt-步长（秒）
// 算法说明：
// 1. accel=clamp(期望加速度, -|maxDec|, |maxAcc|)
// 2. nextSpeed=max(0, speed+accel*dt)，位移用前后速度均值积分
// 3. Δ=norm(期望朝向-yaw)，|Δ|<1e-4时角速度为0，否则为Δ/dt
// 4. 先更新朝向，再沿新朝向积分位置
func (p *PerfectVehicle) Tick(dt float64) {
	accel := lo.Clamp(p.control.Acceleration,
		-math.Abs(p.bp.MaxDeceleration), math.Abs(p.bp.MaxAcceleration))
	nextSpeed := math.Max(0, p.speed+accel*dt)
	avgSpeed := (p.speed + nextSpeed) / 2
	deltaHeading := entity.NormalizeAngle(p.control.Heading - p.loc.Yaw)
	angularSpeed := 0.0
	if math.Abs(deltaHeading) >= headingEpsilon {
		angularSpeed = deltaHeading / dt
	}
	p.loc.Yaw = entity.NormalizeAngle(p.loc.Yaw + angularSpeed*dt)
	p.loc.X += avgSpeed * math.Cos(p.loc.Yaw) * dt
	p.loc.Y += avgSpeed * math.Sin(p.loc.Yaw) * dt
	p.speed = nextSpeed
	p.angularSpeed = angularSpeed
}

// PolygonPoints 返回世界系下的四角footprint
func (p *PerfectVehicle) PolygonPoints() []geometry.Point {
	return p.footprint(
		p.bp.BBox.Length-p.bp.BackEdgeToCenter,
		-p.bp.BackEdgeToCenter,
		p.bp.BBox.Width/2,
	)
}

// Snapshot 导出当前状态
func (p *PerfectVehicle) Snapshot() Snapshot {
	s := p.snapshot(p.PolygonPoints())
	s.Control = p.control
	s.FrontEdgeToCenter = p.bp.FrontEdgeToCenter
	s.BackEdgeToCenter = p.bp.BackEdgeToCenter
	s.LeftEdgeToCenter = p.bp.LeftEdgeToCenter
	s.RightEdgeToCenter = p.bp.RightEdgeToCenter
	return s
}
