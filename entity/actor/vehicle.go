package actor

import (
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"

	"github.com/drivora/sandbox-go/entity"
)

// Vehicle 自行车模型车辆
// 说明：油门刹车合成纵向加速度，方向盘比例经传动比换算为前轮转角，
// 轴距决定横摆角速度；倒挡标志仅记录，不改变运动方向
type Vehicle struct {
	base
	control    VehicleControl
	steerAngle float64
}

func newVehicle(bp *Blueprint, id string, loc entity.Location) Actor {
	return &Vehicle{base: newBase(bp, id, loc)}
}

// SetVehicleControl 设置控制指令，下一tick生效
func (v *Vehicle) SetVehicleControl(control VehicleControl) { v.control = control }

// VehicleControl 返回当前控制指令
func (v *Vehicle) VehicleControl() VehicleControl { return v.control }

// SteerAngle 返回前轮转角（弧度）
func (v *Vehicle) SteerAngle() float64 { return v.steerAngle }

// Tick 按自行车模型推进一个步长
// 功能：更新速度、朝向与位置
// 参数：dt-步长（秒）
// 算法说明：
// 1. accel=clamp(throttle*maxAcc+brake*maxDec, maxDec, maxAcc)
// 2. nextSpeed=max(0, speed+accel*dt)，位移用前后速度均值积分
// 3. steerAngle=steer*maxSteerAngle/steerRatio
// 4. angularSpeed=avgSpeed*tan(steerAngle)/wheelbase
// 5. 先更新朝向，再沿新朝向积分位置
func (v *Vehicle) Tick(dt float64) {
	accel := lo.Clamp(
		v.control.Throttle*v.bp.MaxAcceleration+v.control.Brake*v.bp.MaxDeceleration,
		v.bp.MaxDeceleration, v.bp.MaxAcceleration,
	)
	nextSpeed := math.Max(0, v.speed+accel*dt)
	avgSpeed := (v.speed + nextSpeed) / 2
	steerAngle := v.control.Steer * v.bp.MaxSteerAngle / v.bp.SteerRatio
	angularSpeed := avgSpeed * math.Tan(steerAngle) / v.bp.Wheelbase
	v.loc.Yaw = entity.NormalizeAngle(v.loc.Yaw + angularSpeed*dt)
	v.loc.X += avgSpeed * math.Cos(v.loc.Yaw) * dt
	v.loc.Y += avgSpeed * math.Sin(v.loc.Yaw) * dt
	v.speed = nextSpeed
	v.acceleration = accel
	v.angularSpeed = angularSpeed
	v.steerAngle = steerAngle
}

// PolygonPoints 返回世界系下的四角footprint
func (v *Vehicle) PolygonPoints() []geometry.Point {
	return v.footprint(
		v.bp.BBox.Length-v.bp.BackEdgeToCenter,
		-v.bp.BackEdgeToCenter,
		v.bp.BBox.Width/2,
	)
}

// Snapshot 导出当前状态
func (v *Vehicle) Snapshot() Snapshot {
	s := v.snapshot(v.PolygonPoints())
	s.Control = v.control
	s.FrontEdgeToCenter = v.bp.FrontEdgeToCenter
	s.BackEdgeToCenter = v.bp.BackEdgeToCenter
	s.LeftEdgeToCenter = v.bp.LeftEdgeToCenter
	s.RightEdgeToCenter = v.bp.RightEdgeToCenter
	return s
}
