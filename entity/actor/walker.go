package actor

import (
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"

	"github.com/drivora/sandbox-go/entity"
)

// Walker 行人
// 说明：朝向不积分，直接取控制量给定的期望朝向
type Walker struct {
	base
	control MotionControl
}

func newWalker(bp *Blueprint, id string, loc entity.Location) Actor {
	return &Walker{base: newBase(bp, id, loc)}
}

// SetMotionControl 设置控制指令，下一tick生效
func (w *Walker) SetMotionControl(control MotionControl) { w.control = control }

// MotionControl 返回当前控制指令
func (w *Walker) MotionControl() MotionControl { return w.control }

// Tick 推进一个步长
// 功能：速度沿期望加速度积分，朝向直接替换为期望值
// 参数：dt-步长（秒）
// 算法说明：
// 1. accel=clamp(期望加速度, -|maxDec|, |maxAcc|)
// 2. nextSpeed=max(0, speed+accel*dt)
// 3. 位移沿归一化后的期望朝向、按新速度积分
func (w *Walker) Tick(dt float64) {
	accel := lo.Clamp(w.control.Acceleration,
		-math.Abs(w.bp.MaxDeceleration), math.Abs(w.bp.MaxAcceleration))
	nextSpeed := math.Max(0, w.speed+accel*dt)
	nextHeading := entity.NormalizeAngle(w.control.Heading)
	w.loc.X += nextSpeed * math.Cos(nextHeading) * dt
	w.loc.Y += nextSpeed * math.Sin(nextHeading) * dt
	w.loc.Yaw = nextHeading
	w.speed = nextSpeed
	w.acceleration = accel
	w.angularSpeed = nextSpeed
}

// PolygonPoints 返回世界系下的四角footprint
func (w *Walker) PolygonPoints() []geometry.Point {
	return w.footprint(w.bp.BBox.Length/2, -w.bp.BBox.Length/2, w.bp.BBox.Width/2)
}

// Snapshot 导出当前状态
func (w *Walker) Snapshot() Snapshot {
	s := w.snapshot(w.PolygonPoints())
	s.Control = w.control
	return s
}
