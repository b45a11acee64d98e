package actor

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"

	"github.com/drivora/sandbox-go/entity"
)

// VehicleControl 车辆控制指令
type VehicleControl struct {
	Throttle float64 `json:"throttle"` // 油门开度[0,1]
	Brake    float64 `json:"brake"`    // 刹车开度[0,1]
	Steer    float64 `json:"steer"`    // 方向盘比例[-1,1]，正为左转
	Reverse  bool    `json:"reverse"`  // 倒挡标志，仅记录不参与运动
}

// MotionControl 行人与完美跟踪车辆的控制指令
type MotionControl struct {
	Acceleration float64 `json:"acceleration"` // 期望加速度（m/s²）
	Heading      float64 `json:"heading"`      // 期望朝向（弧度）
}

// Snapshot actor的序列化状态
type Snapshot struct {
	ID           string             `json:"id"`            // actor ID
	Category     string             `json:"category"`      // 粗分类
	SubCategory  string             `json:"sub_category"`  // 细分类
	Location     entity.Location    `json:"location"`      // 位姿
	Speed        float64            `json:"speed"`         // 速度（m/s）
	AngularSpeed float64            `json:"angular_speed"` // 角速度（弧度/秒）
	Acceleration float64            `json:"acceleration"`  // 加速度（m/s²）
	BBox         entity.BoundingBox `json:"bbox"`          // 包围盒尺寸
	Control      any                `json:"control,omitempty"`

	FrontEdgeToCenter float64 `json:"front_edge_to_center,omitempty"` // 仅车辆
	BackEdgeToCenter  float64 `json:"back_edge_to_center,omitempty"`  // 仅车辆
	LeftEdgeToCenter  float64 `json:"left_edge_to_center,omitempty"`  // 仅车辆
	RightEdgeToCenter float64 `json:"right_edge_to_center,omitempty"` // 仅车辆

	Polygon []geometry.Point `json:"polygon"` // 世界系下的四角footprint
}

// Actor 运动学actor的统一接口
type Actor interface {
	// ID 返回actor ID
	ID() string
	// Category 返回粗分类（vehicle/walker/static）
	Category() string
	// SubCategory 返回细分类
	SubCategory() string
	// Blueprint 返回创建时使用的静态参数表
	Blueprint() Blueprint
	// Status 返回就绪状态串
	Status() string
	// SetStatus 设置就绪状态串
	SetStatus(status string)
	// Location 返回当前位姿
	Location() entity.Location
	// Speed 返回当前速度（m/s）
	Speed() float64
	// Tick 推进一个步长dt（秒）
	Tick(dt float64)
	// Snapshot 导出当前状态
	Snapshot() Snapshot
	// PolygonPoints 返回世界系下的四角footprint
	PolygonPoints() []geometry.Point
}

// VehicleControlled 接受车辆控制指令的actor
type VehicleControlled interface {
	Actor
	// SetVehicleControl 设置车辆控制指令，下一tick生效
	SetVehicleControl(control VehicleControl)
	// VehicleControl 返回当前控制指令
	VehicleControl() VehicleControl
}

// MotionControlled 接受加速度+朝向控制指令的actor
type MotionControlled interface {
	Actor
	// SetMotionControl 设置运动控制指令，下一tick生效
	SetMotionControl(control MotionControl)
	// MotionControl 返回当前控制指令
	MotionControl() MotionControl
}

// Relocatable 支持直接移动位姿的actor
type Relocatable interface {
	Actor
	// SetLocation 整体替换位姿
	SetLocation(loc entity.Location)
}

// base 各类actor共享的状态与快照逻辑
type base struct {
	id           string
	bp           *Blueprint
	status       string
	loc          entity.Location
	speed        float64
	acceleration float64
	angularSpeed float64
}

func newBase(bp *Blueprint, id string, loc entity.Location) base {
	loc.Yaw = entity.NormalizeAngle(loc.Yaw)
	return base{
		id:     id,
		bp:     bp,
		status: entity.StatusNotReady,
		loc:    loc,
	}
}

// ID 返回actor ID
func (b *base) ID() string { return b.id }

// Category 返回粗分类
func (b *base) Category() string { return b.bp.Category }

// SubCategory 返回细分类
func (b *base) SubCategory() string { return b.bp.SubCategory }

// Blueprint 返回静态参数表
func (b *base) Blueprint() Blueprint { return *b.bp }

// Status 返回就绪状态串
func (b *base) Status() string { return b.status }

// SetStatus 设置就绪状态串
func (b *base) SetStatus(status string) { b.status = status }

// Location 返回当前位姿
func (b *base) Location() entity.Location { return b.loc }

// Speed 返回当前速度
func (b *base) Speed() float64 { return b.speed }

// footprint 按前后沿距离计算世界系四角
func (b *base) footprint(frontL, backL, halfW float64) []geometry.Point {
	return lo.Map(entity.RectFootprint(b.loc, frontL, backL, halfW),
		func(p [2]float64, _ int) geometry.Point {
			return geometry.Point{X: p[0], Y: p[1]}
		})
}

// snapshot 填充各类actor共有的快照字段
func (b *base) snapshot(polygon []geometry.Point) Snapshot {
	return Snapshot{
		ID:           b.id,
		Category:     b.bp.Category,
		SubCategory:  b.bp.SubCategory,
		Location:     b.loc,
		Speed:        b.speed,
		AngularSpeed: b.angularSpeed,
		Acceleration: b.acceleration,
		BBox:         b.bp.BBox,
		Polygon:      polygon,
	}
}
