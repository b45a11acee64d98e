package entity

import (
	"math"

	"github.com/samber/lo"
)

// actor就绪状态常量
const (
	StatusNotReady = "not_ready" // 尚未就绪，场景推进被挂起
	StatusReady    = "ready"     // 已就绪
)

// Location 六自由度位姿
// 说明：Yaw为朝向角（弧度），始终归一化到(-π, π]；值类型，赋值即拷贝，
// 不同actor之间不会共享位姿
type Location struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
}

// BoundingBox 包围盒尺寸，按类别固定
type BoundingBox struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LanePosition 车道坐标
// 说明：S为沿中心线的弧长，L为沿局部朝向右法向的横向偏移
type LanePosition struct {
	LaneID string  `json:"lane_id"`
	S      float64 `json:"s"`
	L      float64 `json:"l"`
}

// Waypoint 车道上的一个已解析采样点
type Waypoint struct {
	LanePosition
	IsJunction bool    `json:"is_junction"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Heading    float64 `json:"heading"`
}

// NormalizeAngle 将角度归一化到(-π, π]
func NormalizeAngle(a float64) float64 {
	r := math.Mod(a, 2*math.Pi)
	if r > math.Pi {
		r -= 2 * math.Pi
	} else if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}

// RectFootprint 计算矩形占地多边形
// 功能：以位姿为基准计算旋转后的四角世界坐标
// 参数：loc-位姿，frontL-中心到前沿的纵向距离，backL-中心到后沿的纵向距离
// （朝后为负），halfW-半宽
// 返回：左前、左后、右后、右前四个角点
func RectFootprint(loc Location, frontL, backL, halfW float64) [][2]float64 {
	c, s := math.Cos(loc.Yaw), math.Sin(loc.Yaw)
	corners := [][2]float64{
		{frontL, halfW},
		{backL, halfW},
		{backL, -halfW},
		{frontL, -halfW},
	}
	return lo.Map(corners, func(p [2]float64, _ int) [2]float64 {
		return [2]float64{
			loc.X + p[0]*c - p[1]*s,
			loc.Y + p[0]*s + p[1]*c,
		}
	})
}
