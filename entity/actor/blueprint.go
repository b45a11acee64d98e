package actor

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/drivora/sandbox-go/entity"
)

// 粗分类常量，快照中上报的类别
const (
	CategoryVehicle = "vehicle"
	CategoryWalker  = "walker"
	CategoryStatic  = "static"
	CategorySignal  = "signal"
)

// Blueprint 一类actor的静态参数表
// 说明：创建actor与查询类别参数共用一张表，键为完整类别串
// （如vehicle.lincoln.mkz）；完美跟踪变体在键后加.perfect后缀，参数相同
type Blueprint struct {
	Category    string             `json:"category"`     // 粗分类
	SubCategory string             `json:"sub_category"` // 细分类
	BBox        entity.BoundingBox `json:"bbox"`         // 包围盒尺寸

	MaxAcceleration float64 `json:"max_acceleration,omitempty"` // 最大加速度（m/s²）
	MaxDeceleration float64 `json:"max_deceleration,omitempty"` // 最大减速度（m/s²）

	FrontEdgeToCenter float64 `json:"front_edge_to_center,omitempty"` // 中心到前沿距离
	BackEdgeToCenter  float64 `json:"back_edge_to_center,omitempty"`  // 中心到后沿距离
	LeftEdgeToCenter  float64 `json:"left_edge_to_center,omitempty"`  // 中心到左沿距离
	RightEdgeToCenter float64 `json:"right_edge_to_center,omitempty"` // 中心到右沿距离

	MaxSteerAngle float64 `json:"max_steer_angle,omitempty"` // 方向盘最大转角（弧度）
	SteerRate     float64 `json:"steer_rate,omitempty"`      // 方向盘最大转速（弧度/秒）
	SteerRatio    float64 `json:"steer_ratio,omitempty"`     // 转向传动比
	Wheelbase     float64 `json:"wheelbase,omitempty"`       // 轴距（米）
	StopSpeed     float64 `json:"stop_speed,omitempty"`      // 低于该速度视为停止

	build func(bp *Blueprint, id string, loc entity.Location) Actor
}

var blueprints = map[string]*Blueprint{}

// register 注册类别，重复注册属于内部错误
func register(key string, bp *Blueprint) {
	if _, ok := blueprints[key]; ok {
		log.Panicf("duplicated actor category %s", key)
	}
	blueprints[key] = bp
}

func init() {
	vehicles := []struct {
		key string
		bp  Blueprint
	}{
		{
			key: "vehicle.lincoln.mkz",
			bp: Blueprint{
				BBox:              entity.BoundingBox{Length: 4.933, Width: 2.11, Height: 1.48},
				FrontEdgeToCenter: 3.89,
				BackEdgeToCenter:  1.043,
				LeftEdgeToCenter:  1.055,
				RightEdgeToCenter: 1.055,
				Wheelbase:         2.8448,
			},
		},
		{
			key: "vehicle.lincoln.mkz_lgsvl",
			bp: Blueprint{
				BBox:              entity.BoundingBox{Length: 4.70, Width: 2.06, Height: 2.05},
				FrontEdgeToCenter: 3.705,
				BackEdgeToCenter:  0.995,
				LeftEdgeToCenter:  1.03,
				RightEdgeToCenter: 1.03,
				Wheelbase:         2.837007,
			},
		},
		{
			key: "vehicle.bicycle.normal",
			bp: Blueprint{
				BBox:              entity.BoundingBox{Length: 3.0, Width: 1.0, Height: 1.8},
				FrontEdgeToCenter: 1.5,
				BackEdgeToCenter:  1.5,
				LeftEdgeToCenter:  0.5,
				RightEdgeToCenter: 0.5,
				Wheelbase:         2.8448,
			},
		},
	}
	for _, v := range vehicles {
		bp := v.bp
		bp.Category = CategoryVehicle
		bp.SubCategory = CategoryVehicle
		bp.MaxAcceleration = 2.0
		bp.MaxDeceleration = -6.0
		bp.MaxSteerAngle = 8.20304748437
		bp.SteerRate = 6.98131700798
		bp.SteerRatio = 16.0
		bp.StopSpeed = 0.2

		normal := bp
		normal.build = newVehicle
		register(v.key, &normal)

		perfect := bp
		perfect.build = newPerfectVehicle
		register(v.key+".perfect", &perfect)
	}

	register("walker.pedestrian.normal", &Blueprint{
		Category:        CategoryWalker,
		SubCategory:     CategoryWalker,
		BBox:            entity.BoundingBox{Length: 0.5, Width: 0.5, Height: 1.8},
		MaxAcceleration: 10.0,
		MaxDeceleration: 10.0,
		build:           newWalker,
	})
	register("static.traffic_cone", &Blueprint{
		Category:    CategoryStatic,
		SubCategory: CategoryStatic,
		BBox:        entity.BoundingBox{Length: 0.35, Width: 0.35, Height: 0.7},
		build:       newStatic,
	})
	register("signal.traffic_light", &Blueprint{
		Category:    CategorySignal,
		SubCategory: "traffic_light",
	})
}

// Categories 返回全部已注册的类别键（字典序）
func Categories() []string {
	keys := lo.Keys(blueprints)
	sort.Strings(keys)
	return keys
}

// GetBlueprint 查询类别的静态参数表
// 说明：不需要存活实例即可查询，未注册的类别报not found
func GetBlueprint(category string) (Blueprint, error) {
	bp, ok := blueprints[category]
	if !ok {
		return Blueprint{}, fmt.Errorf("actor category %s: %w", category, entity.ErrNotFound)
	}
	return *bp, nil
}

// New 按类别创建actor实例
// 功能：查表取静态参数并分发到对应变体的构造函数
// 参数：category-完整类别键，id-调用方提供的唯一标识，loc-出生位姿
// 说明：信号灯不是actor，用信号类别创建actor报not found
func New(category, id string, loc entity.Location) (Actor, error) {
	bp, ok := blueprints[category]
	if !ok || bp.build == nil {
		return nil, fmt.Errorf("actor category %s: %w", category, entity.ErrNotFound)
	}
	return bp.build(bp, id, loc), nil
}
