package lane

import (
	"fmt"
	"math"
	"sort"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/samber/lo"

	"github.com/drivora/sandbox-go/entity"
	"github.com/drivora/sandbox-go/utils/input"
)

// 车道类型串
const (
	TypeNone        = "NONE"
	TypeCityDriving = "CITY_DRIVING"
	TypeBiking      = "BIKING"
	TypeSidewalk    = "SIDEWALK"
	TypeParking     = "PARKING"
	TypeShoulder    = "SHOULDER"
)

// 通行方向串
const (
	DirectionForward     = "FORWARD"
	DirectionBackward    = "BACKWARD"
	DirectionBidirection = "BIDIRECTION"
	DirectionUnknown     = "UNKNOWN"
)

// 边线类型串
const (
	BoundaryUnknown      = "UNKNOWN"
	BoundaryDottedYellow = "DOTTED_YELLOW"
	BoundaryDottedWhite  = "DOTTED_WHITE"
	BoundarySolidYellow  = "SOLID_YELLOW"
	BoundarySolidWhite   = "SOLID_WHITE"
	BoundaryDoubleYellow = "DOUBLE_YELLOW"
	BoundaryCurb         = "CURB"
)

// Lane 车道实体
// 功能：表示地图中的车道，包含几何信息、连接关系与通行属性
type Lane struct {
	id        string
	laneType  string  // 车道类型
	turn      string  // 转向类型
	direction string  // 通行方向
	maxV      float64 // 道路限速(m/s)

	line           []geometry.Point             // 转成Point的中心线折线
	lineLengths    []float64                    // 中心线折线点对应的长度列表
	lineDirections []geometry.PolylineDirection // 中心线折线段每一段的方向（atan2）
	length         float64                      // 以中心线的长度为车道长度

	leftBoundary      []geometry.Point // 左边线折线
	rightBoundary     []geometry.Point // 右边线折线
	leftBoundaryType  string           // 左边线类型
	rightBoundaryType string           // 右边线类型

	predecessorIDs          []string // 前驱车道ID列表
	successorIDs            []string // 后继车道ID列表
	leftNeighborForwardIDs  []string // 左侧同向相邻车道ID列表
	rightNeighborForwardIDs []string // 右侧同向相邻车道ID列表
	leftNeighborReverseIDs  []string // 左侧逆向相邻车道ID列表
	rightNeighborReverseIDs []string // 右侧逆向相邻车道ID列表
	overlapIDs              []string // 冲突车道ID列表
	stopSignIDs             []string // 关联停车标志ID列表
	trafficLightIDs         []string // 关联信号灯ID列表

	isJunction bool // 是否为路口内车道

	polygon orb.Ring  // 左边线+右边线逆序构成的闭合多边形
	bound   orb.Bound // 多边形的外包矩形，用于空间索引
}

// newLane 创建并校验一个新的Lane实例
// 功能：根据输入数据创建Lane对象并完成结构校验
// 参数：data-车道输入数据
// 返回：Lane实例，数据不完整时返回invalid input
// 说明：几何派生量的计算延后到initGeometry，便于并行执行
func newLane(data *input.LaneData) (*Lane, error) {
	if data.ID == "" {
		return nil, fmt.Errorf("lane with empty id: %w", entity.ErrInvalidInput)
	}
	if len(data.CentralCurve) < 2 {
		return nil, fmt.Errorf("lane %s central curve needs at least 2 points: %w",
			data.ID, entity.ErrInvalidInput)
	}
	if len(data.LeftBoundary) < 2 || len(data.RightBoundary) < 2 {
		return nil, fmt.Errorf("lane %s boundary needs at least 2 points: %w",
			data.ID, entity.ErrInvalidInput)
	}
	toPoints := func(pts []input.PointData) []geometry.Point {
		return lo.Map(pts, func(p input.PointData, _ int) geometry.Point {
			return geometry.Point{X: p.X, Y: p.Y, Z: p.Z}
		})
	}
	return &Lane{
		id:                      data.ID,
		laneType:                data.Type,
		turn:                    data.Turn,
		direction:               data.Direction,
		maxV:                    data.SpeedLimit,
		line:                    toPoints(data.CentralCurve),
		leftBoundary:            toPoints(data.LeftBoundary),
		rightBoundary:           toPoints(data.RightBoundary),
		leftBoundaryType:        data.LeftBoundaryType,
		rightBoundaryType:       data.RightBoundaryType,
		predecessorIDs:          data.PredecessorIDs,
		successorIDs:            data.SuccessorIDs,
		leftNeighborForwardIDs:  data.LeftNeighborForwardIDs,
		rightNeighborForwardIDs: data.RightNeighborForwardIDs,
		leftNeighborReverseIDs:  data.LeftNeighborReverseIDs,
		rightNeighborReverseIDs: data.RightNeighborReverseIDs,
		overlapIDs:              data.OverlapIDs,
		stopSignIDs:             data.StopSignIDs,
		trafficLightIDs:         data.TrafficLightIDs,
		isJunction:              data.IsJunction,
	}, nil
}

// initGeometry 计算几何派生量
// 功能：计算中心线长度表、分段方向、多边形与外包矩形
// 说明：各车道相互独立，由管理器并行调用
func (l *Lane) initGeometry() {
	l.lineLengths = geometry.GetPolylineLengths2D(l.line)
	l.length = l.lineLengths[len(l.lineLengths)-1]
	l.lineDirections = geometry.GetPolylineDirections(l.line)

	ring := make(orb.Ring, 0, len(l.leftBoundary)+len(l.rightBoundary)+1)
	for _, p := range l.leftBoundary {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	for i := len(l.rightBoundary) - 1; i >= 0; i-- {
		p := l.rightBoundary[i]
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	ring = append(ring, ring[0])
	l.polygon = ring
	l.bound = ring.Bound()
}

// ID 返回车道ID
func (l *Lane) ID() string { return l.id }

// Type 返回车道类型串
func (l *Lane) Type() string { return l.laneType }

// Turn 返回转向类型串
func (l *Lane) Turn() string { return l.turn }

// Direction 返回通行方向串
func (l *Lane) Direction() string { return l.direction }

// SpeedLimit 返回道路限速(m/s)
func (l *Lane) SpeedLimit() float64 { return l.maxV }

// Length 返回车道长度（中心线长度）
func (l *Lane) Length() float64 { return l.length }

// IsJunction 返回是否为路口内车道
func (l *Lane) IsJunction() bool { return l.isJunction }

// IsDriving 返回是否为机动车道
func (l *Lane) IsDriving() bool { return l.laneType == TypeCityDriving }

// CenterLine 返回中心线折线
func (l *Lane) CenterLine() []geometry.Point { return l.line }

// LeftBoundary 返回左边线折线
func (l *Lane) LeftBoundary() []geometry.Point { return l.leftBoundary }

// RightBoundary 返回右边线折线
func (l *Lane) RightBoundary() []geometry.Point { return l.rightBoundary }

// LeftBoundaryType 返回左边线类型串
func (l *Lane) LeftBoundaryType() string { return l.leftBoundaryType }

// RightBoundaryType 返回右边线类型串
func (l *Lane) RightBoundaryType() string { return l.rightBoundaryType }

// PredecessorIDs 返回前驱车道ID列表
func (l *Lane) PredecessorIDs() []string { return l.predecessorIDs }

// SuccessorIDs 返回后继车道ID列表
func (l *Lane) SuccessorIDs() []string { return l.successorIDs }

// LeftNeighborForwardIDs 返回左侧同向相邻车道ID列表
func (l *Lane) LeftNeighborForwardIDs() []string { return l.leftNeighborForwardIDs }

// RightNeighborForwardIDs 返回右侧同向相邻车道ID列表
func (l *Lane) RightNeighborForwardIDs() []string { return l.rightNeighborForwardIDs }

// LeftNeighborReverseIDs 返回左侧逆向相邻车道ID列表
func (l *Lane) LeftNeighborReverseIDs() []string { return l.leftNeighborReverseIDs }

// RightNeighborReverseIDs 返回右侧逆向相邻车道ID列表
func (l *Lane) RightNeighborReverseIDs() []string { return l.rightNeighborReverseIDs }

// OverlapIDs 返回冲突车道ID列表
func (l *Lane) OverlapIDs() []string { return l.overlapIDs }

// StopSignIDs 返回关联停车标志ID列表
func (l *Lane) StopSignIDs() []string { return l.stopSignIDs }

// TrafficLightIDs 返回关联信号灯ID列表
func (l *Lane) TrafficLightIDs() []string { return l.trafficLightIDs }

// Polygon 返回车道多边形（闭合，首尾点相同）
func (l *Lane) Polygon() orb.Ring { return l.polygon }

// BoundaryPolygon 返回左边线+右边线逆序构成的多边形点列（不闭合）
func (l *Lane) BoundaryPolygon() []geometry.Point {
	points := make([]geometry.Point, 0, len(l.leftBoundary)+len(l.rightBoundary))
	points = append(points, l.leftBoundary...)
	for i := len(l.rightBoundary) - 1; i >= 0; i-- {
		points = append(points, l.rightBoundary[i])
	}
	return points
}

// Bound 返回车道多边形的外包矩形
func (l *Lane) Bound() orb.Bound { return l.bound }

// GetPositionByS 根据s坐标获得车道上的点的位置
// 功能：在中心线上按弧长插值计算坐标
// 参数：s-沿车道中心线的纵向距离
// 返回：s坐标对应的位置
// 说明：超出范围的s被限制到[0, length]并输出debug日志
func (l *Lane) GetPositionByS(s float64) geometry.Point {
	if s < 0 || s > l.length {
		log.Debugf("lane %s: get position by s %v out of range [0, %v]", l.id, s, l.length)
		s = lo.Clamp(s, 0, l.length)
	}
	i := sort.SearchFloat64s(l.lineLengths, s)
	if i == 0 {
		return l.line[0]
	}
	sLow, sHigh := l.lineLengths[i-1], l.lineLengths[i]
	k := (s - sLow) / (sHigh - sLow)
	if k < 0 || k > 1 {
		log.Panicf("lane %s: bad k %v for s %v", l.id, k, s)
	}
	return geometry.Blend(l.line[i-1], l.line[i], k)
}

// GetDirectionByS 根据s坐标获得车道上的点的方向角
// 功能：取s所在折线段的方向角，折线点处取前一段的方向
// 参数：s-沿车道中心线的纵向距离
// 返回：方向角（弧度，atan2）
// 说明：超出范围的s被限制到[0, length]并输出debug日志
func (l *Lane) GetDirectionByS(s float64) float64 {
	if s < 0 || s > l.length {
		log.Debugf("lane %s: get direction by s %v out of range [0, %v]", l.id, s, l.length)
		s = lo.Clamp(s, 0, l.length)
	}
	if i := sort.SearchFloat64s(l.lineLengths, s); i == 0 {
		return l.lineDirections[0].Direction
	} else {
		return l.lineDirections[i-1].Direction
	}
}

// GetOffsetPositionByS 根据s坐标与横向偏移获得位置
// 功能：在s点沿方向角的右法向平移offset
// 参数：s-纵向距离，offset-横向偏移，正值偏向行进方向右侧
// 返回：偏移后的位置
func (l *Lane) GetOffsetPositionByS(s, offset float64) geometry.Point {
	pos := l.GetPositionByS(s)
	direction := l.GetDirectionByS(s)
	unitNormal := geometry.Point{
		X: math.Cos(direction - math.Pi/2),
		Y: math.Sin(direction - math.Pi/2),
	}
	return geometry.Point{
		X: pos.X + unitNormal.X*offset,
		Y: pos.Y + unitNormal.Y*offset,
		Z: pos.Z,
	}
}

// ProjectToS 将平面点投影到车道中心线
// 功能：求点到中心线的最近投影对应的s坐标
// 参数：pos-平面位置
// 返回：投影点的s坐标，限制在[0, length]
func (l *Lane) ProjectToS(pos geometry.Point) float64 {
	s := geometry.GetClosestPolylineSToPoint2D(l.line, l.lineLengths, pos)
	return lo.Clamp(s, 0, l.length)
}

// Contains 判断平面点是否落在车道多边形内（含边界）
func (l *Lane) Contains(x, y float64) bool {
	return planar.RingContains(l.polygon, orb.Point{x, y})
}
