package lane

import (
	"fmt"
	"math"
	"strings"

	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tidwall/rtree"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/drivora/sandbox-go/entity"
	"github.com/drivora/sandbox-go/utils/input"
)

// 相邻车道换道边的固定代价
const neighborEdgeWeight = 5.0

// LaneManager 车道管理器
// 功能：管理所有Lane实体，提供加载、查找、空间检索与路径规划功能
type LaneManager struct {
	name  string
	data  map[string]*Lane
	lanes []*Lane

	// 空间索引与车道图，Load时整体重建
	tree    *rtree.RTreeG[*Lane]
	graph   *simple.WeightedDirectedGraph
	nodeIDs map[string]int64
	laneIDs map[int64]string
}

// NewManager 创建车道管理器实例
func NewManager() *LaneManager {
	return &LaneManager{
		data: make(map[string]*Lane),
	}
}

// Name 返回当前加载的路网名，未加载时为空串
func (m *LaneManager) Name() string { return m.name }

// Len 返回车道数量
func (m *LaneManager) Len() int { return len(m.lanes) }

// Load 加载路网
// 功能：校验并重建全部车道、空间索引与车道图
// 参数：network-路网输入数据
// 返回：数据不合法时返回invalid input
// 说明：校验失败时保留原有路网不变，通过后一次性提交
// 算法说明：
// 1. 逐条校验车道数据并创建Lane
// 2. 并行计算几何派生量
// 3. 校验连接关系引用的车道都存在
// 4. 重建R树空间索引与带权有向车道图
// （换道边固定代价5.0，后继边代价为来源车道长度）
func (m *LaneManager) Load(network *input.NetworkData) error {
	lanes := make([]*Lane, 0, len(network.Lanes))
	data := make(map[string]*Lane, len(network.Lanes))
	for i := range network.Lanes {
		l, err := newLane(&network.Lanes[i])
		if err != nil {
			return err
		}
		if _, ok := data[l.id]; ok {
			return fmt.Errorf("duplicated lane id %s: %w", l.id, entity.ErrInvalidInput)
		}
		data[l.id] = l
		lanes = append(lanes, l)
	}
	parallel.GoFor(lanes, func(l *Lane) { l.initGeometry() })
	for _, l := range lanes {
		for _, links := range [][]string{
			l.predecessorIDs, l.successorIDs,
			l.leftNeighborForwardIDs, l.rightNeighborForwardIDs,
			l.leftNeighborReverseIDs, l.rightNeighborReverseIDs,
		} {
			for _, id := range links {
				if _, ok := data[id]; !ok {
					return fmt.Errorf("lane %s links to unknown lane %s: %w",
						l.id, id, entity.ErrInvalidInput)
				}
			}
		}
	}

	tree := &rtree.RTreeG[*Lane]{}
	for _, l := range lanes {
		tree.Insert(
			[2]float64{l.bound.Min[0], l.bound.Min[1]},
			[2]float64{l.bound.Max[0], l.bound.Max[1]},
			l,
		)
	}

	g := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	nodeIDs := make(map[string]int64, len(lanes))
	laneIDs := make(map[int64]string, len(lanes))
	for i, l := range lanes {
		nodeIDs[l.id] = int64(i)
		laneIDs[int64(i)] = l.id
		g.AddNode(simple.Node(int64(i)))
	}
	addEdge := func(from, to int64, weight float64) {
		if from == to {
			log.Warnf("lane %s links to itself, skipped in lane graph", laneIDs[from])
			return
		}
		g.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(from), T: simple.Node(to), W: weight,
		})
	}
	for _, l := range lanes {
		from := nodeIDs[l.id]
		for _, id := range l.rightNeighborForwardIDs {
			addEdge(from, nodeIDs[id], neighborEdgeWeight)
		}
		for _, id := range l.leftNeighborForwardIDs {
			addEdge(from, nodeIDs[id], neighborEdgeWeight)
		}
		for _, id := range l.successorIDs {
			addEdge(from, nodeIDs[id], l.length)
		}
	}

	m.name = network.Name
	m.data = data
	m.lanes = lanes
	m.tree = tree
	m.graph = g
	m.nodeIDs = nodeIDs
	m.laneIDs = laneIDs
	log.Infof("load %d lanes from network %s", len(lanes), network.Name)
	return nil
}

// Reset 清空路网
func (m *LaneManager) Reset() {
	m.name = ""
	m.data = make(map[string]*Lane)
	m.lanes = nil
	m.tree = nil
	m.graph = nil
	m.nodeIDs = nil
	m.laneIDs = nil
}

// Get 根据ID获取Lane实例
// 功能：通过Lane ID查找对应的Lane对象，如果不存在则panic
// 参数：id-Lane的唯一标识符
// 返回：对应的Lane实例
func (m *LaneManager) Get(id string) *Lane {
	if l, ok := m.data[id]; !ok {
		log.Panicf("no id %s in lane data", id)
		return nil
	} else {
		return l
	}
}

// GetOrError 根据ID获取Lane实例（带错误处理）
// 功能：通过Lane ID查找对应的Lane对象，如果不存在则返回错误
// 参数：id-Lane的唯一标识符
// 返回：Lane实例和错误信息
func (m *LaneManager) GetOrError(id string) (*Lane, error) {
	if l, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("lane %s: %w", id, entity.ErrNotFound)
	} else {
		return l, nil
	}
}

// GetAll 返回满足过滤条件的车道ID列表（加载顺序）
// 参数：containJunction-是否包含路口内车道，
// laneType-类型过滤串，空串不过滤，大小写不敏感
func (m *LaneManager) GetAll(containJunction bool, laneType string) []string {
	normalized := strings.ToUpper(laneType)
	return lo.FilterMap(m.lanes, func(l *Lane, _ int) (string, bool) {
		if !containJunction && l.isJunction {
			return "", false
		}
		if normalized != "" && strings.ToUpper(l.laneType) != normalized {
			return "", false
		}
		return l.id, true
	})
}

// GetCoordinate 根据车道坐标获得实际位置与方向角
// 功能：在中心线s处沿右法向偏移l，返回实际坐标与该点的方向角
// 参数：laneID-车道ID，s-纵向距离，l-横向偏移（正值偏向行进方向右侧）
// 返回：位置与方向角（弧度）
// 说明：s超出[0, length]属于调用方错误，报invalid input
func (m *LaneManager) GetCoordinate(laneID string, s, l float64) (geometry.Point, float64, error) {
	lane, err := m.GetOrError(laneID)
	if err != nil {
		return geometry.Point{}, 0, err
	}
	if s < 0 || s > lane.length {
		return geometry.Point{}, 0, fmt.Errorf("s %v out of range [0, %v] for lane %s: %w",
			s, lane.length, laneID, entity.ErrInvalidInput)
	}
	return lane.GetOffsetPositionByS(s, l), lane.GetDirectionByS(s), nil
}

// FindLaneID 查找包含指定平面位置的车道
// 功能：先用R树按外包矩形粗筛，再用多边形包含判断精筛
// 参数：x/y-平面坐标
// 返回：第一个包含该点的车道ID，不存在时报not found
func (m *LaneManager) FindLaneID(x, y float64) (string, error) {
	found := ""
	if m.tree != nil {
		m.tree.Search([2]float64{x, y}, [2]float64{x, y},
			func(_, _ [2]float64, l *Lane) bool {
				if l.Contains(x, y) {
					found = l.id
					return false
				}
				return true
			})
	}
	if found == "" {
		return "", fmt.Errorf("no lane contains position (%v, %v): %w", x, y, entity.ErrNotFound)
	}
	return found, nil
}

// frontier 在指定邻接关系上做逐层扩展
// 功能：从起点出发扩展depth层，返回第depth层的去重车道ID集合
// 说明：depth<=0返回空列表；结果只含最后一层，不含更浅层
func (m *LaneManager) frontier(laneID string, depth int, adj func(*Lane) []string) ([]string, error) {
	if _, err := m.GetOrError(laneID); err != nil {
		return nil, err
	}
	if depth <= 0 {
		return []string{}, nil
	}
	current := []string{laneID}
	for range depth {
		next := make([]string, 0, len(current))
		for _, id := range current {
			next = append(next, adj(m.data[id])...)
		}
		current = lo.Uniq(next)
		if len(current) == 0 {
			break
		}
	}
	return current, nil
}

// GetPredecessorIDs 返回前驱方向第depth层的车道ID集合
func (m *LaneManager) GetPredecessorIDs(laneID string, depth int) ([]string, error) {
	return m.frontier(laneID, depth, (*Lane).PredecessorIDs)
}

// GetSuccessorIDs 返回后继方向第depth层的车道ID集合
func (m *LaneManager) GetSuccessorIDs(laneID string, depth int) ([]string, error) {
	return m.frontier(laneID, depth, (*Lane).SuccessorIDs)
}

// GetLeftNeighborForwardIDs 返回左侧同向第depth层的车道ID集合
func (m *LaneManager) GetLeftNeighborForwardIDs(laneID string, depth int) ([]string, error) {
	return m.frontier(laneID, depth, (*Lane).LeftNeighborForwardIDs)
}

// GetRightNeighborForwardIDs 返回右侧同向第depth层的车道ID集合
func (m *LaneManager) GetRightNeighborForwardIDs(laneID string, depth int) ([]string, error) {
	return m.frontier(laneID, depth, (*Lane).RightNeighborForwardIDs)
}

// GetLeftNeighborReverseIDs 返回左侧逆向第depth层的车道ID集合
func (m *LaneManager) GetLeftNeighborReverseIDs(laneID string, depth int) ([]string, error) {
	return m.frontier(laneID, depth, (*Lane).LeftNeighborReverseIDs)
}

// GetRightNeighborReverseIDs 返回右侧逆向第depth层的车道ID集合
func (m *LaneManager) GetRightNeighborReverseIDs(laneID string, depth int) ([]string, error) {
	return m.frontier(laneID, depth, (*Lane).RightNeighborReverseIDs)
}

// GetNeighborForwardIDs 返回左右两侧同向车道ID的并集（左侧在前）
func (m *LaneManager) GetNeighborForwardIDs(laneID string, depth int) ([]string, error) {
	left, err := m.GetLeftNeighborForwardIDs(laneID, depth)
	if err != nil {
		return nil, err
	}
	right, err := m.GetRightNeighborForwardIDs(laneID, depth)
	if err != nil {
		return nil, err
	}
	return lo.Union(left, right), nil
}

// GetNeighborReverseIDs 返回左右两侧逆向车道ID的并集（左侧在前）
func (m *LaneManager) GetNeighborReverseIDs(laneID string, depth int) ([]string, error) {
	left, err := m.GetLeftNeighborReverseIDs(laneID, depth)
	if err != nil {
		return nil, err
	}
	right, err := m.GetRightNeighborReverseIDs(laneID, depth)
	if err != nil {
		return nil, err
	}
	return lo.Union(left, right), nil
}

// FindPath 在车道图上求两条车道间的最短路径
// 功能：以后继边与换道边的代价做A*搜索
// 参数：startLane/endLane-起止车道ID
// 返回：从起点到终点的车道ID序列，不可达时返回空列表并输出warning
// 说明：起止相同返回只含起点的列表
func (m *LaneManager) FindPath(startLane, endLane string) ([]string, error) {
	from, ok := m.nodeIDs[startLane]
	if !ok {
		return nil, fmt.Errorf("lane %s: %w", startLane, entity.ErrNotFound)
	}
	to, ok := m.nodeIDs[endLane]
	if !ok {
		return nil, fmt.Errorf("lane %s: %w", endLane, entity.ErrNotFound)
	}
	if from == to {
		return []string{startLane}, nil
	}
	shortest, _ := path.AStar(simple.Node(from), simple.Node(to), m.graph, nil)
	nodes, weight := shortest.To(to)
	if math.IsInf(weight, 1) {
		log.Warnf("no path found between %s and %s", startLane, endLane)
		return []string{}, nil
	}
	return lo.Map(nodes, func(n graph.Node, _ int) string {
		return m.laneIDs[n.ID()]
	}), nil
}

// GetType 返回车道类型串
func (m *LaneManager) GetType(laneID string) (string, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return "", err
	}
	return l.Type(), nil
}

// GetTurn 返回车道转向类型串
func (m *LaneManager) GetTurn(laneID string) (string, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return "", err
	}
	return l.Turn(), nil
}

// GetDirection 返回车道通行方向串
func (m *LaneManager) GetDirection(laneID string) (string, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return "", err
	}
	return l.Direction(), nil
}

// GetLength 返回车道长度
func (m *LaneManager) GetLength(laneID string) (float64, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return 0, err
	}
	return l.Length(), nil
}

// GetSpeedLimit 返回车道限速(m/s)
func (m *LaneManager) GetSpeedLimit(laneID string) (float64, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return 0, err
	}
	return l.SpeedLimit(), nil
}

// GetOverlapIDs 返回冲突车道ID列表
func (m *LaneManager) GetOverlapIDs(laneID string) ([]string, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return nil, err
	}
	return l.OverlapIDs(), nil
}

// IsJunctionLane 返回是否为路口内车道
func (m *LaneManager) IsJunctionLane(laneID string) (bool, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return false, err
	}
	return l.IsJunction(), nil
}

// IsDrivingLane 返回是否为机动车道
func (m *LaneManager) IsDrivingLane(laneID string) (bool, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return false, err
	}
	return l.IsDriving(), nil
}

// GetCentralCurve 返回车道中心线折线
func (m *LaneManager) GetCentralCurve(laneID string) ([]geometry.Point, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return nil, err
	}
	return l.CenterLine(), nil
}

// GetLeftBoundaryCurve 返回左边线折线
func (m *LaneManager) GetLeftBoundaryCurve(laneID string) ([]geometry.Point, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return nil, err
	}
	return l.LeftBoundary(), nil
}

// GetRightBoundaryCurve 返回右边线折线
func (m *LaneManager) GetRightBoundaryCurve(laneID string) ([]geometry.Point, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return nil, err
	}
	return l.RightBoundary(), nil
}

// GetLeftBoundaryType 返回左边线类型串
func (m *LaneManager) GetLeftBoundaryType(laneID string) (string, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return "", err
	}
	return l.LeftBoundaryType(), nil
}

// GetRightBoundaryType 返回右边线类型串
func (m *LaneManager) GetRightBoundaryType(laneID string) (string, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return "", err
	}
	return l.RightBoundaryType(), nil
}

// GetPolygon 返回车道多边形点列（左边线+右边线逆序，不闭合）
func (m *LaneManager) GetPolygon(laneID string) ([]geometry.Point, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return nil, err
	}
	return l.BoundaryPolygon(), nil
}

// GetStopSignIDs 返回关联停车标志ID列表
func (m *LaneManager) GetStopSignIDs(laneID string) ([]string, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return nil, err
	}
	return l.StopSignIDs(), nil
}

// GetTrafficLightIDs 返回关联信号灯ID列表
func (m *LaneManager) GetTrafficLightIDs(laneID string) ([]string, error) {
	l, err := m.GetOrError(laneID)
	if err != nil {
		return nil, err
	}
	return l.TrafficLightIDs(), nil
}
