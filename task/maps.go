package task

import (
	"git.fiblab.net/general/common/v2/geometry"

	"github.com/drivora/sandbox-go/entity"
	"github.com/drivora/sandbox-go/entity/lane"
)

// 地图查询的加锁转发。车道管理器本身不加锁，
// 所有外部查询统一经过Context的互斥锁，与tick循环串行化。

// GetAll 获取全部车道ID，支持路口与类型过滤
func (ctx *Context) GetAll(containJunction bool, laneType string) []string {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetAll(containJunction, laneType)
}

// GetCoordinate 将车道坐标(s, l)解析为平面坐标与方向角
func (ctx *Context) GetCoordinate(laneID string, s, l float64) (geometry.Point, float64, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetCoordinate(laneID, s, l)
}

// FindLaneID 查找包含平面坐标点的车道
func (ctx *Context) FindLaneID(x, y float64) (string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.FindLaneID(x, y)
}

// GetPredecessorIDs 获取depth层前驱车道ID列表
func (ctx *Context) GetPredecessorIDs(laneID string, depth int) ([]string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetPredecessorIDs(laneID, depth)
}

// GetSuccessorIDs 获取depth层后继车道ID列表
func (ctx *Context) GetSuccessorIDs(laneID string, depth int) ([]string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetSuccessorIDs(laneID, depth)
}

// GetLeftNeighborForwardIDs 获取depth层左侧同向相邻车道ID列表
func (ctx *Context) GetLeftNeighborForwardIDs(laneID string, depth int) ([]string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetLeftNeighborForwardIDs(laneID, depth)
}

// GetRightNeighborForwardIDs 获取depth层右侧同向相邻车道ID列表
func (ctx *Context) GetRightNeighborForwardIDs(laneID string, depth int) ([]string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetRightNeighborForwardIDs(laneID, depth)
}

// GetLeftNeighborReverseIDs 获取depth层左侧逆向相邻车道ID列表
func (ctx *Context) GetLeftNeighborReverseIDs(laneID string, depth int) ([]string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetLeftNeighborReverseIDs(laneID, depth)
}

// GetRightNeighborReverseIDs 获取depth层右侧逆向相邻车道ID列表
func (ctx *Context) GetRightNeighborReverseIDs(laneID string, depth int) ([]string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetRightNeighborReverseIDs(laneID, depth)
}

// GetNeighborForwardIDs 获取depth层左右两侧同向相邻车道ID列表
func (ctx *Context) GetNeighborForwardIDs(laneID string, depth int) ([]string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetNeighborForwardIDs(laneID, depth)
}

// GetNeighborReverseIDs 获取depth层左右两侧逆向相邻车道ID列表
func (ctx *Context) GetNeighborReverseIDs(laneID string, depth int) ([]string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetNeighborReverseIDs(laneID, depth)
}

// FindPath 求两条车道间的最短路径，不可达时为空列表
func (ctx *Context) FindPath(startLane, endLane string) ([]string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.FindPath(startLane, endLane)
}

// RoutePlanner 规划途经多个坐标点的连续路线
func (ctx *Context) RoutePlanner(waypoints []geometry.Point) (*lane.Route, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.RoutePlanner(waypoints)
}

// GetWaypoint 根据车道坐标构造waypoint
func (ctx *Context) GetWaypoint(laneID string, s, l float64) (entity.Waypoint, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetWaypoint(laneID, s, l)
}

// GetNextWaypoint 沿通行方向获取前方的waypoint列表
func (ctx *Context) GetNextWaypoint(laneID string, s, l, distance float64) ([]entity.Waypoint, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetNextWaypoint(laneID, s, l, distance)
}

// GetPreviousWaypoint 沿通行方向获取后方的waypoint列表
func (ctx *Context) GetPreviousWaypoint(laneID string, s, l, distance float64) ([]entity.Waypoint, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetPreviousWaypoint(laneID, s, l, distance)
}

// GetRenderData 导出整张路网的渲染数据
func (ctx *Context) GetRenderData() *lane.RenderData {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetRenderData()
}

// GetLaneType 获取车道类型串
func (ctx *Context) GetLaneType(laneID string) (string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetType(laneID)
}

// GetLaneTurn 获取车道转向类型串
func (ctx *Context) GetLaneTurn(laneID string) (string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetTurn(laneID)
}

// GetLaneDirection 获取车道通行方向串
func (ctx *Context) GetLaneDirection(laneID string) (string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetDirection(laneID)
}

// GetLaneLength 获取车道中心线长度
func (ctx *Context) GetLaneLength(laneID string) (float64, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetLength(laneID)
}

// GetLaneSpeedLimit 获取车道限速(m/s)
func (ctx *Context) GetLaneSpeedLimit(laneID string) (float64, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetSpeedLimit(laneID)
}

// GetLaneOverlapIDs 获取冲突车道ID列表
func (ctx *Context) GetLaneOverlapIDs(laneID string) ([]string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetOverlapIDs(laneID)
}

// IsJunctionLane 判断是否为路口内车道
func (ctx *Context) IsJunctionLane(laneID string) (bool, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.IsJunctionLane(laneID)
}

// IsDrivingLane 判断是否为机动车道
func (ctx *Context) IsDrivingLane(laneID string) (bool, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.IsDrivingLane(laneID)
}

// GetLaneCentralCurve 获取车道中心线折线
func (ctx *Context) GetLaneCentralCurve(laneID string) ([]geometry.Point, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetCentralCurve(laneID)
}

// GetLaneLeftBoundaryCurve 获取车道左边线折线
func (ctx *Context) GetLaneLeftBoundaryCurve(laneID string) ([]geometry.Point, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetLeftBoundaryCurve(laneID)
}

// GetLaneRightBoundaryCurve 获取车道右边线折线
func (ctx *Context) GetLaneRightBoundaryCurve(laneID string) ([]geometry.Point, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetRightBoundaryCurve(laneID)
}

// GetLaneLeftBoundaryType 获取车道左边线类型串
func (ctx *Context) GetLaneLeftBoundaryType(laneID string) (string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetLeftBoundaryType(laneID)
}

// GetLaneRightBoundaryType 获取车道右边线类型串
func (ctx *Context) GetLaneRightBoundaryType(laneID string) (string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetRightBoundaryType(laneID)
}

// GetLanePolygon 获取车道多边形点列
func (ctx *Context) GetLanePolygon(laneID string) ([]geometry.Point, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetPolygon(laneID)
}

// GetLaneStopSignIDs 获取关联停车标志ID列表
func (ctx *Context) GetLaneStopSignIDs(laneID string) ([]string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetStopSignIDs(laneID)
}

// GetLaneTrafficLightIDs 获取关联信号灯ID列表
func (ctx *Context) GetLaneTrafficLightIDs(laneID string) ([]string, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.GetTrafficLightIDs(laneID)
}
