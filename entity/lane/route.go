package lane

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"

	"github.com/drivora/sandbox-go/entity"
)

// Route 途经多个坐标点的连续路线
type Route struct {
	LanePath []string         `json:"lane_path"` // 途经车道ID序列
	Geometry []geometry.Point `json:"geometry"`  // 途经车道中心线拼接成的折线
}

// RoutePlanner 规划途经多个坐标点的连续路线
// 功能：逐段求相邻途经点所在车道间的最短路径并拼接
// 参数：waypoints-平面坐标途经点列表，至少2个
// 返回：完整路线
// 说明：相邻两段衔接处共享的车道只保留一次；
// 途经点不在任何车道上或两段间不可达时报not found
func (m *LaneManager) RoutePlanner(waypoints []geometry.Point) (*Route, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("route needs at least 2 waypoints, got %d: %w",
			len(waypoints), entity.ErrInvalidInput)
	}
	route := &Route{
		LanePath: make([]string, 0),
		Geometry: make([]geometry.Point, 0),
	}
	for i := 0; i < len(waypoints)-1; i++ {
		startLane, err := m.FindLaneID(waypoints[i].X, waypoints[i].Y)
		if err != nil {
			return nil, fmt.Errorf("route segment %d: %w", i, err)
		}
		endLane, err := m.FindLaneID(waypoints[i+1].X, waypoints[i+1].Y)
		if err != nil {
			return nil, fmt.Errorf("route segment %d: %w", i, err)
		}
		lanePath, err := m.FindPath(startLane, endLane)
		if err != nil {
			return nil, err
		}
		if len(lanePath) == 0 {
			return nil, fmt.Errorf("route segment %d: no path between %s and %s: %w",
				i, startLane, endLane, entity.ErrNotFound)
		}
		if len(route.LanePath) > 0 && lanePath[0] == route.LanePath[len(route.LanePath)-1] {
			lanePath = lanePath[1:]
		}
		route.LanePath = append(route.LanePath, lanePath...)
		for _, id := range lanePath {
			route.Geometry = append(route.Geometry, m.data[id].line...)
		}
	}
	return route, nil
}
