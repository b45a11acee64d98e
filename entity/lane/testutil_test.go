package lane_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drivora/sandbox-go/entity/lane"
	"github.com/drivora/sandbox-go/utils/input"
)

// straightLane 构造一条等宽直线车道，边线沿法向偏移halfW
func straightLane(id string, x0, y0, x1, y1, halfW float64) input.LaneData {
	dx, dy := x1-x0, y1-y0
	norm := math.Hypot(dx, dy)
	// 左法向
	nx, ny := -dy/norm, dx/norm
	return input.LaneData{
		ID:           id,
		Type:         lane.TypeCityDriving,
		Turn:         "NO_TURN",
		Direction:    lane.DirectionForward,
		SpeedLimit:   13.89,
		CentralCurve: []input.PointData{{X: x0, Y: y0}, {X: x1, Y: y1}},
		LeftBoundary: []input.PointData{
			{X: x0 + nx*halfW, Y: y0 + ny*halfW},
			{X: x1 + nx*halfW, Y: y1 + ny*halfW},
		},
		RightBoundary: []input.PointData{
			{X: x0 - nx*halfW, Y: y0 - ny*halfW},
			{X: x1 - nx*halfW, Y: y1 - ny*halfW},
		},
		LeftBoundaryType:  lane.BoundaryDottedWhite,
		RightBoundaryType: lane.BoundaryCurb,
	}
}

// testNetwork 构造查询与路径规划测试用的小路网
//
//	lane_e (0,4)->(10,4) 逆向人行道
//	lane_d (0,2)->(10,2)
//	lane_a (0,0)->(10,0) -> lane_b (10,0)->(15,0) 路口 -> lane_c (15,0)->(15,8)
func testNetwork() *input.NetworkData {
	a := straightLane("lane_a", 0, 0, 10, 0, 1)
	a.SuccessorIDs = []string{"lane_b"}
	a.LeftNeighborForwardIDs = []string{"lane_d"}

	b := straightLane("lane_b", 10, 0, 15, 0, 1)
	b.IsJunction = true
	b.Turn = "LEFT_TURN"
	b.PredecessorIDs = []string{"lane_a"}
	b.SuccessorIDs = []string{"lane_c"}
	b.TrafficLightIDs = []string{"tl-1"}

	c := straightLane("lane_c", 15, 0, 15, 8, 1)
	c.PredecessorIDs = []string{"lane_b"}

	d := straightLane("lane_d", 0, 2, 10, 2, 1)
	d.RightNeighborForwardIDs = []string{"lane_a"}
	d.LeftNeighborForwardIDs = []string{"lane_e"}

	e := straightLane("lane_e", 0, 4, 10, 4, 1)
	e.Type = lane.TypeSidewalk
	e.Direction = lane.DirectionBackward
	e.PredecessorIDs = []string{"lane_d"}
	e.RightNeighborForwardIDs = []string{"lane_d"}

	return &input.NetworkData{
		Name:  "town_test",
		Lanes: []input.LaneData{a, b, c, d, e},
	}
}

func loadTestManager(t *testing.T) *lane.LaneManager {
	t.Helper()
	m := lane.NewManager()
	require.NoError(t, m.Load(testNetwork()))
	return m
}
