package lane_test

import (
	"math"
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivora/sandbox-go/entity/lane"
	"github.com/drivora/sandbox-go/utils/input"
)

// bendNetwork 带直角转弯中心线的单车道路网
func bendNetwork() *input.NetworkData {
	bend := input.LaneData{
		ID:         "bend",
		Type:       lane.TypeCityDriving,
		Direction:  lane.DirectionForward,
		SpeedLimit: 10,
		CentralCurve: []input.PointData{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10},
		},
		LeftBoundary: []input.PointData{
			{X: 0, Y: 1}, {X: 9, Y: 1}, {X: 9, Y: 10},
		},
		RightBoundary: []input.PointData{
			{X: 0, Y: -1}, {X: 11, Y: -1}, {X: 11, Y: 10},
		},
	}
	return &input.NetworkData{Name: "bend_town", Lanes: []input.LaneData{bend}}
}

func TestLanePositionByS(t *testing.T) {
	m := lane.NewManager()
	require.NoError(t, m.Load(bendNetwork()))
	l := m.Get("bend")
	assert.InDelta(t, 20.0, l.Length(), 1e-9)

	// test: interpolation on both segments

	p := l.GetPositionByS(5)
	assert.InDelta(t, 5.0, p.X, 1e-9)
	assert.InDelta(t, 0.0, p.Y, 1e-9)

	p = l.GetPositionByS(15)
	assert.InDelta(t, 10.0, p.X, 1e-9)
	assert.InDelta(t, 5.0, p.Y, 1e-9)

	// test: s beyond the lane clamps to the endpoints

	p = l.GetPositionByS(-1)
	assert.InDelta(t, 0.0, p.X, 1e-9)
	p = l.GetPositionByS(25)
	assert.InDelta(t, 10.0, p.X, 1e-9)
	assert.InDelta(t, 10.0, p.Y, 1e-9)
}

func TestLaneDirectionByS(t *testing.T) {
	m := lane.NewManager()
	require.NoError(t, m.Load(bendNetwork()))
	l := m.Get("bend")

	assert.InDelta(t, 0.0, l.GetDirectionByS(5), 1e-9)
	assert.InDelta(t, math.Pi/2, l.GetDirectionByS(10.5), 1e-9)
	assert.InDelta(t, math.Pi/2, l.GetDirectionByS(20), 1e-9)
	assert.InDelta(t, math.Pi/2, l.GetDirectionByS(25), 1e-9)

	// test: at the joint the earlier segment wins

	assert.InDelta(t, 0.0, l.GetDirectionByS(10), 1e-9)
}

func TestLaneOffsetPosition(t *testing.T) {
	m := lane.NewManager()
	require.NoError(t, m.Load(bendNetwork()))
	l := m.Get("bend")

	// test: positive offset moves to the right of the travel direction

	p := l.GetOffsetPositionByS(5, 1)
	assert.InDelta(t, 5.0, p.X, 1e-9)
	assert.InDelta(t, -1.0, p.Y, 1e-9)

	p = l.GetOffsetPositionByS(15, 1)
	assert.InDelta(t, 11.0, p.X, 1e-9)
	assert.InDelta(t, 5.0, p.Y, 1e-9)

	p = l.GetOffsetPositionByS(5, -0.5)
	assert.InDelta(t, 0.5, p.Y, 1e-9)
}

func TestLaneProjectToS(t *testing.T) {
	m := lane.NewManager()
	require.NoError(t, m.Load(bendNetwork()))
	l := m.Get("bend")

	assert.InDelta(t, 3.0, l.ProjectToS(geometry.Point{X: 3, Y: 0.5}), 1e-9)
	assert.InDelta(t, 13.0, l.ProjectToS(geometry.Point{X: 10.5, Y: 3}), 1e-9)

	// test: points beyond the ends clamp to [0, length]

	assert.InDelta(t, 0.0, l.ProjectToS(geometry.Point{X: -5, Y: 0}), 1e-9)
	assert.InDelta(t, 20.0, l.ProjectToS(geometry.Point{X: 10, Y: 30}), 1e-9)
}

func TestLanePolygon(t *testing.T) {
	m := lane.NewManager()
	require.NoError(t, m.Load(bendNetwork()))
	l := m.Get("bend")

	// test: boundary polygon is left + reversed right, not closed

	polygon := l.BoundaryPolygon()
	require.Len(t, polygon, 6)
	assert.InDelta(t, 0.0, polygon[0].X, 1e-9)
	assert.InDelta(t, 1.0, polygon[0].Y, 1e-9)
	assert.InDelta(t, 11.0, polygon[3].X, 1e-9)
	assert.InDelta(t, 10.0, polygon[3].Y, 1e-9)
	assert.NotEqual(t, polygon[0], polygon[len(polygon)-1])

	// test: containment

	assert.True(t, l.Contains(5, 0))
	assert.False(t, l.Contains(20, 20))
	assert.False(t, l.Contains(-1, -5))
}
