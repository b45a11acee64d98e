package lane_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivora/sandbox-go/entity"
	"github.com/drivora/sandbox-go/entity/lane"
	"github.com/drivora/sandbox-go/utils/input"
)

func TestManagerLoad(t *testing.T) {
	m := loadTestManager(t)
	assert.Equal(t, "town_test", m.Name())
	assert.Equal(t, 5, m.Len())

	// test: lookup

	l, err := m.GetOrError("lane_a")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, l.Length(), 1e-9)
	_, err = m.GetOrError("nobody")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	// test: reload replaces the network

	require.NoError(t, m.Load(&input.NetworkData{
		Name:  "empty_town",
		Lanes: []input.LaneData{straightLane("only", 0, 0, 1, 0, 1)},
	}))
	assert.Equal(t, "empty_town", m.Name())
	assert.Equal(t, 1, m.Len())
}

func TestManagerLoadRejectsBadData(t *testing.T) {
	m := loadTestManager(t)

	// test: duplicated lane id

	network := testNetwork()
	network.Lanes = append(network.Lanes, straightLane("lane_a", 0, 10, 10, 10, 1))
	assert.ErrorIs(t, m.Load(network), entity.ErrInvalidInput)

	// test: link to unknown lane

	network = testNetwork()
	network.Lanes[0].SuccessorIDs = []string{"missing"}
	assert.ErrorIs(t, m.Load(network), entity.ErrInvalidInput)

	// test: too short central curve

	network = testNetwork()
	network.Lanes[0].CentralCurve = network.Lanes[0].CentralCurve[:1]
	assert.ErrorIs(t, m.Load(network), entity.ErrInvalidInput)

	// test: missing boundary

	network = testNetwork()
	network.Lanes[0].LeftBoundary = nil
	assert.ErrorIs(t, m.Load(network), entity.ErrInvalidInput)

	// test: every failed load keeps the old network

	assert.Equal(t, "town_test", m.Name())
	assert.Equal(t, 5, m.Len())
}

func TestManagerGetAll(t *testing.T) {
	m := loadTestManager(t)

	assert.Equal(t, []string{"lane_a", "lane_b", "lane_c", "lane_d", "lane_e"},
		m.GetAll(true, ""))

	// test: junction filter

	assert.Equal(t, []string{"lane_a", "lane_c", "lane_d", "lane_e"},
		m.GetAll(false, ""))

	// test: case-insensitive type filter

	assert.Equal(t, []string{"lane_e"}, m.GetAll(true, "sidewalk"))
	assert.Equal(t, []string{"lane_a", "lane_b", "lane_c", "lane_d"},
		m.GetAll(true, "city_driving"))
	assert.Empty(t, m.GetAll(true, "PARKING"))
}

func TestManagerGetCoordinate(t *testing.T) {
	m := loadTestManager(t)

	// test: on-lane position and heading

	pos, heading, err := m.GetCoordinate("lane_a", 5, 0)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, pos.X, 1e-9)
	assert.InDelta(t, 0.0, pos.Y, 1e-9)
	assert.InDelta(t, 0.0, heading, 1e-9)

	// test: positive l moves to the right of the travel direction

	pos, _, err = m.GetCoordinate("lane_a", 5, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, pos.Y, 1e-9)

	pos, heading, err = m.GetCoordinate("lane_c", 4, 1)
	require.NoError(t, err)
	assert.InDelta(t, 16.0, pos.X, 1e-9)
	assert.InDelta(t, 4.0, pos.Y, 1e-9)
	assert.InDelta(t, math.Pi/2, heading, 1e-9)

	// test: s out of range is a caller error, not clamped

	_, _, err = m.GetCoordinate("lane_a", 11, 0)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
	_, _, err = m.GetCoordinate("lane_a", -0.1, 0)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, _, err = m.GetCoordinate("nobody", 1, 0)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestManagerFindLaneID(t *testing.T) {
	m := loadTestManager(t)

	for _, tc := range []struct {
		x, y float64
		want string
	}{
		{5, 0, "lane_a"},
		{12.5, 0, "lane_b"},
		{15, 4, "lane_c"},
		{5, 2, "lane_d"},
		{5, 4, "lane_e"},
	} {
		got, err := m.FindLaneID(tc.x, tc.y)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	// test: free space

	_, err := m.FindLaneID(100, 100)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	// test: round trip with GetCoordinate

	pos, _, err := m.GetCoordinate("lane_b", 2.5, 0)
	require.NoError(t, err)
	got, err := m.FindLaneID(pos.X, pos.Y)
	require.NoError(t, err)
	assert.Equal(t, "lane_b", got)
}

func TestManagerFrontiers(t *testing.T) {
	m := loadTestManager(t)

	// test: depth 1 returns only direct links

	ids, err := m.GetSuccessorIDs("lane_a", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"lane_b"}, ids)

	// test: depth 2 returns the frontier, not the union of levels

	ids, err = m.GetSuccessorIDs("lane_a", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"lane_c"}, ids)

	ids, err = m.GetSuccessorIDs("lane_a", 3)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// test: depth 0 or negative is empty

	ids, err = m.GetSuccessorIDs("lane_a", 0)
	require.NoError(t, err)
	assert.Empty(t, ids)
	ids, err = m.GetSuccessorIDs("lane_a", -1)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// test: predecessors walk backwards

	ids, err = m.GetPredecessorIDs("lane_c", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"lane_a"}, ids)

	// test: neighbor frontiers

	ids, err = m.GetLeftNeighborForwardIDs("lane_a", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"lane_d"}, ids)

	ids, err = m.GetLeftNeighborForwardIDs("lane_a", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"lane_e"}, ids)

	ids, err = m.GetRightNeighborForwardIDs("lane_d", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"lane_a"}, ids)

	// test: combined getter joins left and right without duplicates

	ids, err = m.GetNeighborForwardIDs("lane_a", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"lane_d"}, ids)

	ids, err = m.GetNeighborReverseIDs("lane_a", 1)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// test: unknown lane

	_, err = m.GetSuccessorIDs("nobody", 1)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestManagerFindPath(t *testing.T) {
	m := loadTestManager(t)

	// test: successor chain

	path, err := m.FindPath("lane_a", "lane_c")
	require.NoError(t, err)
	assert.Equal(t, []string{"lane_a", "lane_b", "lane_c"}, path)

	// test: lane change edge

	path, err = m.FindPath("lane_a", "lane_d")
	require.NoError(t, err)
	assert.Equal(t, []string{"lane_a", "lane_d"}, path)

	// test: same start and end

	path, err = m.FindPath("lane_b", "lane_b")
	require.NoError(t, err)
	assert.Equal(t, []string{"lane_b"}, path)

	// test: unreachable target yields an empty path

	path, err = m.FindPath("lane_c", "lane_a")
	require.NoError(t, err)
	assert.Empty(t, path)

	// test: unknown lanes

	_, err = m.FindPath("nobody", "lane_a")
	assert.ErrorIs(t, err, entity.ErrNotFound)
	_, err = m.FindPath("lane_a", "nobody")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestManagerLaneQueries(t *testing.T) {
	m := loadTestManager(t)

	typ, err := m.GetType("lane_e")
	require.NoError(t, err)
	assert.Equal(t, lane.TypeSidewalk, typ)

	turn, err := m.GetTurn("lane_b")
	require.NoError(t, err)
	assert.Equal(t, "LEFT_TURN", turn)

	direction, err := m.GetDirection("lane_e")
	require.NoError(t, err)
	assert.Equal(t, lane.DirectionBackward, direction)

	length, err := m.GetLength("lane_c")
	require.NoError(t, err)
	assert.InDelta(t, 8.0, length, 1e-9)

	speed, err := m.GetSpeedLimit("lane_a")
	require.NoError(t, err)
	assert.InDelta(t, 13.89, speed, 1e-9)

	isJunction, err := m.IsJunctionLane("lane_b")
	require.NoError(t, err)
	assert.True(t, isJunction)

	isDriving, err := m.IsDrivingLane("lane_a")
	require.NoError(t, err)
	assert.True(t, isDriving)
	isDriving, err = m.IsDrivingLane("lane_e")
	require.NoError(t, err)
	assert.False(t, isDriving)

	curve, err := m.GetCentralCurve("lane_a")
	require.NoError(t, err)
	require.Len(t, curve, 2)
	assert.InDelta(t, 10.0, curve[1].X, 1e-9)

	boundaryType, err := m.GetRightBoundaryType("lane_a")
	require.NoError(t, err)
	assert.Equal(t, lane.BoundaryCurb, boundaryType)

	polygon, err := m.GetPolygon("lane_a")
	require.NoError(t, err)
	assert.Len(t, polygon, 4)

	lightIDs, err := m.GetTrafficLightIDs("lane_b")
	require.NoError(t, err)
	assert.Equal(t, []string{"tl-1"}, lightIDs)

	// test: unknown lane propagates through every query

	_, err = m.GetType("nobody")
	assert.ErrorIs(t, err, entity.ErrNotFound)
	_, err = m.GetPolygon("nobody")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
