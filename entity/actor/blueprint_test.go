package actor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivora/sandbox-go/entity"
	"github.com/drivora/sandbox-go/entity/actor"
)

func TestBlueprintTable(t *testing.T) {
	// test: registered categories

	categories := actor.Categories()
	assert.Contains(t, categories, "vehicle.lincoln.mkz")
	assert.Contains(t, categories, "vehicle.lincoln.mkz.perfect")
	assert.Contains(t, categories, "vehicle.lincoln.mkz_lgsvl")
	assert.Contains(t, categories, "vehicle.lincoln.mkz_lgsvl.perfect")
	assert.Contains(t, categories, "vehicle.bicycle.normal")
	assert.Contains(t, categories, "vehicle.bicycle.normal.perfect")
	assert.Contains(t, categories, "walker.pedestrian.normal")
	assert.Contains(t, categories, "static.traffic_cone")
	assert.Contains(t, categories, "signal.traffic_light")
	assert.Len(t, categories, 9)

	// test: vehicle parameters

	bp, err := actor.GetBlueprint("vehicle.lincoln.mkz")
	require.NoError(t, err)
	assert.Equal(t, actor.CategoryVehicle, bp.Category)
	assert.InDelta(t, 4.933, bp.BBox.Length, 1e-9)
	assert.InDelta(t, 2.11, bp.BBox.Width, 1e-9)
	assert.InDelta(t, 2.0, bp.MaxAcceleration, 1e-9)
	assert.InDelta(t, -6.0, bp.MaxDeceleration, 1e-9)
	assert.InDelta(t, 3.89, bp.FrontEdgeToCenter, 1e-9)
	assert.InDelta(t, 1.043, bp.BackEdgeToCenter, 1e-9)
	assert.InDelta(t, 16.0, bp.SteerRatio, 1e-9)
	assert.InDelta(t, 2.8448, bp.Wheelbase, 1e-9)

	// test: perfect variant shares the base parameters

	perfect, err := actor.GetBlueprint("vehicle.lincoln.mkz.perfect")
	require.NoError(t, err)
	assert.Equal(t, bp.BBox, perfect.BBox)
	assert.Equal(t, bp.Wheelbase, perfect.Wheelbase)

	// test: signal blueprint is queryable but not an actor

	signalBp, err := actor.GetBlueprint("signal.traffic_light")
	require.NoError(t, err)
	assert.Equal(t, actor.CategorySignal, signalBp.Category)
	assert.Equal(t, "traffic_light", signalBp.SubCategory)

	// test: unknown category

	_, err = actor.GetBlueprint("vehicle.unknown")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestNewActor(t *testing.T) {
	// test: construct each buildable category

	for _, tc := range []struct {
		category string
		coarse   string
	}{
		{"vehicle.lincoln.mkz", actor.CategoryVehicle},
		{"vehicle.lincoln.mkz.perfect", actor.CategoryVehicle},
		{"vehicle.bicycle.normal", actor.CategoryVehicle},
		{"walker.pedestrian.normal", actor.CategoryWalker},
		{"static.traffic_cone", actor.CategoryStatic},
	} {
		a, err := actor.New(tc.category, "a-"+tc.category, entity.Location{X: 1, Y: 2})
		require.NoError(t, err, tc.category)
		assert.Equal(t, tc.coarse, a.Category(), tc.category)
		assert.Equal(t, entity.StatusNotReady, a.Status(), tc.category)
		assert.Equal(t, 1.0, a.Location().X, tc.category)
	}

	// test: signal category cannot be built as an actor

	_, err := actor.New("signal.traffic_light", "tl-1", entity.Location{})
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = actor.New("walker.unknown", "w-1", entity.Location{})
	assert.ErrorIs(t, err, entity.ErrNotFound)

	// test: spawn yaw is normalized

	a, err := actor.New("static.traffic_cone", "c-1", entity.Location{Yaw: 3 * 3.14159265358979})
	require.NoError(t, err)
	yaw := a.Location().Yaw
	assert.Greater(t, yaw, -3.1416)
	assert.LessOrEqual(t, yaw, 3.1416)
}
