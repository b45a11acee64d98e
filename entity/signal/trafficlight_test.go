package signal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivora/sandbox-go/entity"
	"github.com/drivora/sandbox-go/entity/signal"
)

func TestTrafficLightState(t *testing.T) {
	// test: empty state defaults to green

	l := signal.New("tl-1", "")
	assert.Equal(t, signal.StateGreen, l.State())
	assert.Zero(t, l.StateTime())

	// test: state time accumulates per tick

	l.Tick(0.5)
	l.Tick(0.5)
	assert.InDelta(t, 1.0, l.StateTime(), 1e-9)

	// test: a state change resets the timer

	l.SetState(signal.StateRed)
	assert.Equal(t, signal.StateRed, l.State())
	assert.Zero(t, l.StateTime())

	// test: setting the same state keeps the timer

	l.Tick(0.25)
	l.SetState(signal.StateRed)
	assert.InDelta(t, 0.25, l.StateTime(), 1e-9)
}

func TestTrafficLightSnapshot(t *testing.T) {
	l := signal.New("tl-1", signal.StateYellow)
	l.Tick(0.1)

	s := l.Snapshot()
	assert.Equal(t, "tl-1", s.ID)
	assert.Equal(t, signal.Category, s.Category)
	assert.Equal(t, signal.SubCategory, s.SubCategory)
	assert.Equal(t, signal.StateYellow, s.State)
	assert.InDelta(t, 0.1, s.StateTime, 1e-9)
}

func TestSignalManager(t *testing.T) {
	m := signal.NewManager()
	require.NoError(t, m.Add(signal.New("tl-1", "")))
	require.NoError(t, m.Add(signal.New("tl-2", signal.StateRed)))
	assert.Equal(t, 2, m.Len())

	// test: duplicated id

	assert.ErrorIs(t, m.Add(signal.New("tl-1", "")), entity.ErrConflict)

	// test: lookup

	l, err := m.GetOrError("tl-2")
	require.NoError(t, err)
	assert.Equal(t, signal.StateRed, l.State())
	_, err = m.GetOrError("nobody")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	// test: update ticks every light

	m.Update(0.5)
	snapshots := m.Snapshots()
	require.Len(t, snapshots, 2)
	assert.InDelta(t, 0.5, snapshots["tl-1"].StateTime, 1e-9)
	assert.InDelta(t, 0.5, snapshots["tl-2"].StateTime, 1e-9)

	// test: removal and reset

	require.NoError(t, m.Remove("tl-1"))
	assert.ErrorIs(t, m.Remove("tl-1"), entity.ErrNotFound)
	m.Reset()
	assert.Zero(t, m.Len())
	assert.Empty(t, m.Snapshots())
}
