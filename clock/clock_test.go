package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drivora/sandbox-go/clock"
)

func TestClockTick(t *testing.T) {
	c := clock.New(100)
	assert.Equal(t, int64(0), c.Frame())
	assert.Equal(t, 0.0, c.GameTime())
	assert.Equal(t, 0.01, c.DT())

	// test: frame counter and logical time

	for range 250 {
		c.Tick()
	}
	assert.Equal(t, int64(250), c.Frame())
	assert.InDelta(t, 2.5, c.GameTime(), 1e-12)
	assert.Greater(t, c.RealElapsed(), 0.0)

	// test: reset

	c.Reset()
	assert.Equal(t, int64(0), c.Frame())
	assert.Equal(t, 0.0, c.GameTime())
	assert.Equal(t, 0.0, c.RealElapsed())
}

func TestClockSnapshot(t *testing.T) {
	c := clock.New(20)
	c.Tick()
	c.Tick()
	c.Tick()

	snap := c.Snapshot()
	assert.Equal(t, int64(3), snap.Frame)
	assert.InDelta(t, 0.15, snap.GameTime, 1e-12)
	assert.Equal(t, 20.0, snap.TargetFPS)
	assert.Greater(t, snap.ServerTime, 0.0)
	assert.GreaterOrEqual(t, snap.RealTimeElapsed, 0.0)
}

func TestClockString(t *testing.T) {
	c := clock.New(1)
	assert.Equal(t, "00:00:00", c.String())

	for range 3725 {
		c.Tick()
	}
	assert.Equal(t, "01:02:05", c.String())

	hour, minute, second := c.GetHourMinuteSecond()
	assert.Equal(t, 1, hour)
	assert.Equal(t, 2, minute)
	assert.InDelta(t, 5.0, second, 1e-9)
}
