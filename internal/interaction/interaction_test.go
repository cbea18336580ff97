package interaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestState_Pointer(t *testing.T) {
	s := NewState()
	assert.False(t, s.IsPointerDown())

	s.PointerDown()
	assert.True(t, s.IsPointerDown())

	s.PointerUp()
	assert.False(t, s.IsPointerDown())
}

func TestState_Flight(t *testing.T) {
	s := NewState()
	assert.False(t, s.IsFlightInProgress())

	s.BeginFlight()
	assert.True(t, s.IsFlightInProgress())

	s.EndFlight()
	assert.False(t, s.IsFlightInProgress())
}

func TestState_SinceWheel(t *testing.T) {
	s := NewState()
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	// no wheel input yet: effectively infinite
	assert.Greater(t, s.SinceWheel(now), 100*365*24*time.Hour)

	s.Wheel(now)
	assert.Equal(t, time.Duration(0), s.SinceWheel(now))
	assert.Equal(t, 300*time.Millisecond, s.SinceWheel(now.Add(300*time.Millisecond)))

	// a newer wheel input resets the measurement
	s.Wheel(now.Add(time.Second))
	assert.Equal(t, 100*time.Millisecond, s.SinceWheel(now.Add(1100*time.Millisecond)))
}

func TestDebounce(t *testing.T) {
	d := NewDebounce(150 * time.Millisecond)
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	// disarmed: never elapsed
	assert.False(t, d.Armed())
	assert.False(t, d.Elapsed(now.Add(time.Hour)))

	d.Stamp(now)
	assert.True(t, d.Armed())
	assert.False(t, d.Elapsed(now.Add(100*time.Millisecond)))
	assert.True(t, d.Elapsed(now.Add(150*time.Millisecond)))

	// re-stamping pushes the quiet window out
	d.Stamp(now.Add(100 * time.Millisecond))
	assert.False(t, d.Elapsed(now.Add(200*time.Millisecond)))
	assert.True(t, d.Elapsed(now.Add(250*time.Millisecond)))

	d.Disarm()
	assert.False(t, d.Armed())
	assert.False(t, d.Elapsed(now.Add(time.Hour)))
}
