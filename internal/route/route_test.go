package route

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourglobe/stagecam/internal/coordinator"
	"github.com/tourglobe/stagecam/internal/stops"
)

func fl(v float64) *float64 { return &v }

func testStops() []stops.Stop {
	return []stops.Stop{
		{ID: "s3", Order: 3, City: "Berlin", Lat: fl(52.5069), Lng: fl(13.4443)},
		{ID: "s1", Order: 1, City: "London", Lat: fl(51.503), Lng: fl(0.003)},
		{ID: "s2", Order: 2, City: "Paris", Lat: fl(48.8386), Lng: fl(2.3786)},
	}
}

func TestLayer_Build(t *testing.T) {
	l := NewLayer()

	_, built := l.Line()
	assert.False(t, built)

	require.NoError(t, l.Build(testStops()))

	line, built := l.Line()
	require.True(t, built)
	seq := line.Coordinates()
	require.Equal(t, 3, seq.Length())

	// stops are connected in itinerary order; London is west of Paris
	first := seq.GetXY(0)
	second := seq.GetXY(1)
	assert.Less(t, first.X, second.X)
}

func TestLayer_BuildSkipsUnlocatedStops(t *testing.T) {
	l := NewLayer()
	list := append(testStops(), stops.Stop{ID: "s4", Order: 4, City: "TBD"})

	require.NoError(t, l.Build(list))

	line, built := l.Line()
	require.True(t, built)
	assert.Equal(t, 3, line.Coordinates().Length())
}

func TestLayer_BuildNeedsTwoLocatedStops(t *testing.T) {
	l := NewLayer()

	err := l.Build([]stops.Stop{
		{ID: "s1", Order: 1, Lat: fl(48.8), Lng: fl(2.3)},
		{ID: "s2", Order: 2},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 located stops")

	_, built := l.Line()
	assert.False(t, built)
}

func TestLayer_Apply(t *testing.T) {
	l := NewLayer()
	require.NoError(t, l.Build(testStops()))
	at := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	assert.False(t, l.Visible())

	// flying out to overview shows the route as soon as the flight starts
	l.Apply(coordinator.Event{Phase: coordinator.PhaseStarted, TargetMode: coordinator.ModeOverview, At: at})
	assert.True(t, l.Visible())

	// the ended notification changes nothing
	l.Apply(coordinator.Event{Phase: coordinator.PhaseEnded, TargetMode: coordinator.ModeOverview, At: at})
	assert.True(t, l.Visible())

	// heading into a venue hides it again
	l.Apply(coordinator.Event{Phase: coordinator.PhaseStarted, TargetMode: coordinator.ModeVenue, StopID: "s1", At: at})
	assert.False(t, l.Visible())
}
