package monitor

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourglobe/stagecam/internal/cache"
	"github.com/tourglobe/stagecam/internal/coordinator"
	"github.com/tourglobe/stagecam/internal/engine/sim"
	"github.com/tourglobe/stagecam/internal/geo"
	"github.com/tourglobe/stagecam/internal/interaction"
	"github.com/tourglobe/stagecam/internal/lock"
	"github.com/tourglobe/stagecam/internal/rotate"
	"github.com/tourglobe/stagecam/internal/stops"
	"github.com/tourglobe/stagecam/internal/zoom"
)

type stubStats struct {
	ticks   int
	total   time.Duration
	renders int
}

func (s *stubStats) DrainFrameStats() (int, time.Duration, int) {
	return s.ticks, s.total, s.renders
}

func newTestCoordinator(t *testing.T) *coordinator.Coordinator {
	t.Helper()
	eng := sim.New(geo.WGS84())
	state := interaction.NewState()
	c := coordinator.New(coordinator.Deps{
		Camera:     eng.Camera(),
		Controller: eng.Controller(),
		Scene:      eng.Scene(),
		Rotator:    rotate.NewScheduler(eng.Camera(), state, rotate.Config{}),
		Governor:   zoom.NewGovernor(eng.Camera(), eng.Controller(), state, zoom.Config{}),
		Lock:       lock.NewController(eng.Camera(), eng.Controller(), eng.Scene()),
		State:      state,
		Stops:      stops.NewItinerary(),
		Entities:   cache.NewVenueCache(),
		Logger:     zerolog.Nop(),
	}, coordinator.Config{})
	c.Init()
	return c
}

func TestService_Snapshot(t *testing.T) {
	s := NewService(Dependencies{
		Coordinator: newTestCoordinator(t),
		Stats:       &stubStats{ticks: 60, total: 960 * time.Millisecond, renders: 12},
		Logger:      zerolog.Nop(),
		StatusDir:   t.TempDir(),
	})

	stats := s.Snapshot()
	assert.Equal(t, "overview", stats.Mode)
	assert.Equal(t, 60, stats.Ticks)
	assert.Equal(t, 12, stats.RenderRequests)
	assert.Equal(t, 16*time.Millisecond, stats.AvgTick)
}

func TestService_SnapshotNoTicks(t *testing.T) {
	s := NewService(Dependencies{
		Coordinator: newTestCoordinator(t),
		Stats:       &stubStats{},
		Logger:      zerolog.Nop(),
		StatusDir:   t.TempDir(),
	})

	stats := s.Snapshot()
	assert.Equal(t, time.Duration(0), stats.AvgTick)
}

func TestService_StartStop(t *testing.T) {
	s := NewService(Dependencies{
		Coordinator: newTestCoordinator(t),
		Stats:       &stubStats{},
		Logger:      zerolog.Nop(),
		StatusDir:   t.TempDir(),
	})
	assert.False(t, s.IsRunning())

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())

	// starting twice is a no-op
	require.NoError(t, s.Start())

	s.Stop()
	assert.Eventually(t, func() bool { return !s.IsRunning() },
		3*time.Second, 50*time.Millisecond)
}
