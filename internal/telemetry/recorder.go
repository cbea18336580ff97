package telemetry

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tourglobe/stagecam/internal/coordinator"
	"github.com/tourglobe/stagecam/internal/geo"
	"github.com/tourglobe/stagecam/internal/zoom"
	"github.com/tourglobe/stagecam/pkg/core"
)

// Recorder feeds choreography activity into a Backend. Record failures
// are logged and dropped: session telemetry never disturbs the camera.
type Recorder struct {
	backend Backend
	logger  zerolog.Logger
}

// NewRecorder creates a recorder writing to the given backend.
func NewRecorder(b Backend, log zerolog.Logger) *Recorder {
	return &Recorder{backend: b, logger: log}
}

// Start opens a new recording session.
func (r *Recorder) Start(tour string, at time.Time) error {
	return r.backend.StartSession(&core.Session{Tour: tour, StartedAt: at})
}

// End closes the session and triggers the backend export.
func (r *Recorder) End() error {
	return r.backend.EndSession()
}

// TransitionListener returns a listener for coordinator.OnTransition.
func (r *Recorder) TransitionListener() func(coordinator.Event) {
	return func(ev coordinator.Event) {
		rec := core.TransitionEvent{
			Time:       ev.At,
			Phase:      phaseName(ev.Phase),
			TargetMode: ev.TargetMode.String(),
			StopID:     ev.StopID,
			Cancelled:  ev.Cancelled,
		}
		if err := r.backend.RecordTransition(&rec); err != nil {
			r.logger.Error().Err(err).Msg("Failed to record transition")
		}
	}
}

// CorrectionListener returns a listener for zoom.Governor.OnCorrection.
func (r *Recorder) CorrectionListener() func(zoom.Correction) {
	return func(c zoom.Correction) {
		rec := core.ZoomCorrection{
			Time:         c.At,
			FromDistance: c.FromDistance,
			ToDistance:   c.ToDistance,
		}
		if err := r.backend.RecordZoomCorrection(&rec); err != nil {
			r.logger.Error().Err(err).Msg("Failed to record zoom correction")
		}
	}
}

// Sample records a camera position sample.
func (r *Recorder) Sample(at time.Time, mode string, pos geo.Vec3) {
	rec := core.CameraSample{
		Time: at,
		Mode: mode,
		Position: core.Position3D{
			X: pos.X,
			Y: pos.Y,
			Z: pos.Z,
		},
	}
	if err := r.backend.RecordCameraSample(&rec); err != nil {
		r.logger.Error().Err(err).Msg("Failed to record camera sample")
	}
}

func phaseName(p coordinator.Phase) string {
	if p == coordinator.PhaseStarted {
		return "started"
	}
	return "ended"
}
