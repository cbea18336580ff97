// internal/telemetry/telemetry.go
package telemetry

import "github.com/tourglobe/stagecam/pkg/core"

// Backend is the interface all session-recording implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Session management
	StartSession(s *core.Session) error
	EndSession() error

	// Record recording
	RecordTransition(e *core.TransitionEvent) error
	RecordZoomCorrection(z *core.ZoomCorrection) error
	RecordCameraSample(c *core.CameraSample) error
}

// Exportable is an optional interface for backends that produce a
// session file on disk.
type Exportable interface {
	ExportedFilePath() string
}
