// internal/telemetry/memory/memory.go
package memory

import (
	"sync"
	"time"

	"github.com/tourglobe/stagecam/internal/config"
	"github.com/tourglobe/stagecam/pkg/core"
)

// Backend stores session data in memory and exports to JSON
type Backend struct {
	cfg     config.MemoryConfig
	session *core.Session

	transitions []core.TransitionEvent
	corrections []core.ZoomCorrection
	samples     []core.CameraSample

	idCounter      uint
	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StartSession begins recording a new session
func (b *Backend) StartSession(s *core.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	s.ID = b.idCounter
	b.session = s

	// Reset all collections
	b.transitions = nil
	b.corrections = nil
	b.samples = nil

	return nil
}

// EndSession finalizes and exports the session data
func (b *Backend) EndSession() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return nil
	}
	if b.session.EndedAt == nil {
		now := time.Now()
		b.session.EndedAt = &now
	}
	return b.exportJSON()
}

// RecordTransition records a mode transition phase
func (b *Backend) RecordTransition(e *core.TransitionEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	e.ID = b.idCounter
	b.transitions = append(b.transitions, *e)
	return nil
}

// RecordZoomCorrection records a corrective zoom flight
func (b *Backend) RecordZoomCorrection(z *core.ZoomCorrection) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	z.ID = b.idCounter
	b.corrections = append(b.corrections, *z)
	return nil
}

// RecordCameraSample records a periodic camera sample
func (b *Backend) RecordCameraSample(c *core.CameraSample) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	c.ID = b.idCounter
	b.samples = append(b.samples, *c)
	return nil
}

// Transitions returns a copy of the recorded transitions.
func (b *Backend) Transitions() []core.TransitionEvent {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.TransitionEvent, len(b.transitions))
	copy(out, b.transitions)
	return out
}

// ExportedFilePath returns the path of the last exported session file.
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
