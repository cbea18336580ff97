// internal/telemetry/factory.go
package telemetry

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tourglobe/stagecam/internal/config"
	"github.com/tourglobe/stagecam/internal/telemetry/gormdb"
	"github.com/tourglobe/stagecam/internal/telemetry/memory"
)

// NewBackend creates a session-recording backend based on configuration
func NewBackend(cfg config.TelemetryConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "memory":
		return memory.New(cfg.Memory), nil
	case "gorm":
		return gormdb.New(log), nil
	default:
		return nil, fmt.Errorf("unknown telemetry type: %s", cfg.Type)
	}
}
