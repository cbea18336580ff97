// internal/telemetry/gormdb/gormdb.go
package gormdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tourglobe/stagecam/internal/database"
	"github.com/tourglobe/stagecam/internal/model"
	"github.com/tourglobe/stagecam/internal/model/convert"
	"github.com/tourglobe/stagecam/pkg/core"
)

// Backend persists session data through GORM, preferring Postgres and
// falling back to a local SQLite database.
type Backend struct {
	mgr       *database.Manager
	logger    zerolog.Logger
	sessionID uint
}

// New creates a new GORM-backed session recorder.
func New(log zerolog.Logger) *Backend {
	return &Backend{
		mgr:    database.NewManager(log),
		logger: log,
	}
}

// Init connects to the database and migrates the schema.
func (b *Backend) Init() error {
	if err := b.mgr.Connect(); err != nil {
		return err
	}
	return b.mgr.Setup()
}

// Close shuts down the database connection.
func (b *Backend) Close() error {
	if b.mgr.SqlDB != nil {
		return b.mgr.SqlDB.Close()
	}
	return nil
}

// StartSession creates the session row and assigns its ID back to s.
func (b *Backend) StartSession(s *core.Session) error {
	if !b.mgr.IsValid {
		return fmt.Errorf("database not valid")
	}

	row := convert.SessionToGorm(*s)
	row.ID = 0
	if err := b.mgr.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	s.ID = row.ID
	b.sessionID = row.ID
	b.logger.Debug().Uint("session", row.ID).Str("tour", s.Tour).Msg("Session row created")
	return nil
}

// EndSession stamps the session end time and, when running on the
// in-memory SQLite fallback, dumps the database to disk.
func (b *Backend) EndSession() error {
	if !b.mgr.IsValid {
		return fmt.Errorf("database not valid")
	}

	err := b.mgr.DB.Model(&model.Session{}).
		Where("id = ?", b.sessionID).
		Update("ended_at", sql.NullTime{Time: time.Now(), Valid: true}).Error
	if err != nil {
		return fmt.Errorf("ending session: %w", err)
	}

	if b.mgr.ShouldSaveLocal && b.mgr.SqliteFilePath != "" {
		return b.mgr.DumpMemoryToDisk()
	}
	return nil
}

// RecordTransition persists a mode transition phase.
func (b *Backend) RecordTransition(e *core.TransitionEvent) error {
	if !b.mgr.IsValid {
		return fmt.Errorf("database not valid")
	}
	row := convert.TransitionToGorm(*e, b.sessionID)
	row.ID = 0
	if err := b.mgr.DB.Create(&row).Error; err != nil {
		return err
	}
	e.ID = row.ID
	return nil
}

// RecordZoomCorrection persists a corrective zoom flight.
func (b *Backend) RecordZoomCorrection(z *core.ZoomCorrection) error {
	if !b.mgr.IsValid {
		return fmt.Errorf("database not valid")
	}
	row := convert.ZoomCorrectionToGorm(*z, b.sessionID)
	row.ID = 0
	if err := b.mgr.DB.Create(&row).Error; err != nil {
		return err
	}
	z.ID = row.ID
	return nil
}

// RecordCameraSample persists a periodic camera sample.
func (b *Backend) RecordCameraSample(c *core.CameraSample) error {
	if !b.mgr.IsValid {
		return fmt.Errorf("database not valid")
	}
	row := convert.CameraSampleToGorm(*c, b.sessionID)
	row.ID = 0
	if err := b.mgr.DB.Create(&row).Error; err != nil {
		return err
	}
	c.ID = row.ID
	return nil
}
