// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"database/sql"
	"encoding/json"

	"github.com/tourglobe/stagecam/internal/model"
	"github.com/tourglobe/stagecam/pkg/core"
)

// SessionToGorm converts a core.Session to a GORM Session.
func SessionToGorm(s core.Session) model.Session {
	out := model.Session{
		Tour:      s.Tour,
		StartedAt: s.StartedAt,
	}
	out.ID = s.ID
	if s.EndedAt != nil {
		out.EndedAt = sql.NullTime{Time: *s.EndedAt, Valid: true}
	}
	return out
}

// SessionToCore converts a GORM Session to a core.Session.
func SessionToCore(s model.Session) core.Session {
	out := core.Session{
		ID:        s.ID,
		Tour:      s.Tour,
		StartedAt: s.StartedAt,
	}
	if s.EndedAt.Valid {
		t := s.EndedAt.Time
		out.EndedAt = &t
	}
	return out
}

// TransitionToGorm converts a core.TransitionEvent to a GORM
// TransitionEvent. The Extra map is marshalled into a JSON column.
func TransitionToGorm(e core.TransitionEvent, sessionID uint) model.TransitionEvent {
	out := model.TransitionEvent{
		SessionID:  sessionID,
		Time:       e.Time,
		Phase:      e.Phase,
		TargetMode: e.TargetMode,
		StopID:     e.StopID,
		Cancelled:  e.Cancelled,
	}
	out.ID = e.ID
	if len(e.Extra) > 0 {
		if raw, err := json.Marshal(e.Extra); err == nil {
			out.Extra = raw
		}
	}
	return out
}

// TransitionToCore converts a GORM TransitionEvent to a core.TransitionEvent.
func TransitionToCore(e model.TransitionEvent) core.TransitionEvent {
	out := core.TransitionEvent{
		ID:         e.ID,
		Time:       e.Time,
		Phase:      e.Phase,
		TargetMode: e.TargetMode,
		StopID:     e.StopID,
		Cancelled:  e.Cancelled,
	}
	if len(e.Extra) > 0 {
		var extra map[string]any
		if err := json.Unmarshal(e.Extra, &extra); err == nil {
			out.Extra = extra
		}
	}
	return out
}

// ZoomCorrectionToGorm converts a core.ZoomCorrection to its GORM model.
func ZoomCorrectionToGorm(z core.ZoomCorrection, sessionID uint) model.ZoomCorrection {
	out := model.ZoomCorrection{
		SessionID:    sessionID,
		Time:         z.Time,
		FromDistance: z.FromDistance,
		ToDistance:   z.ToDistance,
	}
	out.ID = z.ID
	return out
}

// ZoomCorrectionToCore converts a GORM ZoomCorrection to a core.ZoomCorrection.
func ZoomCorrectionToCore(z model.ZoomCorrection) core.ZoomCorrection {
	return core.ZoomCorrection{
		ID:           z.ID,
		Time:         z.Time,
		FromDistance: z.FromDistance,
		ToDistance:   z.ToDistance,
	}
}

// CameraSampleToGorm converts a core.CameraSample to its GORM model.
func CameraSampleToGorm(c core.CameraSample, sessionID uint) model.CameraSample {
	out := model.CameraSample{
		SessionID: sessionID,
		Time:      c.Time,
		Mode:      c.Mode,
		X:         c.Position.X,
		Y:         c.Position.Y,
		Z:         c.Position.Z,
	}
	out.ID = c.ID
	return out
}

// CameraSampleToCore converts a GORM CameraSample to a core.CameraSample.
func CameraSampleToCore(c model.CameraSample) core.CameraSample {
	return core.CameraSample{
		ID:   c.ID,
		Time: c.Time,
		Mode: c.Mode,
		Position: core.Position3D{
			X: c.X,
			Y: c.Y,
			Z: c.Z,
		},
	}
}
