// Package core holds the storage-agnostic session record types. The
// telemetry backends persist these; the gorm backend converts them to
// its own schema models first.
package core

import "time"

// Position3D is a cartesian position in meters.
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Session represents one recorded viewing session.
type Session struct {
	ID        uint       `json:"id"`
	Tour      string     `json:"tour"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

// TransitionEvent records one phase of a mode flight: takeoff or
// resolution, with the mode the flight was heading for.
type TransitionEvent struct {
	ID         uint           `json:"id"`
	Time       time.Time      `json:"time"`
	Phase      string         `json:"phase"`
	TargetMode string         `json:"targetMode"`
	StopID     string         `json:"stopId,omitempty"`
	Cancelled  bool           `json:"cancelled"`
	Extra      map[string]any `json:"extra,omitempty"`
}

// ZoomCorrection records a corrective zoom flight: the camera was out
// of the active distance band and got flown back in.
type ZoomCorrection struct {
	ID           uint      `json:"id"`
	Time         time.Time `json:"time"`
	FromDistance float64   `json:"fromDistance"`
	ToDistance   float64   `json:"toDistance"`
}

// CameraSample is a periodic camera position sample.
type CameraSample struct {
	ID       uint       `json:"id"`
	Time     time.Time  `json:"time"`
	Mode     string     `json:"mode"`
	Position Position3D `json:"position"`
}
