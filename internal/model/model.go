package model

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Session{},
	&TransitionEvent{},
	&ZoomCorrection{},
	&CameraSample{},
}

// DatabaseModelsSQLite mirrors DatabaseModels for the local fallback DB.
var DatabaseModelsSQLite = []interface{}{
	&Session{},
	&TransitionEvent{},
	&ZoomCorrection{},
	&CameraSample{},
}

// Session represents one recorded viewing session.
type Session struct {
	gorm.Model
	Tour      string `json:"tour" gorm:"size:127"`
	StartedAt time.Time
	EndedAt   sql.NullTime
}

// TransitionEvent records one phase of a mode flight.
type TransitionEvent struct {
	gorm.Model
	SessionID  uint `gorm:"index"`
	Time       time.Time
	Phase      string `gorm:"size:15"`
	TargetMode string `gorm:"size:15"`
	StopID     string `gorm:"size:63"`
	Cancelled  bool
	Extra      datatypes.JSON
}

// ZoomCorrection records a corrective zoom flight.
type ZoomCorrection struct {
	gorm.Model
	SessionID    uint `gorm:"index"`
	Time         time.Time
	FromDistance float64
	ToDistance   float64
}

// CameraSample is a periodic camera position sample.
type CameraSample struct {
	gorm.Model
	SessionID uint `gorm:"index"`
	Time      time.Time
	Mode      string `gorm:"size:15"`
	X         float64
	Y         float64
	Z         float64
}
