// Package monitor runs the background status reporter: a status file
// for operators plus per-second frame statistics shipped to InfluxDB.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tourglobe/stagecam/internal/coordinator"
	"github.com/tourglobe/stagecam/internal/influx"
)

// FrameStats is one aggregation window of render-loop activity.
type FrameStats struct {
	Time           time.Time     `json:"time"`
	Mode           string        `json:"mode"`
	Ticks          int           `json:"ticks"`
	AvgTick        time.Duration `json:"avgTick"`
	RenderRequests int           `json:"renderRequests"`
}

// StatsProvider reports render-loop activity since the last call.
type StatsProvider interface {
	DrainFrameStats() (ticks int, total time.Duration, renderRequests int)
}

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	Coordinator *coordinator.Coordinator
	Stats       StatsProvider
	Influx      *influx.Manager
	Logger      zerolog.Logger
	StatusDir   string
}

// Service manages status monitoring
type Service struct {
	deps      Dependencies
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	return &Service{
		deps:     deps,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Snapshot builds the current frame statistics window.
func (s *Service) Snapshot() FrameStats {
	ticks, total, renders := s.deps.Stats.DrainFrameStats()

	stats := FrameStats{
		Time:           time.Now(),
		Mode:           s.deps.Coordinator.Mode().String(),
		Ticks:          ticks,
		RenderRequests: renders,
	}
	if ticks > 0 {
		stats.AvgTick = total / time.Duration(ticks)
	}
	return stats
}

// Start starts the status monitor goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		s.deps.Logger.Debug().Msg("Starting status monitor goroutine")

		statusFile, err := os.Create(s.deps.StatusDir + "/status.txt")
		if err != nil {
			s.deps.Logger.Error().Err(err).Msg("Error creating status file")
		}
		defer statusFile.Close()

		for {
			select {
			case <-s.stopChan:
				return
			default:
				time.Sleep(1000 * time.Millisecond)

				stats := s.Snapshot()

				if statusFile != nil {
					statusStr, err := json.MarshalIndent(stats, "", "  ")
					if err != nil {
						statusStr = []byte(fmt.Sprintf(`{"error": "%s"}`, err))
					}
					statusFile.Truncate(0)
					statusFile.Seek(0, 0)
					statusFile.Write(append(statusStr, '\n'))
				}

				if s.deps.Influx != nil {
					point := influx.FramePoint(stats.Time, stats.Mode, stats.AvgTick, stats.RenderRequests)
					if err := s.deps.Influx.WritePoint(context.Background(), "frame_performance", point); err != nil {
						s.deps.Logger.Error().Err(err).Msg("Error writing frame stats to InfluxDB")
					}
				}
			}
		}
	}()

	return nil
}

// Stop stops the status monitor
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		close(s.stopChan)
	}
}
