// internal/telemetry/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tourglobe/stagecam/pkg/core"
)

// SessionExport is the root JSON structure
type SessionExport struct {
	Tour            string                 `json:"tour"`
	StartedAt       time.Time              `json:"startedAt"`
	EndedAt         *time.Time             `json:"endedAt,omitempty"`
	Transitions     []core.TransitionEvent `json:"transitions"`
	ZoomCorrections []core.ZoomCorrection  `json:"zoomCorrections"`
	CameraSamples   []core.CameraSample    `json:"cameraSamples"`
}

// exportJSON writes the session data to a JSON file, gzipped when
// configured. Caller holds the lock.
func (b *Backend) exportJSON() error {
	export := b.buildExport()

	// Build filename
	tour := strings.ReplaceAll(b.session.Tour, " ", "_")
	tour = strings.ReplaceAll(tour, ":", "_")
	timestamp := b.session.StartedAt.Format("20060102_150405")

	var filename string
	if b.cfg.CompressOutput {
		filename = fmt.Sprintf("%s_%s.json.gz", tour, timestamp)
	} else {
		filename = fmt.Sprintf("%s_%s.json", tour, timestamp)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	// Ensure output directory exists
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Write file
	if b.cfg.CompressOutput {
		if err := b.writeGzipJSON(outputPath, export); err != nil {
			return err
		}
	} else {
		if err := b.writeJSON(outputPath, export); err != nil {
			return err
		}
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) buildExport() SessionExport {
	export := SessionExport{
		Tour:            b.session.Tour,
		StartedAt:       b.session.StartedAt,
		EndedAt:         b.session.EndedAt,
		Transitions:     make([]core.TransitionEvent, 0, len(b.transitions)),
		ZoomCorrections: make([]core.ZoomCorrection, 0, len(b.corrections)),
		CameraSamples:   make([]core.CameraSample, 0, len(b.samples)),
	}

	export.Transitions = append(export.Transitions, b.transitions...)
	export.ZoomCorrections = append(export.ZoomCorrections, b.corrections...)
	export.CameraSamples = append(export.CameraSamples, b.samples...)

	return export
}

func (b *Backend) writeJSON(path string, data SessionExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	return encoder.Encode(data)
}

func (b *Backend) writeGzipJSON(path string, data SessionExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	encoder := json.NewEncoder(gzWriter)
	return encoder.Encode(data)
}
