// Package route builds the tour route polyline between the ordered
// stops and toggles its visibility off the coordinator's transition
// events.
package route

import (
	"fmt"
	"sync"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/tourglobe/stagecam/internal/coordinator"
	"github.com/tourglobe/stagecam/internal/geo"
	"github.com/tourglobe/stagecam/internal/stops"
)

// Route geometry is kept in EPSG:3857 like the rest of the projected
// layers, so the renderer can consume it as planar data.

// Layer is the tour route line.
type Layer struct {
	mu      sync.Mutex
	line    geom.LineString
	built   bool
	visible bool
}

// NewLayer creates an empty, hidden route layer.
func NewLayer() *Layer {
	return &Layer{}
}

// Build projects the itinerary into the route polyline. Stops without
// coordinates are skipped; at least two located stops are required.
func (l *Layer) Build(list []stops.Stop) error {
	ordered := make([]stops.Stop, len(list))
	copy(ordered, list)
	stops.SortByOrder(ordered)

	flat := make([]float64, 0, len(ordered)*2)
	for _, s := range ordered {
		if !s.HasCoordinates() {
			continue
		}
		p := geo.Coords3857From4326(geo.LonLat{Lon: *s.Lng, Lat: *s.Lat})
		xy, ok := p.XY()
		if !ok {
			continue
		}
		flat = append(flat, xy.X, xy.Y)
	}
	if len(flat) < 4 {
		return fmt.Errorf("route needs at least 2 located stops, got %d", len(flat)/2)
	}

	seq := geom.NewSequence(flat, geom.DimXY)
	line := geom.NewLineString(seq)

	l.mu.Lock()
	l.line = line
	l.built = true
	l.mu.Unlock()
	return nil
}

// Line returns the built route line.
func (l *Layer) Line() (geom.LineString, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.line, l.built
}

// Visible reports whether the route should currently be drawn.
func (l *Layer) Visible() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.visible
}

// Apply reacts to a coordinator transition: the route is shown whenever
// the overview framing is the target and hidden on the way into a
// venue. Keyed to the transition start so the visual switches before
// the camera arrives.
func (l *Layer) Apply(ev coordinator.Event) {
	if ev.Phase != coordinator.PhaseStarted {
		return
	}
	l.mu.Lock()
	l.visible = ev.TargetMode == coordinator.ModeOverview
	l.mu.Unlock()
}
