// Package handlers binds dispatcher commands to the choreography
// engine: stop selection, overview return, pointer and wheel input,
// and itinerary loading.
package handlers

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tourglobe/stagecam/internal/coordinator"
	"github.com/tourglobe/stagecam/internal/dispatcher"
	"github.com/tourglobe/stagecam/internal/route"
	"github.com/tourglobe/stagecam/internal/stops"
)

// Command names accepted from the host application.
const (
	CmdSelectStop     = "select_stop"
	CmdReturnOverview = "return_overview"
	CmdPointerDown    = "pointer_down"
	CmdPointerUp      = "pointer_up"
	CmdWheel          = "wheel"
	CmdLoadStops      = "load_stops"
)

// TourContext holds the currently loaded tour.
type TourContext struct {
	mu    sync.RWMutex
	Title string
	Count int
}

// NewTourContext creates a TourContext with default values.
func NewTourContext() *TourContext {
	return &TourContext{Title: "No tour loaded"}
}

// Set records the loaded tour.
func (tc *TourContext) Set(title string, count int) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.Title = title
	tc.Count = count
}

// Get returns the loaded tour title and stop count.
func (tc *TourContext) Get() (string, int) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.Title, tc.Count
}

// Dependencies holds all dependencies needed by handlers.
type Dependencies struct {
	Coordinator *coordinator.Coordinator
	Itinerary   *stops.Itinerary
	Route       *route.Layer
	Logger      zerolog.Logger
}

// Service provides handler methods for processing host commands.
type Service struct {
	deps Dependencies
	ctx  *TourContext
}

// NewService creates a new handler service.
func NewService(deps Dependencies, ctx *TourContext) *Service {
	return &Service{deps: deps, ctx: ctx}
}

// GetTourContext returns the tour context.
func (s *Service) GetTourContext() *TourContext {
	return s.ctx
}

// Register wires the handlers into the dispatcher. Input commands run
// inline; itinerary loading is buffered so a slow disk never stalls
// the input path.
func (s *Service) Register(d *dispatcher.Dispatcher) {
	d.Register(CmdSelectStop, s.HandleSelectStop, dispatcher.Logged())
	d.Register(CmdReturnOverview, s.HandleReturnOverview, dispatcher.Logged())
	d.Register(CmdPointerDown, s.HandlePointerDown)
	d.Register(CmdPointerUp, s.HandlePointerUp)
	d.Register(CmdWheel, s.HandleWheel)
	d.Register(CmdLoadStops, s.HandleLoadStops,
		dispatcher.Buffered(4), dispatcher.Blocking(), dispatcher.Logged())
}

// HandleSelectStop flies the camera to the venue framing of args[0].
func (s *Service) HandleSelectStop(c dispatcher.Command) (any, error) {
	if len(c.Args) < 1 {
		return nil, fmt.Errorf("%s: missing stop id", c.Name)
	}
	s.deps.Coordinator.SelectStop(c.Args[0])
	return "ok", nil
}

// HandleReturnOverview flies the camera back to the whole-globe
// framing. An optional args[0] names the stop to frame under the
// camera on the way out.
func (s *Service) HandleReturnOverview(c dispatcher.Command) (any, error) {
	anchor := ""
	if len(c.Args) > 0 {
		anchor = c.Args[0]
	}
	s.deps.Coordinator.ReturnToOverview(anchor)
	return "ok", nil
}

// HandlePointerDown forwards a pointer-down input.
func (s *Service) HandlePointerDown(c dispatcher.Command) (any, error) {
	s.deps.Coordinator.PointerDown()
	return "ok", nil
}

// HandlePointerUp forwards a pointer-up input.
func (s *Service) HandlePointerUp(c dispatcher.Command) (any, error) {
	s.deps.Coordinator.PointerUp()
	return "ok", nil
}

// HandleWheel forwards a wheel/zoom input stamped with the command
// time.
func (s *Service) HandleWheel(c dispatcher.Command) (any, error) {
	at := c.At
	if at.IsZero() {
		at = time.Now()
	}
	s.deps.Coordinator.Wheel(at)
	return "ok", nil
}

// HandleLoadStops loads the itinerary from the JSON file in args[0]
// and rebuilds the route line. args[1], when present, names the tour.
func (s *Service) HandleLoadStops(c dispatcher.Command) (any, error) {
	if len(c.Args) < 1 {
		return nil, fmt.Errorf("%s: missing file path", c.Name)
	}

	f, err := os.Open(c.Args[0])
	if err != nil {
		return nil, fmt.Errorf("opening stops file: %w", err)
	}
	defer f.Close()

	list, err := stops.LoadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("loading stops: %w", err)
	}
	s.deps.Itinerary.Replace(list)

	if s.deps.Route != nil {
		if err := s.deps.Route.Build(list); err != nil {
			// a one-stop tour has no route line; not fatal
			s.deps.Logger.Warn().Err(err).Msg("Route line not built")
		}
	}

	title := "tour"
	if len(c.Args) > 1 {
		title = c.Args[1]
	}
	s.ctx.Set(title, len(list))
	s.deps.Logger.Info().
		Str("tour", title).
		Int("stops", len(list)).
		Msg("Itinerary loaded")

	return len(list), nil
}
