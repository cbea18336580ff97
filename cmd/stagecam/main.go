// Command stagecam runs the camera choreography engine against the
// simulated host engine: it loads a tour itinerary, wires the full
// service stack, and drives a scripted interaction scenario through
// the render loop.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tourglobe/stagecam/internal/api"
	"github.com/tourglobe/stagecam/internal/cache"
	"github.com/tourglobe/stagecam/internal/config"
	"github.com/tourglobe/stagecam/internal/coordinator"
	"github.com/tourglobe/stagecam/internal/dispatcher"
	"github.com/tourglobe/stagecam/internal/engine/sim"
	"github.com/tourglobe/stagecam/internal/geo"
	"github.com/tourglobe/stagecam/internal/handlers"
	"github.com/tourglobe/stagecam/internal/influx"
	"github.com/tourglobe/stagecam/internal/interaction"
	"github.com/tourglobe/stagecam/internal/lock"
	"github.com/tourglobe/stagecam/internal/logging"
	"github.com/tourglobe/stagecam/internal/monitor"
	"github.com/tourglobe/stagecam/internal/rotate"
	"github.com/tourglobe/stagecam/internal/route"
	"github.com/tourglobe/stagecam/internal/stops"
	"github.com/tourglobe/stagecam/internal/telemetry"
	"github.com/tourglobe/stagecam/internal/zoom"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configDir := flag.String("config", ".", "directory containing stagecam.cfg.json")
	stopsFile := flag.String("stops", "", "path to a stops JSON file")
	fetchTour := flag.String("fetch", "", "tour id to fetch from the itinerary service instead of -stops")
	tourTitle := flag.String("tour", "tour", "tour title for logs and session export")
	ticks := flag.Int("ticks", 600, "number of render ticks to simulate")
	tickLen := flag.Duration("tick", 16*time.Millisecond, "simulated frame duration")
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		return err
	}

	sessionStart := time.Now()
	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	logFile, err := os.OpenFile(
		logging.LogFilePath(logsDir, "stagecam", sessionStart),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	graylogAddr := ""
	if config.GetBool("graylog.enabled") {
		graylogAddr = config.GetString("graylog.address")
	}
	logMgr := logging.NewManager()
	if err := logMgr.Setup(logFile, config.GetString("logLevel"), graylogAddr); err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer logMgr.Close()
	log := logMgr.Logger()

	// simulated host engine
	eng := sim.New(geo.WGS84())
	clk := newSimClock(sessionStart)

	cc := config.GetChoreographyConfig()
	state := interaction.NewState()
	rotator := rotate.NewScheduler(eng.Camera(), state, rotate.Config{
		AngularSpeed:  cc.RotateSpeed,
		WheelCooldown: cc.WheelCooldown,
	})
	governor := zoom.NewGovernor(eng.Camera(), eng.Controller(), state, zoom.Config{
		QuietPeriod:        cc.ZoomQuietPeriod,
		CorrectionDuration: cc.ZoomCorrectionDuration,
	})
	locker := lock.NewController(eng.Camera(), eng.Controller(), eng.Scene())

	itinerary := stops.NewItinerary()
	venues := cache.NewVenueCache()

	coord := coordinator.New(coordinator.Deps{
		Camera:     eng.Camera(),
		Controller: eng.Controller(),
		Scene:      eng.Scene(),
		Rotator:    rotator,
		Governor:   governor,
		Lock:       locker,
		State:      state,
		Stops:      itinerary,
		Entities:   venues,
		Logger:     log,
		Clock:      clk.Now,
	}, coordinator.Config{
		OverviewBounds:     zoom.Bounds{Min: cc.OverviewZoomMin, Max: cc.OverviewZoomMax},
		VenueBounds:        zoom.Bounds{Min: cc.VenueZoomMin, Max: cc.VenueZoomMax},
		OverviewMultiplier: cc.OverviewMultiplier,
		ApproachPitchDeg:   cc.ApproachPitchDeg,
		ApproachBaseRange:  cc.ApproachBaseRange,
		ApproachMaxRange:   cc.ApproachMaxRange,
		FlightMinDuration:  cc.FlightMinDuration,
		FlightMaxDuration:  cc.FlightMaxDuration,
	})

	// session telemetry
	backend, err := telemetry.NewBackend(config.GetTelemetryConfig(), log)
	if err != nil {
		return fmt.Errorf("creating telemetry backend: %w", err)
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("initializing telemetry backend: %w", err)
	}
	defer backend.Close()

	rec := telemetry.NewRecorder(backend, log)
	if err := rec.Start(*tourTitle, sessionStart); err != nil {
		return fmt.Errorf("starting telemetry session: %w", err)
	}
	coord.OnTransition(rec.TransitionListener())
	governor.OnCorrection(rec.CorrectionListener())

	// route line visibility follows the mode transitions
	routeLayer := route.NewLayer()
	coord.OnTransition(routeLayer.Apply)

	// frame metrics to InfluxDB, when configured
	var influxMgr *influx.Manager
	if config.GetBool("influx.enabled") {
		influxMgr = influx.NewManager(log, filepath.Join(logsDir, "influx_backup.gz"))
		if err := influxMgr.Connect(); err != nil {
			log.Warn().Err(err).Msg("InfluxDB unavailable, frame metrics disabled")
			influxMgr = nil
		} else {
			coord.OnTransition(func(ev coordinator.Event) {
				if ev.Phase != coordinator.PhaseEnded {
					return
				}
				point := influx.TransitionPoint(ev.At, ev.TargetMode.String(), ev.StopID, ev.Cancelled)
				if err := influxMgr.WritePoint(context.Background(), "transition_metrics", point); err != nil {
					log.Error().Err(err).Msg("Error writing transition point")
				}
			})
		}
	}

	stats := newFrameStats(eng.Scene())
	mon := monitor.NewService(monitor.Dependencies{
		Coordinator: coord,
		Stats:       stats,
		Influx:      influxMgr,
		Logger:      log,
		StatusDir:   logsDir,
	})
	if err := mon.Start(); err != nil {
		return fmt.Errorf("starting monitor: %w", err)
	}
	defer mon.Stop()

	// command dispatch
	disp, err := dispatcher.New(logging.NewDispatcherLogger(log))
	if err != nil {
		return fmt.Errorf("creating dispatcher: %w", err)
	}
	svc := handlers.NewService(handlers.Dependencies{
		Coordinator: coord,
		Itinerary:   itinerary,
		Route:       routeLayer,
		Logger:      log,
	}, handlers.NewTourContext())
	svc.Register(disp)

	if err := loadItinerary(disp, itinerary, routeLayer, clk, log, *stopsFile, *fetchTour, *tourTitle); err != nil {
		return err
	}

	// place the venue entities into the scene
	for _, s := range itinerary.Ordered() {
		if !s.HasCoordinates() {
			continue
		}
		e := eng.Scene().AddVenue(s.ID, geo.LonLat{Lon: *s.Lng, Lat: *s.Lat})
		venues.Add(s.ID, e)
	}
	log.Info().Int("venues", venues.Len()).Msg("Scene populated")

	coord.Init()

	// scripted render loop
	script := buildScript(itinerary, *ticks)
	for i := 0; i < *ticks; i++ {
		now := clk.Advance(*tickLen)

		for !script.Empty() && script.peekTick() <= i {
			step := script.pop()
			cmd := step.cmd
			cmd.At = now
			if _, err := disp.Dispatch(cmd); err != nil {
				log.Error().Err(err).Str("command", cmd.Name).Msg("Scenario command failed")
			}
		}

		coord.Tick(now, *tickLen)
		eng.Step(now, *tickLen)
		if eng.Camera().InFlight() {
			eng.Scene().RequestRender()
		}
		stats.note(*tickLen)

		if i%30 == 0 {
			rec.Sample(now, coord.Mode().String(), eng.Camera().Position())
		}
	}

	if err := rec.End(); err != nil {
		log.Error().Err(err).Msg("Error ending telemetry session")
	}
	if exp, ok := backend.(telemetry.Exportable); ok {
		log.Info().Str("file", exp.ExportedFilePath()).Msg("Session exported")
	}

	title, count := svc.GetTourContext().Get()
	log.Info().
		Str("tour", title).
		Int("stops", count).
		Str("finalMode", coord.Mode().String()).
		Msg("Scenario finished")
	return nil
}

// loadItinerary fills the itinerary from a local JSON file or the
// itinerary service. The file path goes through the dispatcher like a
// host command would; the loader runs on a buffered handler, so wait
// for it to land.
func loadItinerary(disp *dispatcher.Dispatcher, itinerary *stops.Itinerary, routeLayer *route.Layer,
	clk *simClock, log zerolog.Logger, stopsFile, fetchTour, tourTitle string) error {
	switch {
	case stopsFile != "":
		_, err := disp.Dispatch(dispatcher.Command{
			Name: handlers.CmdLoadStops,
			Args: []string{stopsFile, tourTitle},
			At:   clk.Now(),
		})
		if err != nil {
			return fmt.Errorf("loading stops: %w", err)
		}
		deadline := time.Now().Add(5 * time.Second)
		for itinerary.Len() == 0 {
			if time.Now().After(deadline) {
				return fmt.Errorf("timed out waiting for itinerary %q", stopsFile)
			}
			time.Sleep(10 * time.Millisecond)
		}
	case fetchTour != "":
		client := api.New(config.GetString("api.serverUrl"), config.GetString("api.apiKey"))
		if err := client.Healthcheck(); err != nil {
			return fmt.Errorf("itinerary service unavailable: %w", err)
		}
		list, err := client.FetchStops(fetchTour)
		if err != nil {
			return err
		}
		itinerary.Replace(list)
		if err := routeLayer.Build(list); err != nil {
			log.Warn().Err(err).Msg("Route line not built")
		}
	default:
		return fmt.Errorf("either -stops or -fetch is required")
	}
	if itinerary.Len() == 0 {
		return fmt.Errorf("itinerary is empty")
	}
	return nil
}

// simClock is the simulated wall clock driving the render loop.
type simClock struct {
	mu  sync.Mutex
	now time.Time
}

func newSimClock(start time.Time) *simClock {
	return &simClock{now: start}
}

// Now returns the current simulated time.
func (c *simClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward and returns the new time.
func (c *simClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// frameStats aggregates render-loop activity between monitor drains.
type frameStats struct {
	mu          sync.Mutex
	scene       *sim.Scene
	ticks       int
	total       time.Duration
	lastRenders int
}

func newFrameStats(scene *sim.Scene) *frameStats {
	return &frameStats{scene: scene}
}

func (f *frameStats) note(dt time.Duration) {
	f.mu.Lock()
	f.ticks++
	f.total += dt
	f.mu.Unlock()
}

// DrainFrameStats returns and resets the window since the last drain.
func (f *frameStats) DrainFrameStats() (int, time.Duration, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticks, total := f.ticks, f.total
	f.ticks, f.total = 0, 0

	renders := f.scene.RenderRequests()
	delta := renders - f.lastRenders
	f.lastRenders = renders
	return ticks, total, delta
}
