package main

import (
	"math"

	"github.com/tourglobe/stagecam/internal/dispatcher"
	"github.com/tourglobe/stagecam/internal/handlers"
	"github.com/tourglobe/stagecam/internal/queue"
	"github.com/tourglobe/stagecam/internal/stops"
)

// step is one scheduled scenario command.
type step struct {
	tick int
	cmd  dispatcher.Command
}

// script replays scheduled commands in tick order.
type script struct {
	q *queue.Queue[step]
}

func (s *script) Empty() bool {
	return s.q.Empty()
}

func (s *script) peekTick() int {
	if next, ok := s.q.Peek(); ok {
		return next.tick
	}
	return math.MaxInt
}

func (s *script) pop() step {
	next, _ := s.q.Pop()
	return next
}

// buildScript lays a representative interaction session over the tick
// budget: visit the first stops, jump between venues, go back out, and
// scroll against the zoom limits on the way.
func buildScript(itinerary *stops.Itinerary, ticks int) *script {
	q := queue.New[step]()
	list := itinerary.Ordered()
	at := func(frac float64) int { return int(frac * float64(ticks)) }

	if len(list) > 0 {
		q.Push(step{tick: at(0.10), cmd: dispatcher.Command{Name: handlers.CmdSelectStop, Args: []string{list[0].ID}}})
	}

	// wheel burst against the venue zoom floor
	for i := 0; i < 4; i++ {
		q.Push(step{tick: at(0.25) + i, cmd: dispatcher.Command{Name: handlers.CmdWheel}})
	}

	q.Push(step{tick: at(0.40), cmd: dispatcher.Command{Name: handlers.CmdReturnOverview}})

	// a drag pause in overview: rotation must stop under the pointer
	q.Push(step{tick: at(0.50), cmd: dispatcher.Command{Name: handlers.CmdPointerDown}})
	q.Push(step{tick: at(0.55), cmd: dispatcher.Command{Name: handlers.CmdPointerUp}})

	if len(list) > 1 {
		q.Push(step{tick: at(0.65), cmd: dispatcher.Command{Name: handlers.CmdSelectStop, Args: []string{list[1].ID}}})
	}
	if len(list) > 2 {
		// immediate re-target: the previous flight is superseded mid-air
		q.Push(step{tick: at(0.65) + 2, cmd: dispatcher.Command{Name: handlers.CmdSelectStop, Args: []string{list[2].ID}}})
	}

	q.Push(step{tick: at(0.85), cmd: dispatcher.Command{Name: handlers.CmdReturnOverview}})

	return &script{q: q}
}
