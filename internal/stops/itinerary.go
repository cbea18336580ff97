package stops

import (
	"sync"
)

// Itinerary caches the loaded tour stops keyed by id. Lookups happen on
// every stop selection, so the records are held in memory rather than
// re-read from the loader.
type Itinerary struct {
	mu    sync.Mutex
	byID  map[string]Stop
	order []string
}

// NewItinerary creates an empty itinerary.
func NewItinerary() *Itinerary {
	return &Itinerary{
		byID: make(map[string]Stop),
	}
}

// Replace swaps the cached stops wholesale.
func (it *Itinerary) Replace(list []Stop) {
	sorted := make([]Stop, len(list))
	copy(sorted, list)
	SortByOrder(sorted)

	it.mu.Lock()
	defer it.mu.Unlock()
	it.byID = make(map[string]Stop, len(sorted))
	it.order = it.order[:0]
	for _, s := range sorted {
		it.byID[s.ID] = s
		it.order = append(it.order, s.ID)
	}
}

// Get returns the stop with the given id.
func (it *Itinerary) Get(id string) (Stop, bool) {
	it.mu.Lock()
	defer it.mu.Unlock()
	s, ok := it.byID[id]
	return s, ok
}

// Ordered returns all stops in itinerary order.
func (it *Itinerary) Ordered() []Stop {
	it.mu.Lock()
	defer it.mu.Unlock()
	out := make([]Stop, 0, len(it.order))
	for _, id := range it.order {
		out = append(out, it.byID[id])
	}
	return out
}

// Len returns the number of cached stops.
func (it *Itinerary) Len() int {
	it.mu.Lock()
	defer it.mu.Unlock()
	return len(it.byID)
}

// Reset clears the cache.
func (it *Itinerary) Reset() {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.byID = make(map[string]Stop)
	it.order = it.order[:0]
}
