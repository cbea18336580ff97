package cache

import (
	"sync"

	"github.com/tourglobe/stagecam/internal/engine"
)

// VenueCache caches venue entity handles keyed by stop id. Lookups
// happen on every stop selection, so handles are held in memory rather
// than re-resolved against the scene.
type VenueCache struct {
	m      sync.Mutex
	venues map[string]engine.Entity
}

// NewVenueCache creates an empty venue cache.
func NewVenueCache() *VenueCache {
	return &VenueCache{
		venues: make(map[string]engine.Entity),
	}
}

// Reset drops all cached handles.
func (c *VenueCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.venues = make(map[string]engine.Entity)
}

// Add caches the entity handle for a stop.
func (c *VenueCache) Add(stopID string, e engine.Entity) {
	c.m.Lock()
	defer c.m.Unlock()
	c.venues[stopID] = e
}

// Entity returns the cached entity handle for a stop.
func (c *VenueCache) Entity(stopID string) (engine.Entity, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	e, ok := c.venues[stopID]
	return e, ok
}

// Len returns the number of cached handles.
func (c *VenueCache) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return len(c.venues)
}
