// Package stops holds the tour itinerary records consumed by the
// camera choreography. Records arrive from the data-loading layer and
// are treated as read-only input keyed by id.
package stops

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Stop is a single itinerary stop. Lat/Lng are nil until the loader has
// resolved coordinates for the venue; operations on a stop without
// coordinates are silently skipped, which is expected during loading
// races.
type Stop struct {
	ID          string   `json:"id"`
	Order       int      `json:"order"`
	City        string   `json:"city"`
	CountryCode string   `json:"countryCode"`
	Venue       string   `json:"venue"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	CapacityMin int      `json:"capacityMin"`
	CapacityMax int      `json:"capacityMax"`
	Notes       []string `json:"notes"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (s Stop) HasCoordinates() bool {
	return s.Lat != nil && s.Lng != nil
}

// ParseStop parses a loader record into a Stop.
func ParseStop(fields []string) (Stop, error) {
	if len(fields) < 9 {
		return Stop{}, fmt.Errorf("stop record needs 9 fields, got %d", len(fields))
	}

	s := Stop{
		ID:          fields[0], // 0: id
		City:        fields[2], // 2: city
		CountryCode: fields[3], // 3: countryCode
		Venue:       fields[4], // 4: venue
	}

	order, err := strconv.Atoi(fields[1]) // 1: order
	if err != nil {
		return Stop{}, fmt.Errorf("invalid order %q: %w", fields[1], err)
	}
	s.Order = order

	// 5: lat, 6: lng - empty means not yet resolved
	if fields[5] != "" && fields[6] != "" {
		lat, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return Stop{}, fmt.Errorf("invalid lat %q: %w", fields[5], err)
		}
		lng, err := strconv.ParseFloat(fields[6], 64)
		if err != nil {
			return Stop{}, fmt.Errorf("invalid lng %q: %w", fields[6], err)
		}
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			return Stop{}, fmt.Errorf("coordinates out of range: %s, %s", fields[5], fields[6])
		}
		s.Lat = &lat
		s.Lng = &lng
	}

	capMin, err := strconv.Atoi(fields[7]) // 7: capacityMin
	if err != nil {
		return Stop{}, fmt.Errorf("invalid capacityMin %q: %w", fields[7], err)
	}
	s.CapacityMin = capMin

	capMax, err := strconv.Atoi(fields[8]) // 8: capacityMax
	if err != nil {
		return Stop{}, fmt.Errorf("invalid capacityMax %q: %w", fields[8], err)
	}
	s.CapacityMax = capMax

	// 9: notes, optional JSON array of free-text bullets
	if len(fields) > 9 && fields[9] != "" {
		if err := json.Unmarshal([]byte(fields[9]), &s.Notes); err != nil {
			return Stop{}, fmt.Errorf("invalid notes: %w", err)
		}
	}

	return s, nil
}

// LoadJSON reads an itinerary from a JSON array of stop objects.
func LoadJSON(r io.Reader) ([]Stop, error) {
	var out []Stop
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse stops JSON: %w", err)
	}
	return out, nil
}

// SortByOrder sorts stops in itinerary order, in place.
func SortByOrder(list []Stop) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Order < list[j].Order
	})
}
