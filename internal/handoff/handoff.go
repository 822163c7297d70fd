// Package handoff passes the filtered vehicles from the home screen to the
// map screen without fetching them again.
package handoff

import (
	"sync"

	"fleetview/internal/models"
)

type Store struct {
	mu     sync.RWMutex
	data   models.VehiclesData
	writes int
}

func New() *Store {
	return &Store{data: models.VehiclesData{Vehicles: []models.Vehicle{}}}
}

// SetFilteredData stores a copy of data, so later changes on the caller's
// side are not visible to readers.
func (s *Store) SetFilteredData(data models.VehiclesData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data.Clone()
	s.writes++
}

func (s *Store) FilteredData() models.VehiclesData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Writes reports how many times the store was written.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
