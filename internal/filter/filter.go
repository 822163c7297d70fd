// Package filter holds the category selection of the home screen and the
// vehicle list derived from it.
package filter

import (
	"slices"
	"sync"

	"fleetview/internal/category"
	"fleetview/internal/models"
)

// State tracks the selected categories and recomputes the filtered vehicles
// whenever the selection or the source list changes.
type State struct {
	mu       sync.Mutex
	resolve  category.Resolver
	source   []models.Vehicle
	selected []category.VehicleCategory
	filtered []models.Vehicle
	subs     []func(models.VehiclesData)
}

func New(resolve category.Resolver) *State {
	if resolve == nil {
		resolve = category.Lookup
	}
	return &State{
		resolve:  resolve,
		filtered: []models.Vehicle{},
	}
}

// Toggle adds category to the selection, or removes it when already selected.
func (s *State) Toggle(c category.VehicleCategory) {
	s.mu.Lock()
	s.selected = toggle(s.selected, c)
	data := s.recomputeLocked()
	subs := s.subs
	s.mu.Unlock()

	notify(subs, data)
}

// SetSource replaces the source list with a copy of vehicles. A nil list is
// treated as empty and a list equal to the current one does not trigger a
// recompute.
func (s *State) SetSource(vehicles []models.Vehicle) {
	s.mu.Lock()
	if s.source != nil && slices.Equal(s.source, vehicles) {
		s.mu.Unlock()
		return
	}
	s.source = slices.Clone(vehicles)
	if s.source == nil {
		s.source = []models.Vehicle{}
	}
	data := s.recomputeLocked()
	subs := s.subs
	s.mu.Unlock()

	notify(subs, data)
}

// Subscribe registers fn to receive every recomputed result.
func (s *State) Subscribe(fn func(models.VehiclesData)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *State) Selected() []category.VehicleCategory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.selected)
}

func (s *State) IsSelected(c category.VehicleCategory) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.selected, c)
}

// Filtered returns a copy of the derived list.
func (s *State) Filtered() models.VehiclesData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.VehiclesData{Vehicles: s.filtered}.Clone()
}

// recomputeLocked returns a copy for subscribers.
func (s *State) recomputeLocked() models.VehiclesData {
	s.filtered = Apply(s.source, s.selected, s.resolve, s.filtered)
	return models.VehiclesData{Vehicles: s.filtered}.Clone()
}

func notify(subs []func(models.VehiclesData), data models.VehiclesData) {
	for _, fn := range subs {
		fn(data)
	}
}

func toggle(selected []category.VehicleCategory, c category.VehicleCategory) []category.VehicleCategory {
	if len(selected) == 0 {
		return []category.VehicleCategory{c}
	}
	if i := slices.Index(selected, c); i >= 0 {
		out := make([]category.VehicleCategory, 0, len(selected)-1)
		out = append(out, selected[:i]...)
		return append(out, selected[i+1:]...)
	}
	out := make([]category.VehicleCategory, 0, len(selected)+1)
	out = append(out, selected...)
	return append(out, c)
}

// Apply derives the visible vehicles from source and selected. An empty
// selection yields source itself. Categories that do not resolve to a non-zero
// id are skipped; when none resolves, prev is returned unchanged.
func Apply(source []models.Vehicle, selected []category.VehicleCategory, resolve category.Resolver, prev []models.Vehicle) []models.Vehicle {
	if source == nil {
		source = []models.Vehicle{}
	}
	if len(selected) == 0 {
		return source
	}

	ids := make(map[int]struct{}, len(selected))
	for _, c := range selected {
		if d, ok := resolve(c); ok && d.ID != 0 {
			ids[d.ID] = struct{}{}
		}
	}
	if len(ids) == 0 {
		return prev
	}

	out := make([]models.Vehicle, 0, len(source))
	for _, v := range source {
		if _, ok := ids[v.CategoryID]; ok {
			out = append(out, v)
		}
	}
	return out
}
