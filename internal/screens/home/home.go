// Package home is the vehicle list screen: it owns the category selection,
// keeps the filtered list in step with the data source, and hands the
// filtered list to the map screen.
package home

import (
	"fleetview/internal/category"
	"fleetview/internal/filter"
	"fleetview/internal/models"
	"fleetview/internal/navigation"
	"fleetview/internal/provider"
	"fleetview/pkg/log"

	"go.uber.org/zap"
)

type Translator interface {
	T(key string) string
}

// FilteredDataSetter receives the filtered list when leaving for the map.
type FilteredDataSetter interface {
	SetFilteredData(models.VehiclesData)
}

type Navigator interface {
	Navigate(navigation.Screen)
}

// CategoryItem is one entry of the category picker.
type CategoryItem struct {
	Category category.VehicleCategory
	Label    string
	Selected bool
}

type Screen struct {
	provider provider.VehicleProvider
	filter   *filter.State
	handoff  FilteredDataSetter
	nav      Navigator
	tr       Translator
}

// New mounts the screen with an empty selection.
func New(p provider.VehicleProvider, handoff FilteredDataSetter, nav Navigator, tr Translator) *Screen {
	return &Screen{
		provider: p,
		filter:   filter.New(category.Lookup),
		handoff:  handoff,
		nav:      nav,
		tr:       tr,
	}
}

// OnFilteredChange registers fn to be called after every recompute.
func (s *Screen) OnFilteredChange(fn func(models.VehiclesData)) {
	s.filter.Subscribe(fn)
}

// Sync pulls the current data from the provider. A provider that fails may
// still return its last good snapshot, which is kept; data that is absent or
// still loading counts as an empty list.
func (s *Screen) Sync() {
	data, err := s.provider.GetVehicles()
	if err != nil {
		log.Warn("vehicle source failed", zap.Int("kept", len(data.Vehicles)), zap.Error(err))
	}
	s.filter.SetSource(data.Vehicles)
}

func (s *Screen) HandleCategoryPress(c category.VehicleCategory) {
	s.filter.Toggle(c)
	log.Debug("category toggled", zap.Stringer("category", c), zap.Stringers("selected", s.filter.Selected()))
}

// GoMapScreen publishes the filtered vehicles and opens the map.
func (s *Screen) GoMapScreen() {
	data := s.filter.Filtered()
	s.handoff.SetFilteredData(data)
	log.Info("opening map", zap.Int("vehicles", len(data.Vehicles)))
	s.nav.Navigate(navigation.MapScreen)
}

// Vehicles is the list to render. It is never nil and callers own it.
func (s *Screen) Vehicles() models.VehiclesData {
	return s.filter.Filtered()
}

func (s *Screen) IsLoading() bool {
	return s.provider.IsLoading()
}

func (s *Screen) Categories() []CategoryItem {
	out := make([]CategoryItem, 0, len(category.All))
	for _, c := range category.All {
		label := c.String()
		if d, ok := category.Lookup(c); ok {
			label = s.tr.T(d.Key)
		}
		out = append(out, CategoryItem{Category: c, Label: label, Selected: s.filter.IsSelected(c)})
	}
	return out
}

// CategoryLabel returns the localized label of a backend category id.
func (s *Screen) CategoryLabel(id int) string {
	if _, d, ok := category.ByID(id); ok {
		return s.tr.T(d.Key)
	}
	return "-"
}

func (s *Screen) T(key string) string {
	return s.tr.T(key)
}
