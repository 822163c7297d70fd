package home

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fleetview/internal/category"
	"fleetview/internal/handoff"
	"fleetview/internal/i18n"
	"fleetview/internal/models"
	"fleetview/internal/navigation"
	"fleetview/internal/provider/file"
)

type fakeProvider struct {
	data    models.VehiclesData
	err     error
	loading bool
}

func (f *fakeProvider) Start(context.Context) error { return nil }
func (f *fakeProvider) Stop()                       {}
func (f *fakeProvider) GetVehicles() (models.VehiclesData, error) {
	return f.data, f.err
}
func (f *fakeProvider) IsLoading() bool   { return f.loading }
func (f *fakeProvider) IsConnected() bool { return true }

type recordingNav struct {
	screens []navigation.Screen
}

func (n *recordingNav) Navigate(s navigation.Screen) { n.screens = append(n.screens, s) }

var fleet = []models.Vehicle{
	{ID: "t1", CategoryID: 1},
	{ID: "b1", CategoryID: 2},
	{ID: "t2", CategoryID: 1},
	{ID: "s1", CategoryID: 3},
}

func newScreen(p *fakeProvider) (*Screen, *handoff.Store, *recordingNav) {
	store := handoff.New()
	nav := &recordingNav{}
	return New(p, store, nav, i18n.New("en")), store, nav
}

func TestSyncShowsWholeFleetWithoutSelection(t *testing.T) {
	s, _, _ := newScreen(&fakeProvider{data: models.VehiclesData{Vehicles: fleet}})
	require.Empty(t, s.Vehicles().Vehicles)

	s.Sync()
	require.Equal(t, fleet, s.Vehicles().Vehicles)
}

func TestCategoryPressFilters(t *testing.T) {
	s, _, _ := newScreen(&fakeProvider{data: models.VehiclesData{Vehicles: fleet}})
	s.Sync()

	s.HandleCategoryPress(category.Cargo)
	require.Equal(t, []models.Vehicle{fleet[0], fleet[2]}, s.Vehicles().Vehicles)

	s.HandleCategoryPress(category.Special)
	require.Equal(t, []models.Vehicle{fleet[0], fleet[2], fleet[3]}, s.Vehicles().Vehicles)

	s.HandleCategoryPress(category.Cargo)
	s.HandleCategoryPress(category.Special)
	require.Equal(t, fleet, s.Vehicles().Vehicles)
}

func TestSourceChangeRefilters(t *testing.T) {
	p := &fakeProvider{loading: true}
	s, _, _ := newScreen(p)
	var updates int
	s.OnFilteredChange(func(models.VehiclesData) { updates++ })

	s.HandleCategoryPress(category.Passenger)
	s.Sync()
	require.True(t, s.IsLoading())
	require.Empty(t, s.Vehicles().Vehicles)

	p.loading = false
	p.data = models.VehiclesData{Vehicles: fleet}
	s.Sync()
	require.Equal(t, []models.Vehicle{fleet[1]}, s.Vehicles().Vehicles)

	before := updates
	s.Sync()
	require.Equal(t, before, updates)
}

func TestSourceErrorKeepsReturnedSnapshot(t *testing.T) {
	p := &fakeProvider{data: models.VehiclesData{Vehicles: fleet}}
	s, _, _ := newScreen(p)
	s.Sync()

	p.err = errors.New("decode fleet file")
	p.data = models.VehiclesData{Vehicles: fleet[:1]}
	s.Sync()
	require.Equal(t, fleet[:1], s.Vehicles().Vehicles)

	p.data = models.VehiclesData{}
	s.Sync()
	require.Empty(t, s.Vehicles().Vehicles)
}

func TestBrokenFleetFileKeepsList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"vehicles":[{"id":"a","categoryId":1},{"id":"b","categoryId":2}]}`), 0o600))

	p := file.New(path)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, p.Start(ctx))
	t.Cleanup(p.Stop)
	require.Eventually(t, func() bool { return !p.IsLoading() }, 2*time.Second, 10*time.Millisecond)

	s := New(p, handoff.New(), &recordingNav{}, i18n.New("en"))
	s.Sync()
	require.Len(t, s.Vehicles().Vehicles, 2)

	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))
	require.Eventually(t, func() bool {
		_, err := p.GetVehicles()
		return err != nil
	}, 2*time.Second, 10*time.Millisecond)

	s.Sync()
	require.Len(t, s.Vehicles().Vehicles, 2)
}

func TestGoMapScreenHandsOffOnce(t *testing.T) {
	s, store, nav := newScreen(&fakeProvider{data: models.VehiclesData{Vehicles: fleet}})
	s.Sync()
	s.HandleCategoryPress(category.Cargo)

	s.GoMapScreen()
	require.Equal(t, 1, store.Writes())
	require.Equal(t, []navigation.Screen{navigation.MapScreen}, nav.screens)
	require.Equal(t, []models.Vehicle{fleet[0], fleet[2]}, store.FilteredData().Vehicles)

	s.HandleCategoryPress(category.Cargo)
	require.Equal(t, []models.Vehicle{fleet[0], fleet[2]}, store.FilteredData().Vehicles, "hand-off must not follow later changes")

	s.GoMapScreen()
	require.Equal(t, 2, store.Writes())
	require.Equal(t, fleet, store.FilteredData().Vehicles)
}

func TestCategoriesAreLocalized(t *testing.T) {
	p := &fakeProvider{}
	s := New(p, handoff.New(), &recordingNav{}, i18n.New("ru"))
	s.HandleCategoryPress(category.Passenger)

	items := s.Categories()
	require.Len(t, items, 3)
	require.Equal(t, "Грузовой", items[0].Label)
	require.False(t, items[0].Selected)
	require.True(t, items[1].Selected)
	require.Equal(t, "Спецтранспорт", s.CategoryLabel(3))
	require.Equal(t, "-", s.CategoryLabel(99))
}

func TestEditingRenderedListKeepsFilterIntact(t *testing.T) {
	src := []models.Vehicle{{ID: "t1", CategoryID: 1}, {ID: "b1", CategoryID: 2}}
	s, _, _ := newScreen(&fakeProvider{data: models.VehiclesData{Vehicles: src}})
	s.Sync()

	got := s.Vehicles().Vehicles
	got[0].CategoryID = 2

	s.HandleCategoryPress(category.Cargo)
	require.Equal(t, []models.Vehicle{src[0]}, s.Vehicles().Vehicles)
}
