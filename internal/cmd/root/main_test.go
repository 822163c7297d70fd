package root

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fleetview/internal/config"
	"fleetview/internal/i18n"
	"fleetview/internal/models"
)

type staticProvider struct {
	data    models.VehiclesData
	loading bool
}

func (s *staticProvider) Start(context.Context) error { return nil }
func (s *staticProvider) Stop()                       {}
func (s *staticProvider) GetVehicles() (models.VehiclesData, error) {
	return s.data, nil
}
func (s *staticProvider) IsLoading() bool   { return s.loading }
func (s *staticProvider) IsConnected() bool { return true }

func TestPrintSummaryFiltersByCategory(t *testing.T) {
	p := &staticProvider{data: models.VehiclesData{Vehicles: []models.Vehicle{
		{ID: "1", Name: "Volvo FH", CategoryID: 1, DriverName: "Ivan"},
		{ID: "2", Name: "PAZ", CategoryID: 2},
	}}}
	cfg := config.Config{Categories: []string{"cargo"}}

	var buf bytes.Buffer
	require.NoError(t, printSummary(context.Background(), &buf, cfg, p, i18n.New("en")))
	out := buf.String()
	require.Contains(t, out, "(1)")
	require.Contains(t, out, "Volvo FH [Cargo] Driver: Ivan")
	require.NotContains(t, out, "PAZ")
}

func TestPrintSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printSummary(context.Background(), &buf, config.Config{}, &staticProvider{}, i18n.New("ru")))
	require.Contains(t, buf.String(), "Нет транспорта")
}

func TestWaitLoadedTimesOut(t *testing.T) {
	err := waitLoaded(context.Background(), &staticProvider{loading: true}, 100*time.Millisecond)
	require.ErrorContains(t, err, "not loaded")
}

func TestNewProviderBySource(t *testing.T) {
	require.NotNil(t, newProvider(config.Config{Source: config.SourceMock}))
	require.NotNil(t, newProvider(config.Config{Source: config.SourceFile, File: "x.json"}))
	require.NotNil(t, newProvider(config.Config{Source: config.SourceSerial, Baud: 9600}))
}
