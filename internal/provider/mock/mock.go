package mock

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"fleetview/internal/models"
	"fleetview/internal/provider"

	"github.com/google/uuid"
)

var (
	fleetNames = []string{"Volvo FH", "MAN TGX", "Mercedes Sprinter", "PAZ 3205", "Ford Transit", "KAMAZ 65115"}
	drivers    = []string{"Ivan Petrov", "Anna Smirnova", "Oleg Ivanov", "Maria Sokolova", "Pavel Orlov"}
)

// Options tunes the simulated fleet.
type Options struct {
	Size      int
	LoadDelay time.Duration
	Tick      time.Duration
	Center    models.Location
	Seed      int64
}

// MockProvider is a simulated fleet used for demo and testing.
type MockProvider struct {
	mu      sync.RWMutex
	opts    Options
	rnd     *rand.Rand
	running bool
	loading bool
	// simulated values
	vehicles []models.Vehicle
	stopCh   chan struct{}
}

func New(opts Options) provider.VehicleProvider {
	if opts.Size <= 0 {
		opts.Size = 12
	}
	if opts.Tick <= 0 {
		opts.Tick = time.Second
	}
	if opts.Center == (models.Location{}) {
		opts.Center = models.Location{Lat: 55.7558, Lon: 37.6173}
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return &MockProvider{
		opts:    opts,
		rnd:     rand.New(rand.NewSource(opts.Seed)),
		loading: true,
	}
}

func (m *MockProvider) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return nil
	}
	m.running = true
	m.stopCh = make(chan struct{})
	go m.run(ctx, m.stopCh)
	return nil
}

func (m *MockProvider) run(ctx context.Context, stop <-chan struct{}) {
	select {
	case <-time.After(m.opts.LoadDelay):
	case <-ctx.Done():
		return
	case <-stop:
		return
	}

	m.mu.Lock()
	m.vehicles = m.seed()
	m.loading = false
	m.mu.Unlock()

	ticker := time.NewTicker(m.opts.Tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			// random walk positions
			for i := range m.vehicles {
				m.vehicles[i].Location.Lat += (m.rnd.Float64() - 0.5) * 0.002
				m.vehicles[i].Location.Lon += (m.rnd.Float64() - 0.5) * 0.002
			}
			m.mu.Unlock()
		case <-ctx.Done():
			return
		case <-stop:
			return
		}
	}
}

func (m *MockProvider) seed() []models.Vehicle {
	out := make([]models.Vehicle, m.opts.Size)
	for i := range out {
		out[i] = models.Vehicle{
			ID:          uuid.NewString(),
			Name:        fmt.Sprintf("%s #%d", fleetNames[m.rnd.Intn(len(fleetNames))], i+1),
			DriverName:  drivers[m.rnd.Intn(len(drivers))],
			DriverPhone: fmt.Sprintf("+7 9%02d %03d-%02d-%02d", m.rnd.Intn(100), m.rnd.Intn(1000), m.rnd.Intn(100), m.rnd.Intn(100)),
			CategoryID:  i%3 + 1,
			Location: models.Location{
				Lat: m.opts.Center.Lat + (m.rnd.Float64()-0.5)*0.1,
				Lon: m.opts.Center.Lon + (m.rnd.Float64()-0.5)*0.2,
			},
		}
	}
	return out
}

func (m *MockProvider) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	close(m.stopCh)
	m.running = false
}

func (m *MockProvider) GetVehicles() (models.VehiclesData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.VehiclesData{Vehicles: m.vehicles}.Clone(), nil
}

func (m *MockProvider) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// IsConnected for MockProvider always returns true while running.
func (m *MockProvider) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}
