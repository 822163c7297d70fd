// Package serial reads vehicle positions from a telemetry receiver attached
// to a serial port.
//
// The receiver emits one record per line:
//
//	id;name;categoryId;lat;lon[;driver;phone]
//
// Records are upserted by id. A line consisting of CommandClear drops every
// known vehicle. Blank lines and lines starting with '#' are ignored.
package serial

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"fleetview/internal/models"
	"fleetview/internal/provider"
	"fleetview/pkg/log"

	"github.com/tarm/serial"
	"go.uber.org/zap"
)

const (
	CommandClear = "CLR"
	FieldSep     = ";"

	DefaultBaud = 9600
	maxRetries  = 3
	retryDelay  = 2 * time.Second
)

var ErrMalformedRecord = errors.New("malformed telemetry record")

// SerialProvider implements VehicleProvider backed by a serial telemetry receiver.
type SerialProvider struct {
	portName string
	baud     int
	port     io.ReadWriteCloser
	dial     func() (io.ReadWriteCloser, error)

	mu          sync.RWMutex
	order       []string
	byID        map[string]models.Vehicle
	loading     bool
	isConnected bool
	running     bool
	stopCh      chan struct{}
}

// New creates a SerialProvider. An empty portName selects the platform default.
func New(portName string, baud int) provider.VehicleProvider {
	return newProvider(portName, baud)
}

func newProvider(portName string, baud int) *SerialProvider {
	if portName == "" {
		portName = defaultPort()
	}
	if baud <= 0 {
		baud = DefaultBaud
	}
	s := &SerialProvider{
		portName: portName,
		baud:     baud,
		byID:     map[string]models.Vehicle{},
		loading:  true,
	}
	s.dial = s.open
	return s
}

func defaultPort() string {
	switch runtime.GOOS {
	case "windows":
		return "COM3"
	case "darwin":
		return "/dev/tty.usbserial"
	default:
		return "/dev/ttyUSB0"
	}
}

func (s *SerialProvider) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	port, err := s.dial()
	if err != nil {
		return fmt.Errorf("error while connecting: %w", err)
	}

	s.mu.Lock()
	s.port = port
	s.running = true
	s.isConnected = true
	s.stopCh = make(chan struct{})
	stop := s.stopCh
	s.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-stop:
		}
	}()
	go func() {
		err := s.consume(port)
		s.streamEnded(port)
		if err != nil {
			log.Warn("telemetry stream ended", zap.String("port", s.portName), zap.Error(err))
		}
	}()
	return nil
}

func (s *SerialProvider) open() (io.ReadWriteCloser, error) {
	log.Info("[Serial] Attempting to connect", zap.String("port", s.portName), zap.Int("baud", s.baud))
	cfg := &serial.Config{
		Name:        s.portName,
		Baud:        s.baud,
		ReadTimeout: 0,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	}

	// Try opening the port with retries
	var p *serial.Port
	var err error
	for i := 0; i < maxRetries; i++ {
		p, err = serial.OpenPort(cfg)
		if err == nil {
			break
		}
		log.Warn("Failed to open port, retrying...", zap.Error(err), zap.Int("attempt", i+1))
		time.Sleep(retryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open port after %d attempts: %w", maxRetries, err)
	}

	if err := p.Flush(); err != nil {
		log.Warn("Failed to flush port", zap.Error(err))
	}

	log.Info("[Serial] Port opened successfully", zap.String("port", s.portName))
	return p, nil
}

// streamEnded marks the provider disconnected unless port was already
// replaced by a later Start.
func (s *SerialProvider) streamEnded(port io.ReadWriteCloser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == port {
		s.isConnected = false
	}
}

// consume reads records from r until it is exhausted or fails.
func (s *SerialProvider) consume(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == CommandClear {
			s.clear()
			continue
		}
		v, err := parseRecord(line)
		if err != nil {
			log.Debug("skipping telemetry line", zap.String("line", line), zap.Error(err))
			continue
		}
		s.upsert(v)
	}
	return scanner.Err()
}

func (s *SerialProvider) upsert(v models.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[v.ID]; !ok {
		s.order = append(s.order, v.ID)
	}
	s.byID[v.ID] = v
	s.loading = false
}

func (s *SerialProvider) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.byID = map[string]models.Vehicle{}
}

// parseRecord decodes one telemetry line.
func parseRecord(line string) (models.Vehicle, error) {
	fields := strings.Split(line, FieldSep)
	if len(fields) != 5 && len(fields) != 7 {
		return models.Vehicle{}, fmt.Errorf("%w: want 5 or 7 fields, got %d", ErrMalformedRecord, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if fields[0] == "" {
		return models.Vehicle{}, fmt.Errorf("%w: empty id", ErrMalformedRecord)
	}

	catID, err := strconv.Atoi(fields[2])
	if err != nil {
		return models.Vehicle{}, fmt.Errorf("%w: category id: %v", ErrMalformedRecord, err)
	}
	lat, err := strconv.ParseFloat(fields[3], 64)
	if err != nil || lat < -90 || lat > 90 {
		return models.Vehicle{}, fmt.Errorf("%w: latitude %q", ErrMalformedRecord, fields[3])
	}
	lon, err := strconv.ParseFloat(fields[4], 64)
	if err != nil || lon < -180 || lon > 180 {
		return models.Vehicle{}, fmt.Errorf("%w: longitude %q", ErrMalformedRecord, fields[4])
	}

	v := models.Vehicle{
		ID:         fields[0],
		Name:       fields[1],
		CategoryID: catID,
		Location:   models.Location{Lat: lat, Lon: lon},
	}
	if len(fields) == 7 {
		v.DriverName = fields[5]
		v.DriverPhone = fields[6]
	}
	return v, nil
}

func (s *SerialProvider) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	close(s.stopCh)
	if s.port != nil {
		s.port.Close()
	}
	s.isConnected = false
	s.running = false
}

func (s *SerialProvider) GetVehicles() (models.VehiclesData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Vehicle, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return models.VehiclesData{Vehicles: out}, nil
}

func (s *SerialProvider) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *SerialProvider) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isConnected
}
