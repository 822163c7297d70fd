// Package file serves a fleet snapshot from a JSON file and reloads it when
// the file changes on disk.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fleetview/internal/models"
	"fleetview/internal/provider"
	"fleetview/pkg/log"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type FileProvider struct {
	path string

	mu       sync.RWMutex
	running  bool
	loading  bool
	data     models.VehiclesData
	err      error
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	reloaded chan struct{}
}

func New(path string) provider.VehicleProvider {
	return newProvider(path)
}

func newProvider(path string) *FileProvider {
	return &FileProvider{
		path:     path,
		loading:  true,
		reloaded: make(chan struct{}, 1),
	}
}

// Start begins the initial load in the background and watches the file's
// directory, so editors that replace the file by rename are picked up too.
func (f *FileProvider) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(f.path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(f.path), err)
	}
	f.watcher = w
	f.running = true
	f.stopCh = make(chan struct{})

	stop := f.stopCh
	go func() {
		f.reload()
		f.watch(ctx, w, stop)
	}()
	return nil
}

func (f *FileProvider) watch(ctx context.Context, w *fsnotify.Watcher, stop <-chan struct{}) {
	target := filepath.Clean(f.path)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				log.Debug("fleet file changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
				f.reload()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("fleet file watcher error", zap.Error(err))
		case <-ctx.Done():
			return
		case <-stop:
			return
		}
	}
}

func (f *FileProvider) reload() {
	data, err := load(f.path)

	f.mu.Lock()
	f.loading = false
	f.err = err
	if err == nil {
		f.data = data
	}
	f.mu.Unlock()

	if err != nil {
		log.Warn("failed to load fleet file", zap.String("path", f.path), zap.Error(err))
	} else {
		log.Info("fleet file loaded", zap.String("path", f.path), zap.Int("vehicles", len(data.Vehicles)))
	}

	select {
	case f.reloaded <- struct{}{}:
	default:
	}
}

func load(path string) (models.VehiclesData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.VehiclesData{}, fmt.Errorf("read fleet file: %w", err)
	}
	var data models.VehiclesData
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.VehiclesData{}, fmt.Errorf("decode fleet file %s: %w", path, err)
	}
	return data, nil
}

func (f *FileProvider) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.running {
		return
	}
	close(f.stopCh)
	f.watcher.Close()
	f.running = false
}

// GetVehicles returns the last good snapshot together with the error of the
// most recent load, if any.
func (f *FileProvider) GetVehicles() (models.VehiclesData, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.data.Clone(), f.err
}

func (f *FileProvider) IsLoading() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loading
}

func (f *FileProvider) IsConnected() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.running && f.err == nil
}
