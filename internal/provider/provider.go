package provider

import (
	"context"

	"fleetview/internal/models"
)

// VehicleProvider abstracts a source of fleet data.
// It handles connecting to the source, keeping the data fresh and reporting
// whether the first load is still in progress.
type VehicleProvider interface {
	Start(ctx context.Context) error
	Stop()
	// GetVehicles returns the latest snapshot. Callers own the returned slice.
	GetVehicles() (models.VehiclesData, error)
	IsLoading() bool
	IsConnected() bool
}
