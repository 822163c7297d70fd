package models

// Location is a WGS84 position.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Vehicle is a single fleet entry as delivered by a data source.
type Vehicle struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	DriverName  string   `json:"driverName"`
	DriverPhone string   `json:"driverPhone"`
	CategoryID  int      `json:"categoryId"`
	Location    Location `json:"location"`
}

// VehiclesData is the envelope passed between screens.
type VehiclesData struct {
	Vehicles []Vehicle `json:"vehicles"`
}

// Clone returns a copy that shares no backing array with d.
func (d VehiclesData) Clone() VehiclesData {
	if d.Vehicles == nil {
		return VehiclesData{Vehicles: []Vehicle{}}
	}
	out := make([]Vehicle, len(d.Vehicles))
	copy(out, d.Vehicles)
	return VehiclesData{Vehicles: out}
}
