// Package mapview lays vehicles out on a character grid.
package mapview

import (
	"math"

	"fleetview/internal/category"
	"fleetview/internal/models"
)

// Marker is a vehicle placed on the grid.
type Marker struct {
	X, Y    int
	Glyph   rune
	Vehicle models.Vehicle
}

// Bounds is the geographic box shown on the grid.
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Fit returns the smallest box containing every vehicle.
func Fit(vehicles []models.Vehicle) (Bounds, bool) {
	if len(vehicles) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		MinLat: math.Inf(1), MaxLat: math.Inf(-1),
		MinLon: math.Inf(1), MaxLon: math.Inf(-1),
	}
	for _, v := range vehicles {
		b.MinLat = math.Min(b.MinLat, v.Location.Lat)
		b.MaxLat = math.Max(b.MaxLat, v.Location.Lat)
		b.MinLon = math.Min(b.MinLon, v.Location.Lon)
		b.MaxLon = math.Max(b.MaxLon, v.Location.Lon)
	}
	return b, true
}

// Project places vehicles on a width x height grid, north up. A vehicle
// alone on an axis is centered on that axis.
func Project(vehicles []models.Vehicle, width, height int) []Marker {
	if width <= 0 || height <= 0 {
		return nil
	}
	b, ok := Fit(vehicles)
	if !ok {
		return nil
	}

	out := make([]Marker, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, Marker{
			X:       scale(v.Location.Lon-b.MinLon, b.MaxLon-b.MinLon, width),
			Y:       scale(b.MaxLat-v.Location.Lat, b.MaxLat-b.MinLat, height),
			Glyph:   Glyph(v.CategoryID),
			Vehicle: v,
		})
	}
	return out
}

func scale(offset, span float64, cells int) int {
	if span == 0 {
		return (cells - 1) / 2
	}
	return int(math.Round(offset / span * float64(cells-1)))
}

// Glyph is the marker for a backend category id.
func Glyph(categoryID int) rune {
	if _, d, ok := category.ByID(categoryID); ok {
		return d.Glyph
	}
	return '?'
}
