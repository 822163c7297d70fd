package mapview

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fleetview/internal/models"
)

func at(cat int, lat, lon float64) models.Vehicle {
	return models.Vehicle{CategoryID: cat, Location: models.Location{Lat: lat, Lon: lon}}
}

func TestProjectCorners(t *testing.T) {
	vs := []models.Vehicle{
		at(1, 10, 20), // south-west
		at(2, 20, 40), // north-east
		at(3, 15, 30),
	}
	ms := Project(vs, 11, 5)
	require.Len(t, ms, 3)

	require.Equal(t, 0, ms[0].X)
	require.Equal(t, 4, ms[0].Y)
	require.Equal(t, 'C', ms[0].Glyph)

	require.Equal(t, 10, ms[1].X)
	require.Equal(t, 0, ms[1].Y)
	require.Equal(t, 'P', ms[1].Glyph)

	require.Equal(t, 5, ms[2].X)
	require.Equal(t, 2, ms[2].Y)
	require.Equal(t, 'S', ms[2].Glyph)
}

func TestProjectSinglePointIsCentered(t *testing.T) {
	ms := Project([]models.Vehicle{at(9, 1, 1)}, 21, 9)
	require.Len(t, ms, 1)
	require.Equal(t, 10, ms[0].X)
	require.Equal(t, 4, ms[0].Y)
	require.Equal(t, '?', ms[0].Glyph)
}

func TestProjectEmpty(t *testing.T) {
	require.Nil(t, Project(nil, 10, 10))
	require.Nil(t, Project([]models.Vehicle{at(1, 0, 0)}, 0, 10))
	_, ok := Fit(nil)
	require.False(t, ok)
}
