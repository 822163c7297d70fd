package navigation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNavigateAndBack(t *testing.T) {
	n := New(HomeScreen)
	var seen []Screen
	n.OnChange(func(s Screen) { seen = append(seen, s) })

	require.False(t, n.Back())

	n.Navigate(MapScreen)
	n.Navigate(MapScreen)
	require.Equal(t, MapScreen, n.Current())

	require.True(t, n.Back())
	require.Equal(t, HomeScreen, n.Current())
	require.Equal(t, []Screen{MapScreen, HomeScreen}, seen)
}
