package mock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMockLoadsFleet(t *testing.T) {
	p := New(Options{Size: 6, LoadDelay: 10 * time.Millisecond, Tick: 5 * time.Millisecond, Seed: 1})
	require.True(t, p.IsLoading())

	data, err := p.GetVehicles()
	require.NoError(t, err)
	require.Empty(t, data.Vehicles)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, p.Start(ctx))
	require.True(t, p.IsConnected())

	require.Eventually(t, func() bool { return !p.IsLoading() }, time.Second, 5*time.Millisecond)

	data, err = p.GetVehicles()
	require.NoError(t, err)
	require.Len(t, data.Vehicles, 6)

	ids := map[string]bool{}
	for _, v := range data.Vehicles {
		require.Contains(t, []int{1, 2, 3}, v.CategoryID)
		require.False(t, ids[v.ID])
		ids[v.ID] = true
	}

	p.Stop()
	require.False(t, p.IsConnected())
	p.Stop()
}

func TestMockRestart(t *testing.T) {
	p := New(Options{Size: 3, Tick: 5 * time.Millisecond, Seed: 2})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for i := 0; i < 2; i++ {
		require.NoError(t, p.Start(ctx))
		require.Eventually(t, func() bool { return !p.IsLoading() }, time.Second, 5*time.Millisecond)
		p.Stop()
		require.False(t, p.IsConnected())
	}
}
