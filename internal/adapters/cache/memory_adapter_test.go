package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAdapter_SetGet(t *testing.T) {
	ctx := context.Background()
	a := NewMemoryAdapter()

	require.NoError(t, a.Set(ctx, "doctors", []byte(`[{"id":1}]`), 60))

	got, err := a.Get(ctx, "doctors")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	got[0] = 'x'
	again, err := a.Get(ctx, "doctors")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(again))
}

func TestMemoryAdapter_Miss(t *testing.T) {
	_, err := NewMemoryAdapter().Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryAdapter_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	a := newMemoryAdapter(func() time.Time { return now })

	require.NoError(t, a.Set(ctx, "symptoms", []byte("x"), 10))
	require.NoError(t, a.Set(ctx, "forever", []byte("y"), 0))

	ok, err := a.Exists(ctx, "symptoms")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(10 * time.Second)

	_, err = a.Get(ctx, "symptoms")
	assert.ErrorIs(t, err, ErrCacheMiss)
	ok, _ = a.Exists(ctx, "symptoms")
	assert.False(t, ok)

	got, err := a.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, "y", string(got))
}

func TestMemoryAdapter_Delete(t *testing.T) {
	ctx := context.Background()
	a := NewMemoryAdapter()
	require.NoError(t, a.Set(ctx, "k", []byte("v"), 60))
	require.NoError(t, a.Delete(ctx, "k"))

	ok, err := a.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryAdapter_SetSweepsExpiredKeys(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	a := newMemoryAdapter(func() time.Time { return now })

	for i := 0; i < 10000; i++ {
		require.NoError(t, a.Set(ctx, fmt.Sprintf("/api/doctors?q=%d", i), []byte("x"), 600))
	}
	require.NoError(t, a.Set(ctx, "forever", []byte("y"), 0))
	assert.Len(t, a.entries, 10001)

	now = now.Add(time.Hour)
	require.NoError(t, a.Set(ctx, "fresh", []byte("z"), 600))

	assert.Len(t, a.entries, 2)
	assert.Contains(t, a.entries, "forever")
	assert.Contains(t, a.entries, "fresh")
}

func TestMemoryAdapter_SweepIsTimeGated(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	a := newMemoryAdapter(func() time.Time { return now })

	require.NoError(t, a.Set(ctx, "short", []byte("x"), 1))
	now = now.Add(2 * time.Second)
	require.NoError(t, a.Set(ctx, "other", []byte("y"), 60))
	assert.Len(t, a.entries, 2, "sweep runs at most once per interval")

	now = now.Add(sweepEvery)
	require.NoError(t, a.Set(ctx, "other", []byte("y"), 600))
	assert.Len(t, a.entries, 1)
}
