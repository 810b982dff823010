package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, maxSizeMB int64) *Memory {
	t.Helper()
	m := NewMemory(maxSizeMB)
	t.Cleanup(m.Stop)
	return m
}

func TestMemoryStopTerminatesSweep(t *testing.T) {
	m := NewMemory(1)

	// Stop waits for the sweep goroutine, so a prompt return proves it exited
	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestMemorySetGet(t *testing.T) {
	m := newTestCache(t, 1)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "key", []byte("value"), time.Minute))

	got, ok := m.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, []byte("value"), got)

	_, ok = m.Get(ctx, "missing")
	assert.False(t, ok)

	stats := m.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestMemoryOverwrite(t *testing.T) {
	m := newTestCache(t, 1)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "key", []byte("first"), time.Minute))
	require.NoError(t, m.Set(ctx, "key", []byte("second"), time.Minute))

	got, ok := m.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, []byte("second"), got)

	// Size accounting reflects only the current value
	assert.Equal(t, int64(len("key")+len("second")), m.Stats().Size)
}

func TestMemoryTTLExpiry(t *testing.T) {
	m := newTestCache(t, 1)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "key", []byte("value"), 10*time.Millisecond))

	_, ok := m.Get(ctx, "key")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = m.Get(ctx, "key")
	assert.False(t, ok)

	// The expired entry no longer counts toward the size
	assert.Zero(t, m.Stats().Size)
}

func TestMemorySizeEviction(t *testing.T) {
	m := newTestCache(t, 1)
	ctx := context.Background()

	big := bytes.Repeat([]byte("x"), 600*1024)
	require.NoError(t, m.Set(ctx, "first", big, time.Minute))
	require.NoError(t, m.Set(ctx, "second", big, time.Minute))

	// The cap is one megabyte, so storing the second value evicted the first
	_, ok := m.Get(ctx, "first")
	assert.False(t, ok)

	_, ok = m.Get(ctx, "second")
	assert.True(t, ok)

	stats := m.Stats()
	assert.Equal(t, int64(1), stats.Evictions)
	assert.LessOrEqual(t, stats.Size, stats.MaxSize)
}

func TestMemoryDelete(t *testing.T) {
	m := newTestCache(t, 1)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "key", []byte("value"), time.Minute))
	require.NoError(t, m.Delete(ctx, "key"))

	_, ok := m.Get(ctx, "key")
	assert.False(t, ok)
	assert.Zero(t, m.Stats().Size)
}

func TestMemoryClear(t *testing.T) {
	m := newTestCache(t, 1)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, m.Clear(ctx))

	_, ok := m.Get(ctx, "a")
	assert.False(t, ok)
	assert.Zero(t, m.Stats().Size)
}

func TestMemoryDefaultTTL(t *testing.T) {
	m := newTestCache(t, 1)
	ctx := context.Background()

	// Zero TTL falls back to the default rather than expiring instantly
	require.NoError(t, m.Set(ctx, "key", []byte("value"), 0))

	_, ok := m.Get(ctx, "key")
	assert.True(t, ok)
}
