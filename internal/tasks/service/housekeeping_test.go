package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingSweep(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.register(t, "alice", "a@x.com", "secret1")
	_, stale := h.login(t, "a@x.com", "secret1")

	h.clock.Advance(30 * time.Minute)
	_, fresh := h.login(t, "a@x.com", "secret1")
	h.clock.Advance(30 * time.Minute)

	hk := service.NewHousekeepingService(h.store, slogx.Discard(), 0)
	hk.Clock = h.clock.Now
	require.Equal(t, time.Hour, hk.Interval)

	require.EqualValues(t, 1, hk.Sweep(ctx))
	require.Equal(t, 1, countSessions(t, h.store))

	_, err := h.sessions.Resolve(ctx, stale)
	require.ErrorIs(t, err, service.ErrUnauthenticated)
	_, err = h.sessions.Resolve(ctx, fresh)
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	h := newHarness(t)
	hk := service.NewHousekeepingService(h.store, slogx.Discard(), time.Millisecond)
	hk.Start()
	time.Sleep(5 * time.Millisecond)
	hk.Stop()
}

func TestHousekeepingStopIsIdempotent(t *testing.T) {
	h := newHarness(t)

	hk := service.NewHousekeepingService(h.store, slogx.Discard(), time.Millisecond)
	hk.Start()
	hk.Stop()
	require.NotPanics(t, hk.Stop)
	hk.Start()

	never := service.NewHousekeepingService(h.store, slogx.Discard(), time.Hour)
	require.NotPanics(t, never.Stop)
	require.NotPanics(t, never.Stop)
}
