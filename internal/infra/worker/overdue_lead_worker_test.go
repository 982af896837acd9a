package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/crm"
)

func seeded(t *testing.T) *crm.Store {
	t.Helper()
	s := crm.New(crm.WithSeedDelay(time.Millisecond))
	t.Cleanup(s.Close)
	s.Start()
	select {
	case <-s.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("store was not seeded in time")
	}
	return s
}

func TestCheckReportsOverdue(t *testing.T) {
	w := NewOverdueLeadWorker(seeded(t), time.Minute)
	w.now = func() time.Time { return time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC) }
	got := -1
	w.Report = func(n int) { got = n }

	assert.True(t, w.check())
	// Only the Startup.io lead (2024-02-15) is past due on Feb 20.
	assert.Equal(t, 1, got)
}

func TestCheckSkipsWhileLoading(t *testing.T) {
	s := crm.New(crm.WithSeedDelay(time.Hour))
	t.Cleanup(s.Close)
	w := NewOverdueLeadWorker(s, time.Minute)
	called := false
	w.Report = func(int) { called = true }

	assert.True(t, w.check())
	assert.False(t, called)
}

func TestStartStopsWhenStoreCloses(t *testing.T) {
	s := seeded(t)
	w := NewOverdueLeadWorker(s, 5*time.Millisecond)
	s.Close()

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker kept running after store close")
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	w := NewOverdueLeadWorker(seeded(t), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "worker did not stop")
	}
}

func TestNonPositiveIntervalFallsBack(t *testing.T) {
	for _, every := range []time.Duration{0, -time.Second} {
		w := NewOverdueLeadWorker(nil, every)
		assert.Equal(t, DefaultInterval, w.tickInterval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NotPanics(t, func() { NewOverdueLeadWorker(nil, 0).Start(ctx) })
}

func TestCheckSurvivesCloseMidCheck(t *testing.T) {
	s := seeded(t)
	w := NewOverdueLeadWorker(s, time.Minute)
	w.now = func() time.Time {
		s.Close()
		return time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC)
	}
	called := false
	w.Report = func(int) { called = true }

	assert.NotPanics(t, func() { assert.False(t, w.check()) })
	assert.False(t, called)
}
