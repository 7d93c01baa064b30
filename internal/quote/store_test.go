package quote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/quote.works/internal/logger"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(opts StoreOptions) (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	st := NewStore(logger.Nop(), opts)
	st.now = clock.Now
	return st, clock
}

func TestStoreLifecycle(t *testing.T) {
	st, _ := newTestStore(StoreOptions{})

	a := st.Create()
	b := st.Create()
	require.NotEmpty(t, a.ID)
	require.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, st.Len())

	got, ok := st.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)

	assert.True(t, st.Delete(a.ID))
	assert.False(t, st.Delete(a.ID), "second delete")
	_, ok = st.Get(a.ID)
	assert.False(t, ok)
	assert.Equal(t, 1, st.Len())
}

func TestStoreExpiresIdleSessions(t *testing.T) {
	st, clock := newTestStore(StoreOptions{IdleTTL: 30 * time.Minute})

	idle := st.Create()
	active := st.Create()

	clock.Advance(20 * time.Minute)
	_, ok := st.Get(active.ID)
	require.True(t, ok)

	clock.Advance(15 * time.Minute)
	assert.Equal(t, 1, st.Sweep())
	_, ok = st.Get(idle.ID)
	assert.False(t, ok, "idle session survived the sweep")
	_, ok = st.Get(active.ID)
	assert.True(t, ok, "recently used session was swept")
}

func TestStoreGetDropsExpiredSessionBeforeSweep(t *testing.T) {
	st, clock := newTestStore(StoreOptions{IdleTTL: time.Minute})
	s := st.Create()

	clock.Advance(2 * time.Minute)
	_, ok := st.Get(s.ID)
	assert.False(t, ok)
	assert.Zero(t, st.Len())
}

func TestStoreCapEvictsLeastRecentlyUsed(t *testing.T) {
	st, clock := newTestStore(StoreOptions{MaxSessions: 3})

	first := st.Create()
	clock.Advance(time.Second)
	second := st.Create()
	clock.Advance(time.Second)
	third := st.Create()
	clock.Advance(time.Second)

	_, ok := st.Get(first.ID)
	require.True(t, ok)
	clock.Advance(time.Second)

	st.Create()
	assert.Equal(t, 3, st.Len())
	_, ok = st.Get(second.ID)
	assert.False(t, ok, "least recently used session should be evicted")
	_, ok = st.Get(first.ID)
	assert.True(t, ok)
	_, ok = st.Get(third.ID)
	assert.True(t, ok)
}

func TestStoreStaysBoundedUnderManyCreates(t *testing.T) {
	st, clock := newTestStore(StoreOptions{MaxSessions: 10})

	for i := 0; i < 1000; i++ {
		st.Create()
		clock.Advance(time.Millisecond)
	}
	assert.Equal(t, 10, st.Len())
}

func TestStoreRunStopsWithContext(t *testing.T) {
	st := NewStore(logger.Nop(), StoreOptions{IdleTTL: time.Nanosecond})
	st.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		st.Run(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return st.Len() == 0 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
