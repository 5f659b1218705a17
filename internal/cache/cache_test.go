package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// fakeLoader serves scripted results and counts calls
type fakeLoader struct {
	mu      sync.Mutex
	calls   int32
	results []result
	gate    chan struct{}
}

type result struct {
	items []string
	err   error
}

func (f *fakeLoader) load(ctx context.Context) ([]string, error) {
	n := atomic.AddInt32(&f.calls, 1)
	if f.gate != nil {
		<-f.gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	idx := int(n) - 1
	if idx >= len(f.results) {
		idx = len(f.results) - 1
	}
	r := f.results[idx]
	return r.items, r.err
}

func (f *fakeLoader) count() int {
	return int(atomic.LoadInt32(&f.calls))
}

func newTestCache(retries int) *Cache {
	return New(WithRetry(retries, time.Millisecond))
}

func TestLoad_concurrentReadersShareOneFetch(t *testing.T) {
	c := newTestCache(0)
	loader := &fakeLoader{results: []result{{items: []string{"a", "b"}}}, gate: make(chan struct{})}
	Register(c, Students, loader.load)

	const readers = 5
	var wg sync.WaitGroup
	got := make([][]string, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			items, err := Load[string](context.Background(), c, Students)
			assert.NoError(t, err)
			got[i] = items
		}(i)
	}

	require.Eventually(t, func() bool { return loader.count() == 1 }, time.Second, time.Millisecond)
	// give the other readers time to join the flight
	time.Sleep(20 * time.Millisecond)
	close(loader.gate)
	wg.Wait()

	assert.Equal(t, 1, loader.count())
	for _, items := range got {
		assert.Equal(t, []string{"a", "b"}, items)
	}
}

func TestLoad_freshEntryIsServedFromCache(t *testing.T) {
	c := newTestCache(0)
	loader := &fakeLoader{results: []result{{items: []string{"a"}}}}
	Register(c, Courses, loader.load)

	for i := 0; i < 3; i++ {
		items, err := Load[string](context.Background(), c, Courses)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, items)
	}
	assert.Equal(t, 1, loader.count())
}

func TestLoad_staleWhileErrorThenHeals(t *testing.T) {
	c := newTestCache(0)
	loader := &fakeLoader{results: []result{
		{items: []string{"a"}},
		{err: errBoom},
		{items: []string{"a", "b"}},
	}}
	Register(c, Grades, loader.load)

	_, err := Load[string](context.Background(), c, Grades)
	require.NoError(t, err)

	c.Invalidate(Grades)
	_, err = Load[string](context.Background(), c, Grades)
	require.ErrorIs(t, err, errBoom)

	snap := c.Read(Grades)
	assert.Equal(t, []string{"a"}, Items[string](snap))
	assert.True(t, snap.Stale)
	assert.ErrorIs(t, snap.Err, errBoom)
	assert.True(t, snap.Loading)

	require.Eventually(t, func() bool {
		snap := c.Read(Grades)
		return snap.Err == nil && !snap.Stale
	}, time.Second, time.Millisecond)

	assert.Equal(t, []string{"a", "b"}, Items[string](c.Read(Grades)))
	assert.Equal(t, 3, loader.count())
}

func TestRead_failureThenReadRefetches(t *testing.T) {
	c := newTestCache(0)
	loader := &fakeLoader{results: []result{{err: errBoom}, {items: []string{"a"}}}}
	Register(c, Students, loader.load)

	c.Read(Students)
	require.Eventually(t, func() bool { return c.Read(Students).Err != nil }, time.Second, time.Millisecond)

	require.Eventually(t, func() bool {
		snap := c.Read(Students)
		return len(Items[string](snap)) == 1 && snap.Err == nil
	}, time.Second, time.Millisecond)

	snap := c.Read(Students)
	assert.False(t, snap.Stale)
	assert.False(t, snap.Loading)
	assert.Equal(t, 2, loader.count())
}

func TestSubscribe_afterFailureRefetches(t *testing.T) {
	c := newTestCache(0)
	loader := &fakeLoader{results: []result{{err: errBoom}, {items: []string{"a"}}}}
	Register(c, Courses, loader.load)

	_, err := Load[string](context.Background(), c, Courses)
	require.ErrorIs(t, err, errBoom)

	events, unsubscribe := c.Subscribe(Courses)
	defer unsubscribe()

	assert.Equal(t, EventUpdated, waitEvent(t, events).Type)
	snap := c.Read(Courses)
	assert.Equal(t, []string{"a"}, Items[string](snap))
	assert.NoError(t, snap.Err)
	assert.Equal(t, 2, loader.count())
}

func TestLoad_readIsRetriedOnce(t *testing.T) {
	t.Run("second attempt succeeds", func(t *testing.T) {
		c := newTestCache(1)
		loader := &fakeLoader{results: []result{{err: errBoom}, {items: []string{"a"}}}}
		Register(c, Trainers, loader.load)

		items, err := Load[string](context.Background(), c, Trainers)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, items)
		assert.Equal(t, 2, loader.count())
	})

	t.Run("retry is capped", func(t *testing.T) {
		c := newTestCache(1)
		loader := &fakeLoader{results: []result{{err: errBoom}}}
		Register(c, Trainers, loader.load)

		_, err := Load[string](context.Background(), c, Trainers)
		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, 2, loader.count())
	})
}

func TestRead_isNonBlocking(t *testing.T) {
	c := newTestCache(0)
	loader := &fakeLoader{results: []result{{items: []string{"a"}}}, gate: make(chan struct{})}
	Register(c, Registrations, loader.load)

	snap := c.Read(Registrations)
	assert.True(t, snap.Loading)
	assert.Nil(t, snap.Data)

	close(loader.gate)
	require.Eventually(t, func() bool {
		s := c.Read(Registrations)
		return !s.Loading && len(Items[string](s)) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, 1, loader.count())
}

func TestSubscribe_invalidateRefetches(t *testing.T) {
	c := newTestCache(0)
	loader := &fakeLoader{results: []result{{items: []string{"a"}}, {items: []string{"a", "b"}}}}
	Register(c, Courses, loader.load)

	events, unsubscribe := c.Subscribe(Courses)
	defer unsubscribe()

	assert.Equal(t, EventUpdated, waitEvent(t, events).Type)

	c.Invalidate(Courses)
	assert.Equal(t, EventInvalidated, waitEvent(t, events).Type)
	assert.Equal(t, EventUpdated, waitEvent(t, events).Type)

	assert.Equal(t, []string{"a", "b"}, Items[string](c.Read(Courses)))
	assert.Equal(t, 2, loader.count())
}

func TestInvalidate_duringFlightLandsStale(t *testing.T) {
	c := newTestCache(0)
	loader := &fakeLoader{results: []result{{items: []string{"old"}}, {items: []string{"new"}}}, gate: make(chan struct{}, 2)}
	Register(c, Students, loader.load)

	done := make(chan []string)
	go func() {
		items, _ := Load[string](context.Background(), c, Students)
		done <- items
	}()

	require.Eventually(t, func() bool { return loader.count() == 1 }, time.Second, time.Millisecond)
	c.Invalidate(Students)
	loader.gate <- struct{}{}
	loader.gate <- struct{}{}

	assert.Equal(t, []string{"new"}, <-done)
	assert.Equal(t, 2, loader.count())
}

func TestFetch_unknownKind(t *testing.T) {
	c := newTestCache(0)

	_, err := c.Fetch(context.Background(), Users)
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.ErrorIs(t, c.Read(Users).Err, ErrUnknownKind)
}

func TestFetch_callerCancellationDoesNotAbortFlight(t *testing.T) {
	c := newTestCache(0)
	loader := &fakeLoader{results: []result{{items: []string{"a"}}}, gate: make(chan struct{})}
	Register(c, Users, loader.load)

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error)
	go func() {
		_, err := c.Fetch(ctx, Users)
		errs <- err
	}()

	require.Eventually(t, func() bool { return loader.count() == 1 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-errs, context.Canceled)

	close(loader.gate)
	items, err := Load[string](context.Background(), c, Users)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, items)
	assert.Equal(t, 1, loader.count())
}

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for cache event")
	}
	return Event{}
}
