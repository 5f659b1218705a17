// Package cache keeps the last fetched collection of each resource kind and
// shares it between every reader.
//
// One fetch at most is in flight per kind; concurrent readers join it. A
// successful fetch replaces the collection wholesale. A failed fetch keeps the
// previous collection and records the error until the next success. Reads are
// retried a bounded number of times; writes never go through the cache.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"
)

// ErrUnknownKind is returned for a kind nobody registered a loader for
var ErrUnknownKind = errors.New("cache: unknown kind")

const subscriberBuffer = 8

// Loader fetches a whole collection
type Loader func(ctx context.Context) (interface{}, error)

// Snapshot is a non-blocking view of one entry
type Snapshot struct {
	Kind      Kind
	Data      interface{}
	Loading   bool
	Stale     bool
	Err       error
	UpdatedAt time.Time
}

// Items returns the snapshot data as []T, nil when absent
func Items[T any](s Snapshot) []T {
	items, _ := s.Data.([]T)
	return items
}

type entry struct {
	loader    Loader
	data      interface{}
	has       bool
	stale     bool
	loading   bool
	scheduled bool
	err       error
	updatedAt time.Time

	// generation is bumped by every invalidation; a fetch that started in an
	// older generation lands stale
	generation uint64
	failedGen  uint64

	subscribers map[int]chan Event
}

// Cache is safe for concurrent use
type Cache struct {
	mu      sync.Mutex
	entries map[Kind]*entry
	nextSub int

	group      singleflight.Group
	retries    uint64
	retryDelay time.Duration

	logger zerolog.Logger
}

// Option configures a Cache
type Option func(*Cache)

// WithRetry sets how many times a failed read is retried and the pause between attempts
func WithRetry(retries int, delay time.Duration) Option {
	return func(c *Cache) {
		if retries < 0 {
			retries = 0
		}
		if delay <= 0 {
			delay = time.Millisecond
		}
		c.retries = uint64(retries)
		c.retryDelay = delay
	}
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Cache) {
		c.logger = l
	}
}

// New creates an empty cache. Reads are retried once by default.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[Kind]*entry),
		retries:    1,
		retryDelay: 200 * time.Millisecond,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register binds the loader of a kind. Registering a kind again replaces its loader
// and drops the cached collection.
func Register[T any](c *Cache, kind Kind, load func(ctx context.Context) ([]T, error)) {
	loader := func(ctx context.Context) (interface{}, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[kind]; ok {
		e.loader = loader
		e.data, e.has, e.err = nil, false, nil
		e.generation++
		return
	}
	c.entries[kind] = &entry{loader: loader, subscribers: make(map[int]chan Event)}
}

// Load blocks until the collection of kind is available and returns it typed
func Load[T any](ctx context.Context, c *Cache, kind Kind) ([]T, error) {
	v, err := c.Fetch(ctx, kind)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]T)
	if !ok {
		return nil, fmt.Errorf("cache: %s holds %T", kind, v)
	}
	return items, nil
}

// Read returns the current entry without blocking. When the entry is absent
// or stale and nothing is in flight, a background fetch is started.
func (c *Cache) Read(kind Kind) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[kind]
	if !ok {
		return Snapshot{Kind: kind, Err: ErrUnknownKind}
	}

	c.triggerLocked(kind, e, true)
	return snapshotLocked(kind, e)
}

// Fetch returns the fresh collection of kind, joining the in-flight fetch or
// starting one. The fetch itself is not bound to ctx: cancelling one caller
// does not abort it for the others.
func (c *Cache) Fetch(ctx context.Context, kind Kind) (interface{}, error) {
	for {
		c.mu.Lock()
		e, ok := c.entries[kind]
		if !ok {
			c.mu.Unlock()
			return nil, ErrUnknownKind
		}
		if e.has && !e.stale {
			data := e.data
			c.mu.Unlock()
			return data, nil
		}
		c.mu.Unlock()

		ch := c.group.DoChan(kind.String(), func() (interface{}, error) {
			return c.run(kind)
		})

		select {
		case res := <-ch:
			if res.Err != nil {
				return nil, res.Err
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		// the landed fetch may already be stale if an invalidation raced it
	}
}

// Invalidate marks kinds stale. Kinds with subscribers are refetched at once.
func (c *Cache) Invalidate(kinds ...Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, kind := range kinds {
		e, ok := c.entries[kind]
		if !ok {
			continue
		}
		e.stale = true
		e.generation++

		c.logger.Debug().Str("kind", kind.String()).Msg("cache entry invalidated")
		broadcastLocked(e, Event{Kind: kind, Type: EventInvalidated})

		if len(e.subscribers) > 0 {
			c.triggerLocked(kind, e, false)
		}
	}
}

// triggerLocked schedules a background fetch. Only a reader asking for the
// entry retries a generation that already failed.
func (c *Cache) triggerLocked(kind Kind, e *entry, reader bool) {
	if e.loading || e.scheduled || (e.has && !e.stale) {
		return
	}
	if !reader && e.err != nil && e.failedGen == e.generation {
		return
	}
	e.scheduled = true
	go c.refresh(kind)
}

func (c *Cache) refresh(kind Kind) {
	c.mu.Lock()
	if e, ok := c.entries[kind]; ok {
		e.scheduled = false
	}
	c.mu.Unlock()

	if _, err := c.Fetch(context.Background(), kind); err != nil {
		c.logger.Debug().Err(err).Str("kind", kind.String()).Msg("background fetch failed")
	}
}

// run is the single writer of an entry
func (c *Cache) run(kind Kind) (interface{}, error) {
	c.mu.Lock()
	e := c.entries[kind]
	loader := e.loader
	gen := e.generation
	e.loading = true
	c.mu.Unlock()

	start := time.Now()
	c.logger.Debug().Str("kind", kind.String()).Msg("fetch started")

	var data interface{}
	attempt := 0
	backoff := retry.WithMaxRetries(c.retries, retry.NewConstant(c.retryDelay))
	err := retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		attempt++
		v, err := loader(ctx)
		if err != nil {
			if attempt <= int(c.retries) {
				c.logger.Warn().Err(err).Str("kind", kind.String()).Int("attempt", attempt).Msg("fetch failed, retrying")
			}
			return retry.RetryableError(err)
		}
		data = v
		return nil
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	e.loading = false
	if err != nil {
		e.err = err
		e.failedGen = e.generation
		c.logger.Warn().Err(err).Str("kind", kind.String()).Dur("elapsed", time.Since(start)).Msg("fetch failed")
		broadcastLocked(e, Event{Kind: kind, Type: EventFailed, Err: err})
		return nil, err
	}

	e.data = data
	e.has = true
	e.err = nil
	e.updatedAt = time.Now()
	e.stale = e.generation != gen

	c.logger.Debug().Str("kind", kind.String()).Dur("elapsed", time.Since(start)).Bool("stale", e.stale).Msg("fetch finished")
	broadcastLocked(e, Event{Kind: kind, Type: EventUpdated})

	if e.stale && len(e.subscribers) > 0 {
		c.triggerLocked(kind, e, false)
	}
	return data, nil
}

func snapshotLocked(kind Kind, e *entry) Snapshot {
	return Snapshot{
		Kind:      kind,
		Data:      e.data,
		Loading:   e.loading || e.scheduled,
		Stale:     e.stale,
		Err:       e.err,
		UpdatedAt: e.updatedAt,
	}
}
