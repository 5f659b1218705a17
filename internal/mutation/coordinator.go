// Package mutation runs writes against the API and applies their effects:
// cache invalidation, a user notification and closing the active dialog.
package mutation

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/trainhub/internal/cache"
)

// Action is the kind of write
type Action int

const (
	Create Action = iota + 1
	Update
	Delete
)

func (a Action) String() string {
	switch a {
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	}
	return "unknown"
}

func (a Action) pastTense() string {
	switch a {
	case Create:
		return "created"
	case Update:
		return "updated"
	case Delete:
		return "deleted"
	}
	return "done"
}

// Op describes one write
type Op struct {
	Kind   cache.Kind
	Action Action
	// Noun names the entity in messages, e.g. "Course"
	Noun string

	// SuccessText and FailureText override the default messages
	SuccessText string
	FailureText string

	// OnSuccess runs after invalidation, typically closing the dialog and resetting the form
	OnSuccess func()
}

func (op Op) successText() string {
	if op.SuccessText != "" {
		return op.SuccessText
	}
	return op.Noun + " " + op.Action.pastTense() + " successfully"
}

func (op Op) failureText() string {
	if op.FailureText != "" {
		return op.FailureText
	}
	return "Failed to " + op.Action.String() + " " + strings.ToLower(op.Noun)
}

// Invalidator is the part of the cache a coordinator needs
type Invalidator interface {
	Invalidate(kinds ...cache.Kind)
}

// Coordinator wraps writes. It never retries: the user resubmits.
type Coordinator struct {
	cache    Invalidator
	notifier Notifier
	policy   Policy
	logger   zerolog.Logger
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithPolicy replaces the invalidation policy
func WithPolicy(p Policy) Option {
	return func(c *Coordinator) {
		c.policy = p
	}
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// NewCoordinator creates a coordinator invalidating only the written kind
func NewCoordinator(c Invalidator, n Notifier, opts ...Option) *Coordinator {
	coord := &Coordinator{
		cache:    c,
		notifier: n,
		policy:   OwnKind{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(coord)
	}
	return coord
}

// Perform runs call. On success the policy's kinds are invalidated, a success
// notification is emitted and op.OnSuccess runs. On failure only a generic
// failure notification is emitted and the error is returned; caller state is
// left as is.
func (c *Coordinator) Perform(ctx context.Context, op Op, call func(ctx context.Context) error) error {
	if err := call(ctx); err != nil {
		c.logger.Warn().
			Err(err).
			Str("kind", op.Kind.String()).
			Str("action", op.Action.String()).
			Msg("write failed")
		c.notify(Notification{Level: LevelError, Title: "Error", Message: op.failureText()})
		return err
	}

	targets := c.policy.Targets(op.Kind)
	c.cache.Invalidate(targets...)

	c.logger.Info().
		Str("kind", op.Kind.String()).
		Str("action", op.Action.String()).
		Int("invalidated", len(targets)).
		Msg("write succeeded")
	c.notify(Notification{Level: LevelSuccess, Title: "Success", Message: op.successText()})

	if op.OnSuccess != nil {
		op.OnSuccess()
	}
	return nil
}

func (c *Coordinator) notify(n Notification) {
	if c.notifier != nil {
		c.notifier.Notify(n)
	}
}
