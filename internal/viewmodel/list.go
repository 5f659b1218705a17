// Package viewmodel holds the per-page state of the CRUD list screens: the
// search query, the open dialog and the pending form. Collections come from
// the shared cache and writes go through the mutation coordinator.
package viewmodel

import (
	"context"
	"errors"
	"strings"

	"github.com/yigit/trainhub/internal/cache"
	"github.com/yigit/trainhub/internal/mutation"
	"github.com/yigit/trainhub/internal/pkg/validation"
)

// View-model errors
var (
	ErrNoDialog         = errors.New("no dialog is open for this action")
	ErrEditNotSupported = errors.New("editing is not supported for this resource")
)

// DialogMode is the dialog currently open on a list page
type DialogMode int

const (
	DialogClosed DialogMode = iota
	DialogForm
	DialogConfirmDelete
)

func (m DialogMode) String() string {
	switch m {
	case DialogForm:
		return "form"
	case DialogConfirmDelete:
		return "confirm-delete"
	}
	return "closed"
}

// Texts overrides the notification messages of one action
type Texts struct {
	Success string
	Failure string
}

// Definition binds the generic list to one entity type. T is the record, F
// its form.
type Definition[T, F any] struct {
	Kind cache.Kind
	Noun string

	Defaults     func() F
	ToForm       func(T) F
	ID           func(T) int64
	SearchFields func(T) []string

	Create func(ctx context.Context, form F) error
	// Update is nil when the page offers no edit
	Update func(ctx context.Context, id int64, form F) error
	Delete func(ctx context.Context, id int64) error

	Texts map[mutation.Action]Texts
}

// Reader is the non-blocking side of the cache
type Reader interface {
	Read(kind cache.Kind) cache.Snapshot
}

// Performer runs writes
type Performer interface {
	Perform(ctx context.Context, op mutation.Op, call func(ctx context.Context) error) error
}

// List is the state of one list page. It is driven by a single goroutine.
type List[T, F any] struct {
	def       Definition[T, F]
	source    Reader
	mutations Performer

	search string
	form   F
	active *T
	mode   DialogMode
}

// NewList creates a closed list page with an empty search
func NewList[T, F any](def Definition[T, F], source Reader, mutations Performer) *List[T, F] {
	l := &List[T, F]{def: def, source: source, mutations: mutations}
	l.form = l.defaults()
	return l
}

// Kind returns the cache kind the page reads
func (l *List[T, F]) Kind() cache.Kind {
	return l.def.Kind
}

// Noun returns the display name of the entity
func (l *List[T, F]) Noun() string {
	return l.def.Noun
}

// SetSearch replaces the search query. Nothing is refetched.
func (l *List[T, F]) SetSearch(q string) {
	l.search = q
}

// Search returns the current query
func (l *List[T, F]) Search() string {
	return l.search
}

// Snapshot returns the cache entry behind the page
func (l *List[T, F]) Snapshot() cache.Snapshot {
	return l.source.Read(l.def.Kind)
}

// Items returns the cached collection filtered by the search query. Order is
// preserved and the cached slice is never modified.
func (l *List[T, F]) Items() []T {
	return Filter(cache.Items[T](l.Snapshot()), l.search, l.def.SearchFields)
}

// Find returns the cached entity with id, ignoring the search query
func (l *List[T, F]) Find(id int64) (T, bool) {
	for _, item := range cache.Items[T](l.Snapshot()) {
		if l.def.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Loading reports whether the page has nothing to show yet
func (l *List[T, F]) Loading() bool {
	snap := l.Snapshot()
	return snap.Loading && snap.Data == nil
}

// Err returns the last read error of the collection
func (l *List[T, F]) Err() error {
	return l.Snapshot().Err
}

// Mode returns the open dialog
func (l *List[T, F]) Mode() DialogMode {
	return l.mode
}

// Active returns the entity being edited or deleted, nil when creating
func (l *List[T, F]) Active() *T {
	return l.active
}

// CanEdit reports whether the resource supports updates from this page
func (l *List[T, F]) CanEdit() bool {
	return l.def.Update != nil
}

// Form returns the pending form buffer for editing in place
func (l *List[T, F]) Form() *F {
	return &l.form
}

// OpenCreate opens an empty form
func (l *List[T, F]) OpenCreate() {
	l.form = l.defaults()
	l.active = nil
	l.mode = DialogForm
}

// OpenEdit opens the form filled from item
func (l *List[T, F]) OpenEdit(item T) error {
	if l.def.Update == nil {
		return ErrEditNotSupported
	}
	l.form = l.def.ToForm(item)
	l.active = &item
	l.mode = DialogForm
	return nil
}

// Submit validates the form and creates or updates through the coordinator.
// Invalid input is rejected before any request is sent. On failure the
// dialog and form are left untouched.
func (l *List[T, F]) Submit(ctx context.Context) error {
	if l.mode != DialogForm {
		return ErrNoDialog
	}
	if err := validation.Struct(l.form); err != nil {
		return err
	}

	form := l.form
	if l.active == nil {
		op := l.op(mutation.Create)
		return l.mutations.Perform(ctx, op, func(ctx context.Context) error {
			return l.def.Create(ctx, form)
		})
	}

	if l.def.Update == nil {
		return ErrEditNotSupported
	}
	id := l.def.ID(*l.active)
	op := l.op(mutation.Update)
	return l.mutations.Perform(ctx, op, func(ctx context.Context) error {
		return l.def.Update(ctx, id, form)
	})
}

// ConfirmDelete opens the delete confirmation for item
func (l *List[T, F]) ConfirmDelete(item T) {
	l.active = &item
	l.mode = DialogConfirmDelete
}

// ExecuteDelete deletes the entity under confirmation
func (l *List[T, F]) ExecuteDelete(ctx context.Context) error {
	if l.mode != DialogConfirmDelete || l.active == nil {
		return ErrNoDialog
	}

	id := l.def.ID(*l.active)
	op := l.op(mutation.Delete)
	return l.mutations.Perform(ctx, op, func(ctx context.Context) error {
		return l.def.Delete(ctx, id)
	})
}

// Cancel closes any dialog and resets the form
func (l *List[T, F]) Cancel() {
	l.reset()
}

func (l *List[T, F]) reset() {
	l.mode = DialogClosed
	l.active = nil
	l.form = l.defaults()
}

func (l *List[T, F]) defaults() F {
	if l.def.Defaults != nil {
		return l.def.Defaults()
	}
	var zero F
	return zero
}

func (l *List[T, F]) op(action mutation.Action) mutation.Op {
	texts := l.def.Texts[action]
	return mutation.Op{
		Kind:        l.def.Kind,
		Action:      action,
		Noun:        l.def.Noun,
		SuccessText: texts.Success,
		FailureText: texts.Failure,
		OnSuccess:   l.reset,
	}
}

// Filter keeps the items where one of fields contains query, ignoring case.
// An empty query keeps everything. The input slice is not modified.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	if query == "" || fields == nil {
		return append([]T(nil), items...)
	}

	q := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
