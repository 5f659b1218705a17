// Package memory keeps the reference server's records in process memory.
// It mirrors the Postgres schema: unique keys report a conflict and deletes
// cascade the way the foreign keys do.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yigit/trainhub/internal/pkg/apperrors"
)

type table[T any] struct {
	mutex  sync.RWMutex
	rows   map[int64]T
	pkSeq  int64
	noun   string
	id     func(v *T) *int64
	unique func(a, b *T) bool

	// conflict replaces the generic duplicate error when set
	conflict error

	// onDelete runs after a row is removed, outside the lock
	onDelete func(id int64)
}

func newTable[T any](noun string, id func(v *T) *int64, unique func(a, b *T) bool) *table[T] {
	return &table[T]{
		rows:   make(map[int64]T),
		noun:   noun,
		id:     id,
		unique: unique,
	}
}

func (t *table[T]) notFound() error {
	return apperrors.NewResourceNotFoundError(t.noun + " not found")
}

// query returns a copy of every row ordered by id; callers hold the lock
func (t *table[T]) query() []T {
	out := make([]T, 0, len(t.rows))
	for _, v := range t.rows {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return *t.id(&out[i]) < *t.id(&out[j]) })
	return out
}

// checkUnique rejects v when another row shares its unique key
func (t *table[T]) checkUnique(v *T) error {
	if t.unique == nil {
		return nil
	}
	self := *t.id(v)
	for _, row := range t.rows {
		row := row
		if *t.id(&row) != self && t.unique(&row, v) {
			if t.conflict != nil {
				return t.conflict
			}
			return apperrors.NewConflictError(fmt.Sprintf("%s already exists", t.noun))
		}
	}
	return nil
}

func (t *table[T]) List(ctx context.Context) ([]T, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.query(), nil
}

func (t *table[T]) find(pred func(v *T) bool) []T {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	var out []T
	for _, v := range t.query() {
		v := v
		if pred(&v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *table[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	v, ok := t.rows[id]
	if !ok {
		return nil, t.notFound()
	}
	return &v, nil
}

func (t *table[T]) Create(ctx context.Context, v *T) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	*t.id(v) = 0
	if err := t.checkUnique(v); err != nil {
		return err
	}
	t.pkSeq++
	*t.id(v) = t.pkSeq
	t.rows[t.pkSeq] = *v
	return nil
}

func (t *table[T]) Update(ctx context.Context, v *T) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	id := *t.id(v)
	if _, ok := t.rows[id]; !ok {
		return t.notFound()
	}
	if err := t.checkUnique(v); err != nil {
		return err
	}
	t.rows[id] = *v
	return nil
}

func (t *table[T]) Delete(ctx context.Context, id int64) error {
	t.mutex.Lock()
	if _, ok := t.rows[id]; !ok {
		t.mutex.Unlock()
		return t.notFound()
	}
	delete(t.rows, id)
	t.mutex.Unlock()

	if t.onDelete != nil {
		t.onDelete(id)
	}
	return nil
}

// deleteWhere removes every row matching pred
func (t *table[T]) deleteWhere(pred func(v *T) bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for id, v := range t.rows {
		v := v
		if pred(&v) {
			delete(t.rows, id)
		}
	}
}

// updateWhere rewrites every row matching pred
func (t *table[T]) updateWhere(pred func(v *T) bool, apply func(v *T)) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for id, v := range t.rows {
		v := v
		if pred(&v) {
			apply(&v)
			t.rows[id] = v
		}
	}
}
