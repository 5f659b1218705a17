package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
	"github.com/yigit/trainhub/internal/pkg/dberrors"
	"github.com/yigit/trainhub/internal/pkg/logger"
)

// table maps one entity onto one Postgres table. columns excludes id; scan
// reads id followed by columns, values returns columns in the same order.
type table[T any] struct {
	db      *pgxpool.Pool
	sb      squirrel.StatementBuilderType
	name    string
	noun    string
	columns []string
	scan    func(row pgx.Row, v *T) error
	values  func(v *T) []interface{}
	id      func(v *T) *int64

	// conflicts maps unique constraint names to their error
	conflicts map[string]error
}

func newTable[T any](db *pgxpool.Pool, name, noun string, columns []string) table[T] {
	return table[T]{
		db:      db,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		name:    name,
		noun:    noun,
		columns: columns,
	}
}

func (t *table[T]) selectColumns() []string {
	return append([]string{"id"}, t.columns...)
}

// mapError converts constraint violations into application errors
func (t *table[T]) mapError(op string, err error) error {
	if code, constraint, ok := dberrors.Constraint(err); ok {
		switch code {
		case dberrors.CodeUniqueViolation:
			if known, found := t.conflicts[constraint]; found {
				return known
			}
			return apperrors.NewConflictError(fmt.Sprintf("%s already exists", t.noun))
		case dberrors.CodeForeignKeyViolation:
			return apperrors.NewValidationError(fmt.Sprintf("%s references a missing record", t.noun))
		case dberrors.CodeCheckViolation:
			return apperrors.NewValidationError(fmt.Sprintf("%s has an out-of-range value", t.noun))
		}
	}
	logger.Error().Err(err).Str("table", t.name).Msg("Error executing " + op + " query")
	return fmt.Errorf("error during %s on %s: %w", op, t.name, err)
}

// List retrieves every row ordered by id
func (t *table[T]) List(ctx context.Context) ([]T, error) {
	return t.listWhere(ctx, nil)
}

func (t *table[T]) listWhere(ctx context.Context, where squirrel.Sqlizer) ([]T, error) {
	q := t.sb.Select(t.selectColumns()...).From(t.name).OrderBy("id ASC")
	if where != nil {
		q = q.Where(where)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list %s query: %w", t.name, err)
	}

	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, t.mapError("list", err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var v T
		if err := t.scan(rows, &v); err != nil {
			return nil, fmt.Errorf("error scanning %s row: %w", t.name, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", t.name, err)
	}
	return out, nil
}

// GetByID retrieves one row
func (t *table[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	return t.getWhere(ctx, squirrel.Eq{"id": id})
}

func (t *table[T]) getWhere(ctx context.Context, where squirrel.Sqlizer) (*T, error) {
	sql, args, err := t.sb.Select(t.selectColumns()...).From(t.name).Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get %s query: %w", t.name, err)
	}

	var v T
	if err := t.scan(t.db.QueryRow(ctx, sql, args...), &v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(t.noun + " not found")
		}
		return nil, t.mapError("get", err)
	}
	return &v, nil
}

// Create inserts v and stores the generated id on it
func (t *table[T]) Create(ctx context.Context, v *T) error {
	sql, args, err := t.sb.Insert(t.name).
		Columns(t.columns...).
		Values(t.values(v)...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create %s query: %w", t.name, err)
	}

	if err := t.db.QueryRow(ctx, sql, args...).Scan(t.id(v)); err != nil {
		return t.mapError("create", err)
	}
	return nil
}

// Update overwrites every column of the row identified by v's id
func (t *table[T]) Update(ctx context.Context, v *T) error {
	set := make(map[string]interface{}, len(t.columns))
	for i, val := range t.values(v) {
		set[t.columns[i]] = val
	}

	sql, args, err := t.sb.Update(t.name).SetMap(set).Where(squirrel.Eq{"id": *t.id(v)}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update %s query: %w", t.name, err)
	}

	tag, err := t.db.Exec(ctx, sql, args...)
	if err != nil {
		return t.mapError("update", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(t.noun + " not found")
	}
	return nil
}

// Delete removes one row
func (t *table[T]) Delete(ctx context.Context, id int64) error {
	sql, args, err := t.sb.Delete(t.name).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete %s query: %w", t.name, err)
	}

	tag, err := t.db.Exec(ctx, sql, args...)
	if err != nil {
		return t.mapError("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(t.noun + " not found")
	}
	return nil
}
