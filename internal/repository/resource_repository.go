package repository

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/brgy-tracker-api/internal/models"
)

// ResourceRepository manages persistence for one resource table. T is the
// stored row shape and must carry db tags for every selected column.
type ResourceRepository[T any] struct {
	db  *sqlx.DB
	res models.Resource
}

// NewResourceRepository constructs a ResourceRepository.
func NewResourceRepository[T any](db *sqlx.DB, res models.Resource) *ResourceRepository[T] {
	return &ResourceRepository[T]{db: db, res: res}
}

// Insert stores a new row built from input's db-tagged fields and returns
// it as persisted.
func (r *ResourceRepository[T]) Insert(ctx context.Context, input any, stamp any) (*T, error) {
	value := reflect.Indirect(reflect.ValueOf(input))
	fields := r.db.Mapper.TypeMap(value.Type())

	args := make([]interface{}, 0, len(r.res.Columns)+2)
	for _, column := range r.res.Columns {
		field := fields.GetByPath(column)
		if field == nil {
			return nil, fmt.Errorf("create %s: input has no field for column %s", r.res.Table, column)
		}
		args = append(args, value.FieldByIndex(field.Index).Interface())
	}
	args = append(args, stamp, stamp)

	columns := append(append([]string{}, r.res.Columns...), "created_at", "updated_at")
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		r.res.Table, strings.Join(columns, ", "), placeholders)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", r.res.Table, err)
	}
	defer tx.Rollback() //nolint:errcheck

	var id int64
	if err := tx.QueryRowxContext(ctx, tx.Rebind(query), args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("create %s: %w", r.res.Table, err)
	}

	var row T
	if err := tx.GetContext(ctx, &row, tx.Rebind(r.selectByID()), id); err != nil {
		return nil, fmt.Errorf("reload %s: %w", r.res.Table, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create %s: %w", r.res.Table, err)
	}
	return &row, nil
}

// FindByID fetches a row by id. It returns sql.ErrNoRows when absent.
func (r *ResourceRepository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var row T
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(r.selectByID()), id); err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns rows matching every condition, in the resource's order.
func (r *ResourceRepository[T]) List(ctx context.Context, filter models.ListFilter) ([]T, error) {
	where, args := whereClause(filter.Conditions)
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT %d OFFSET %d",
		r.res.SelectColumns(), r.res.Table, where, r.res.OrderBy, filter.Limit, filter.Skip)

	rows := make([]T, 0)
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.res.Table, err)
	}
	return rows, nil
}

// Count returns the number of rows matching every condition.
func (r *ResourceRepository[T]) Count(ctx context.Context, conditions []models.Condition) (int, error) {
	where, args := whereClause(conditions)
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", r.res.Table, where)

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.res.Table, err)
	}
	return total, nil
}

// Update applies the supplied columns and stamps updated_at in a single
// transaction. It returns sql.ErrNoRows when the id does not exist.
func (r *ResourceRepository[T]) Update(ctx context.Context, id int64, changes models.Changes, stamp any) (*T, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", r.res.Table, err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	existsQuery := fmt.Sprintf("SELECT 1 FROM %s WHERE id = ?", r.res.Table)
	if err := tx.GetContext(ctx, &exists, tx.Rebind(existsQuery), id); err != nil {
		return nil, err
	}

	assignments := changes.Assignments()
	sets := make([]string, 0, len(assignments)+1)
	args := make([]interface{}, 0, len(assignments)+2)
	for _, a := range assignments {
		sets = append(sets, a.Column+" = ?")
		args = append(args, a.Value)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, stamp, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", r.res.Table, strings.Join(sets, ", "))
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("update %s: %w", r.res.Table, err)
	}

	var row T
	if err := tx.GetContext(ctx, &row, tx.Rebind(r.selectByID()), id); err != nil {
		return nil, fmt.Errorf("reload %s: %w", r.res.Table, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update %s: %w", r.res.Table, err)
	}
	return &row, nil
}

// Delete removes a row. It returns sql.ErrNoRows when nothing was deleted.
func (r *ResourceRepository[T]) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", r.res.Table)
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.res.Table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.res.Table, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ResourceRepository[T]) selectByID() string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", r.res.SelectColumns(), r.res.Table)
}

func whereClause(conditions []models.Condition) (string, []interface{}) {
	if len(conditions) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(conditions))
	args := make([]interface{}, 0, len(conditions))
	for _, c := range conditions {
		parts = append(parts, c.Column+" = ?")
		args = append(args, c.Value)
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}
