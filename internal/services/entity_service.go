package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// DeleteResult is returned by a delete that reached the database without error,
// whether or not a row was removed.
type DeleteResult struct {
	Message string `json:"message"`
}

// EntityService runs the four single-statement operations against one table.
// Lookups return an empty slice when nothing matches; only storage faults are errors.
type EntityService[T any] struct {
	db   *gorm.DB
	spec tableSpec
}

func newEntityService[T any](db *gorm.DB, spec tableSpec) *EntityService[T] {
	return &EntityService[T]{db: db, spec: spec}
}

// Entity returns the display name used in messages, e.g. "User".
func (s *EntityService[T]) Entity() string { return s.spec.Entity }

func (s *EntityService[T]) GetByID(ctx context.Context, id int64) ([]T, error) {
	ctx, span := startSpan(ctx, s.spec.Entity, s.spec.Table, "get", attribute.Int64("storefront.id", id))
	defer span.End()

	rows := make([]T, 0, 1)
	if err := s.db.WithContext(ctx).Raw(s.spec.selectByColumn(s.spec.IDColumn), id).Scan(&rows).Error; err != nil {
		return nil, fail(ctx, span, s.spec.Entity, "get", &id, err)
	}
	return rows, nil
}

// Exists reports whether a row with the id is present.
func (s *EntityService[T]) Exists(ctx context.Context, id int64) (bool, error) {
	rows, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// Create inserts the given fields. A caller-supplied id is never written.
func (s *EntityService[T]) Create(ctx context.Context, fields map[string]any) ([]T, error) {
	ctx, span := startSpan(ctx, s.spec.Entity, s.spec.Table, "create")
	defer span.End()

	columns, values, err := s.spec.writableColumns(fields)
	if err != nil {
		return nil, err
	}

	rows := make([]T, 0, 1)
	if err := s.db.WithContext(ctx).Raw(s.spec.insertStatement(columns), values...).Scan(&rows).Error; err != nil {
		return nil, fail(ctx, span, s.spec.Entity, "create", nil, err)
	}
	return rows, nil
}

// Update sets only the supplied fields. An unknown id yields an empty slice.
// With nothing to set, the current row is returned unchanged.
func (s *EntityService[T]) Update(ctx context.Context, id int64, fields map[string]any) ([]T, error) {
	columns, values, err := s.spec.writableColumns(fields)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return s.GetByID(ctx, id)
	}

	ctx, span := startSpan(ctx, s.spec.Entity, s.spec.Table, "update", attribute.Int64("storefront.id", id))
	defer span.End()

	rows := make([]T, 0, 1)
	args := append(values, id)
	if err := s.db.WithContext(ctx).Raw(s.spec.updateStatement(columns), args...).Scan(&rows).Error; err != nil {
		return nil, fail(ctx, span, s.spec.Entity, "update", &id, err)
	}
	return rows, nil
}

func (s *EntityService[T]) Delete(ctx context.Context, id int64) (*DeleteResult, error) {
	ctx, span := startSpan(ctx, s.spec.Entity, s.spec.Table, "delete", attribute.Int64("storefront.id", id))
	defer span.End()

	if err := s.db.WithContext(ctx).Exec(s.spec.deleteStatement(), id).Error; err != nil {
		return nil, fail(ctx, span, s.spec.Entity, "delete", &id, err)
	}
	return &DeleteResult{Message: fmt.Sprintf("%s '%d' deleted successfully.", s.spec.Entity, id)}, nil
}

// listBy returns every row whose column equals value, ordered by id.
func (s *EntityService[T]) listBy(ctx context.Context, op, column string, value int64) ([]T, error) {
	ctx, span := startSpan(ctx, s.spec.Entity, s.spec.Table, op, attribute.Int64("storefront."+column, value))
	defer span.End()

	rows := make([]T, 0)
	if err := s.db.WithContext(ctx).Raw(s.spec.selectByColumn(column), value).Scan(&rows).Error; err != nil {
		return nil, fail(ctx, span, s.spec.Entity, op, &value, err)
	}
	return rows, nil
}
