package repository

import (
	"context"

	"filearray/internal/model"
)

// RecordRepository persists records of one kind and their path array.
// No business logic here: strictly persistence operations.
type RecordRepository interface {
	// Create inserts a new record including its path array and returns the stored row.
	Create(ctx context.Context, rec *model.Record) (*model.Record, error)

	// FindByID returns a record by its ID. A missing row yields sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Record, error)

	// List returns a paginated list of records and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Record], error)

	// UpdatePaths overwrites the whole path array of an existing record.
	UpdatePaths(ctx context.Context, rec *model.Record) (*model.Record, error)

	// Delete removes a record by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
