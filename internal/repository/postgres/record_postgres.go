package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"filearray/internal/model"
	"filearray/internal/repository"
)

// RecordPostgres is a PostgreSQL implementation of repository.RecordRepository for one
// statically declared array field. Table and column names come from model.ArrayField, never
// from user input.
type RecordPostgres struct {
	db    *sql.DB
	field model.ArrayField
	types *pgtype.Map

	qInsert string
	qFind   string
	qCount  string
	qList   string
	qUpdate string
	qDelete string
}

// NewRecordPostgres creates a repository bound to field's table and column.
func NewRecordPostgres(db *sql.DB, field model.ArrayField) *RecordPostgres {
	t, c := field.Table, field.Column
	cols := fmt.Sprintf("id, %s, created_at, updated_at", c)
	return &RecordPostgres{
		db:      db,
		field:   field,
		types:   pgtype.NewMap(),
		qInsert: fmt.Sprintf(`INSERT INTO %s (id, %s, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING %s`, t, c, cols),
		qFind:   fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, cols, t),
		qCount:  fmt.Sprintf(`SELECT COUNT(*) FROM %s`, t),
		qList:   fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, cols, t),
		qUpdate: fmt.Sprintf(`UPDATE %s SET %s = $2, updated_at = $3 WHERE id = $1 RETURNING %s`, t, c, cols),
		qDelete: fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t),
	}
}

var _ repository.RecordRepository = (*RecordPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *RecordPostgres) scan(row rowScanner) (*model.Record, error) {
	out := model.Record{Kind: r.field.Kind}
	var paths []string
	if err := row.Scan(&out.ID, r.types.SQLScanner(&paths), &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}
	if paths == nil {
		paths = []string{}
	}
	out.Paths = paths
	return &out, nil
}

func pathsArg(paths []string) []string {
	if paths == nil {
		return []string{}
	}
	return paths
}

// Create inserts a new row and returns the stored record.
func (r *RecordPostgres) Create(ctx context.Context, rec *model.Record) (*model.Record, error) {
	row := r.db.QueryRowContext(ctx, r.qInsert, rec.ID, pathsArg(rec.Paths), rec.CreatedAt, rec.UpdatedAt)
	return r.scan(row)
}

// FindByID fetches a single record by its ID.
func (r *RecordPostgres) FindByID(ctx context.Context, id string) (*model.Record, error) {
	return r.scan(r.db.QueryRowContext(ctx, r.qFind, id))
}

// List returns records using LIMIT/OFFSET pagination and a total count.
func (r *RecordPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Record], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, r.qCount).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, r.qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Record, 0)
	for rows.Next() {
		rec, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Record]{Items: items, Total: total}, nil
}

// UpdatePaths rewrites the array column. A missing row yields sql.ErrNoRows.
func (r *RecordPostgres) UpdatePaths(ctx context.Context, rec *model.Record) (*model.Record, error) {
	row := r.db.QueryRowContext(ctx, r.qUpdate, rec.ID, pathsArg(rec.Paths), rec.UpdatedAt)
	return r.scan(row)
}

// Delete removes a record by ID. It does not return an error if the row does not exist.
func (r *RecordPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, r.qDelete, id)
	return err
}
