package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filearray/internal/model"
	"filearray/internal/repository"
)

// arrayConverter lets sqlmock accept []string arguments the way the pgx driver does.
type arrayConverter struct{}

func (arrayConverter) ConvertValue(v any) (driver.Value, error) {
	if s, ok := v.([]string); ok {
		return s, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

func newRepo(t *testing.T) (*RecordPostgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(arrayConverter{}))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRecordPostgres(db, model.Fields("path/to/files/")[model.KindImages]), mock
}

var columns = []string{"id", "images", "created_at", "updated_at"}

func TestRecordPostgres_Create(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()

	now := time.Now().UTC()
	rec := &model.Record{
		ID:        "rec-1",
		Paths:     []string{"path/to/files/c.png", "path/to/files/d.png"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO records_with_images \\(id, images, created_at, updated_at\\)").
		WithArgs(rec.ID, rec.Paths, now, now).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(rec.ID, "{path/to/files/c.png,path/to/files/d.png}", now, now))

	got, err := repo.Create(ctx, rec)

	require.NoError(t, err)
	assert.Equal(t, "rec-1", got.ID)
	assert.Equal(t, model.KindImages, got.Kind)
	assert.Equal(t, rec.Paths, got.Paths)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPostgres_Create_NilPathsStoredAsEmptyArray(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO records_with_images").
		WithArgs("rec-2", []string{}, now, now).
		WillReturnRows(sqlmock.NewRows(columns).AddRow("rec-2", "{}", now, now))

	got, err := repo.Create(context.Background(), &model.Record{ID: "rec-2", CreatedAt: now, UpdatedAt: now})

	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Paths)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPostgres_FindByID(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM records_with_images WHERE id = ?").
			WithArgs("rec-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("rec-1", "{old/a.png,old/b.png}", time.Now(), time.Now()))

		rec, err := repo.FindByID(ctx, "rec-1")

		require.NoError(t, err)
		assert.Equal(t, []string{"old/a.png", "old/b.png"}, rec.Paths)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM records_with_images WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		rec, err := repo.FindByID(ctx, "missing")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, rec)
	})
}

func TestRecordPostgres_List(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM records_with_images").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM records_with_images ORDER BY").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(columns).AddRow("rec-1", "{x.png}", time.Now(), time.Now()))

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 10, Offset: 0})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, []string{"x.png"}, res.Items[0].Paths)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPostgres_UpdatePaths(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now().UTC()
	rec := &model.Record{ID: "rec-1", Paths: []string{"new/c.png"}, UpdatedAt: now}

	mock.ExpectQuery("UPDATE records_with_images SET images = \\$2, updated_at = \\$3 WHERE id = \\$1").
		WithArgs("rec-1", []string{"new/c.png"}, now).
		WillReturnRows(sqlmock.NewRows(columns).AddRow("rec-1", "{new/c.png}", now, now))

	got, err := repo.UpdatePaths(context.Background(), rec)

	require.NoError(t, err)
	assert.Equal(t, []string{"new/c.png"}, got.Paths)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPostgres_Delete(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("DELETE FROM records_with_images WHERE id = ?").
		WithArgs("rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "rec-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
