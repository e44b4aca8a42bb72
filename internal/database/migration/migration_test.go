package migration

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filearray/internal/model"
)

func TestSteps(t *testing.T) {
	steps := Steps(model.Fields("path/to/files/"))

	require.Len(t, steps, 5)
	assert.Equal(t, "create_extension_uuid_ossp", steps[0].Name)
	assert.Equal(t, "create_table_records_with_files", steps[1].Name)
	assert.Contains(t, steps[1].SQL, "files         TEXT[]")
	assert.Equal(t, "create_table_records_with_images", steps[3].Name)
}

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()
	fields := map[model.Kind]model.ArrayField{
		model.KindFiles: model.Fields("p/")[model.KindFiles],
	}

	t.Run("skips when tables exist", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT to_regclass").
			WithArgs("public.records_with_files").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		assert.NoError(t, EnsureMigrated(ctx, db, zap.NewNop(), fields, "localhost"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("runs every step when a table is missing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT to_regclass").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE EXTENSION").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS records_with_files").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_records_with_files_created_at").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, EnsureMigrated(ctx, db, zap.NewNop(), fields, "localhost"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("step failure is returned", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT to_regclass").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE EXTENSION").WillReturnError(errors.New("permission denied"))

		err = EnsureMigrated(ctx, db, zap.NewNop(), fields, "localhost")
		assert.ErrorContains(t, err, "migration step create_extension_uuid_ossp failed")
	})
}
