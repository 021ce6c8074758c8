package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tradegate/backend/internal/domain/shared"
)

// newMockSeasonRepository creates a GormSeasonRepository with a mocked SQL connection
func newMockSeasonRepository(t *testing.T) (*GormSeasonRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSeasonRepository(gormDB), mock, mockDB
}

func seasonRows(id uuid.UUID, code, description string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "created_at", "updated_at", "code", "description", "season_notes"}).
		AddRow(id, now, now, code, description, "")
}

func TestGormSeasonRepository_FindByID(t *testing.T) {
	t.Run("finds existing season", func(t *testing.T) {
		repo, mock, mockDB := newMockSeasonRepository(t)
		defer mockDB.Close()

		seasonID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "seasons" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(seasonID, 1).
			WillReturnRows(seasonRows(seasonID, "1", "Live animals"))

		season, err := repo.FindByID(context.Background(), seasonID)

		assert.NoError(t, err)
		require.NotNil(t, season)
		assert.Equal(t, seasonID, season.ID)
		assert.Equal(t, "1", season.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing season", func(t *testing.T) {
		repo, mock, mockDB := newMockSeasonRepository(t)
		defer mockDB.Close()

		seasonID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "seasons" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(seasonID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		season, err := repo.FindByID(context.Background(), seasonID)

		assert.Nil(t, season)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSeasonRepository_FindByCode(t *testing.T) {
	t.Run("finds season by code", func(t *testing.T) {
		repo, mock, mockDB := newMockSeasonRepository(t)
		defer mockDB.Close()

		seasonID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "seasons" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("84", 1).
			WillReturnRows(seasonRows(seasonID, "84", "Machinery"))

		season, err := repo.FindByCode(context.Background(), "84")

		assert.NoError(t, err)
		require.NotNil(t, season)
		assert.Equal(t, "84", season.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown code", func(t *testing.T) {
		repo, mock, mockDB := newMockSeasonRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "seasons" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("99", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		season, err := repo.FindByCode(context.Background(), "99")

		assert.Nil(t, season)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormSeasonRepository_FindAll(t *testing.T) {
	t.Run("applies search and pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockSeasonRepository(t)
		defer mockDB.Close()

		rows := seasonRows(uuid.New(), "1", "Live animals")

		mock.ExpectQuery(`SELECT \* FROM "seasons" WHERE \(code ILIKE \$1 OR description ILIKE \$2\) ORDER BY code ASC LIMIT .* OFFSET .*`).
			WithArgs("%animal%", "%animal%", 10, 10).
			WillReturnRows(rows)

		filter := shared.Filter{Search: "animal", Page: 2, PageSize: 10}
		seasons, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, seasons, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSeasonRepository_Delete(t *testing.T) {
	t.Run("deletes existing season", func(t *testing.T) {
		repo, mock, mockDB := newMockSeasonRepository(t)
		defer mockDB.Close()

		seasonID := uuid.New()

		mock.ExpectExec(`DELETE FROM "seasons" WHERE id = \$1`).
			WithArgs(seasonID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), seasonID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockSeasonRepository(t)
		defer mockDB.Close()

		seasonID := uuid.New()

		mock.ExpectExec(`DELETE FROM "seasons" WHERE id = \$1`).
			WithArgs(seasonID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), seasonID)

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormSeasonRepository_Count(t *testing.T) {
	t.Run("counts matching seasons", func(t *testing.T) {
		repo, mock, mockDB := newMockSeasonRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "seasons"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))

		count, err := repo.Count(context.Background(), shared.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(21), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
