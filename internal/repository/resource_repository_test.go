package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/brgy-tracker-api/internal/models"
)

func newResourceRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

var seniorColumns = []string{
	"id", "first_name", "last_name", "middle_name", "birth_date", "gender", "address",
	"contact_number", "osca_id", "barangay", "is_active", "notes", "created_at", "updated_at",
}

func seniorRow(id int64, first, last string) []driver.Value {
	day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, first, last, nil, time.Date(1950, 5, 1, 0, 0, 0, 0, time.UTC), "F", "Purok 1",
		nil, nil, "San Isidro", true, nil, day, day,
	}
}

const seniorSelect = "SELECT id, first_name, last_name, middle_name, birth_date, gender, address, contact_number, osca_id, barangay, is_active, notes, created_at, updated_at FROM seniors"

func TestResourceRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newResourceRepoMock(t)
	defer cleanup()
	repo := NewResourceRepository[models.Senior](db, models.SeniorResource)

	input := models.SeniorCreate{
		FirstName: "Ana",
		LastName:  "Cruz",
		BirthDate: models.MustDate("1950-05-01"),
		Gender:    "F",
		Address:   "Purok 1",
		Barangay:  "San Isidro",
	}.WithDefaults()
	stamp := models.MustDate("2026-10-17")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO seniors (first_name, last_name, middle_name, birth_date, gender, address, contact_number, osca_id, barangay, is_active, notes, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id")).
		WithArgs("Ana", "Cruz", nil, "1950-05-01", "F", "Purok 1", nil, nil, "San Isidro", true, nil, "2026-10-17", "2026-10-17").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta(seniorSelect + " WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(seniorColumns).AddRow(seniorRow(1, "Ana", "Cruz")...))
	mock.ExpectCommit()

	created, err := repo.Insert(context.Background(), input, stamp)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "1950-05-01", created.BirthDate.String())
	assert.True(t, created.IsActive)
	assert.Nil(t, created.MiddleName)
	assert.Equal(t, "2026-10-17", created.CreatedAt.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceRepositoryInsertRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newResourceRepoMock(t)
	defer cleanup()
	repo := NewResourceRepository[models.Senior](db, models.SeniorResource)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO seniors").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := repo.Insert(context.Background(), models.SeniorCreate{}.WithDefaults(), models.MustDate("2026-10-17"))
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newResourceRepoMock(t)
	defer cleanup()
	repo := NewResourceRepository[models.Senior](db, models.SeniorResource)

	mock.ExpectQuery(regexp.QuoteMeta(seniorSelect + " WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestResourceRepositoryListAppliesFiltersAndPaging(t *testing.T) {
	db, mock, cleanup := newResourceRepoMock(t)
	defer cleanup()
	repo := NewResourceRepository[models.Senior](db, models.SeniorResource)

	mock.ExpectQuery(regexp.QuoteMeta(seniorSelect + " WHERE barangay = $1 AND is_active = $2 ORDER BY last_name ASC, first_name ASC, id ASC LIMIT 10 OFFSET 5")).
		WithArgs("San Isidro", true).
		WillReturnRows(sqlmock.NewRows(seniorColumns).
			AddRow(seniorRow(2, "Ben", "Abad")...).
			AddRow(seniorRow(1, "Ana", "Cruz")...))

	items, err := repo.List(context.Background(), models.ListFilter{
		Conditions: models.SeniorResource.Conditions(map[string]any{"is_active": true, "barangay": "San Isidro"}),
		Skip:       5,
		Limit:      10,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Abad", items[0].LastName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceRepositoryListEmptyIsNotNil(t *testing.T) {
	db, mock, cleanup := newResourceRepoMock(t)
	defer cleanup()
	repo := NewResourceRepository[models.Benefit](db, models.BenefitResource)

	mock.ExpectQuery(regexp.QuoteMeta("FROM benefits ORDER BY distribution_date DESC, id DESC LIMIT 100 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	items, err := repo.List(context.Background(), models.ListFilter{Limit: 100})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestResourceRepositoryCount(t *testing.T) {
	db, mock, cleanup := newResourceRepoMock(t)
	defer cleanup()
	repo := NewResourceRepository[models.Visit](db, models.VisitResource)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM visits WHERE status = $1")).
		WithArgs("scheduled").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	total, err := repo.Count(context.Background(), []models.Condition{{Column: "status", Value: "scheduled"}})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestResourceRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newResourceRepoMock(t)
	defer cleanup()
	repo := NewResourceRepository[models.Senior](db, models.SeniorResource)

	changes := models.SeniorUpdate{
		IsActive:   models.Some(false),
		MiddleName: models.Null[string](),
	}.Changes()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM seniors WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE seniors SET middle_name = $1, is_active = $2, updated_at = $3 WHERE id = $4")).
		WithArgs(nil, false, "2026-10-18", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	row := seniorRow(1, "Ana", "Cruz")
	row[10] = false
	mock.ExpectQuery(regexp.QuoteMeta(seniorSelect + " WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(seniorColumns).AddRow(row...))
	mock.ExpectCommit()

	updated, err := repo.Update(context.Background(), 1, changes, models.MustDate("2026-10-18"))
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceRepositoryUpdateEmptyOnlyStamps(t *testing.T) {
	db, mock, cleanup := newResourceRepoMock(t)
	defer cleanup()
	repo := NewResourceRepository[models.Senior](db, models.SeniorResource)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM seniors WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE seniors SET updated_at = $1 WHERE id = $2")).
		WithArgs("2026-10-18", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(seniorSelect + " WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(seniorColumns).AddRow(seniorRow(1, "Ana", "Cruz")...))
	mock.ExpectCommit()

	_, err := repo.Update(context.Background(), 1, models.Changes{}, models.MustDate("2026-10-18"))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceRepositoryUpdateMissing(t *testing.T) {
	db, mock, cleanup := newResourceRepoMock(t)
	defer cleanup()
	repo := NewResourceRepository[models.Senior](db, models.SeniorResource)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM seniors WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 9, models.Changes{}, models.MustDate("2026-10-18"))
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newResourceRepoMock(t)
	defer cleanup()
	repo := NewResourceRepository[models.AssistanceDrive](db, models.AssistanceDriveResource)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assistance_drives WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assistance_drives WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 4))
	assert.ErrorIs(t, repo.Delete(context.Background(), 4), sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
