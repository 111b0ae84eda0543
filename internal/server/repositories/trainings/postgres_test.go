package trainings

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/server/models"
)

const trainingID = "0b6a3f1e-8d4c-4f6a-b2a1-5c9d7e3f2a10"

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_SetsIDAndServerTimestamp(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO trainings .* RETURNING id, created_at`).
		WithArgs("Pemasaran Digital", "Dasar media sosial", "1 Juni 2024", "Bandung", "Dinas Koperasi").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(trainingID, created))

	tr, err := repo.Create(context.Background(), &models.Training{
		Title:       "Pemasaran Digital",
		Description: "Dasar media sosial",
		Schedule:    "1 Juni 2024",
		Location:    "Bandung",
		Organizer:   "Dinas Koperasi",
	})
	require.NoError(t, err)
	assert.Equal(t, trainingID, tr.ID)
	assert.Equal(t, created, tr.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO trainings`).WillReturnError(errors.New("db is down"))

	_, err := repo.Create(context.Background(), &models.Training{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM trainings ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "schedule", "location", "organizer", "created_at"}).
			AddRow(trainingID, "Ekspor", "Dokumen ekspor", "Juli", "Surabaya", "Kemendag", now))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ekspor", list[0].Title)
}

func TestUpdate_OnlyGivenFields(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	loc := "Yogyakarta"
	mock.ExpectQuery(`UPDATE trainings SET .* WHERE id = \$1`).
		WithArgs(trainingID, nil, nil, nil, loc, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "schedule", "location", "organizer", "created_at"}).
			AddRow(trainingID, "Ekspor", "Dokumen ekspor", "Juli", loc, "Kemendag", time.Now()))

	tr, err := repo.Update(context.Background(), trainingID, models.TrainingPatch{Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "Yogyakarta", tr.Location)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE trainings`).WillReturnError(sql.ErrNoRows)

	title := "x"
	_, err := repo.Update(context.Background(), trainingID, models.TrainingPatch{Title: &title})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM trainings WHERE id = \$1`).
		WithArgs(trainingID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), trainingID), common.ErrorNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), "12"), common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
