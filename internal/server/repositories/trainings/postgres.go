package trainings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/dbx"
	"github.com/umkmhub/marketplace/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const trainingColumns = `id, title, description, schedule, location, organizer, created_at`

func scanTraining(row interface{ Scan(dest ...any) error }) (*models.Training, error) {
	var t models.Training
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Schedule, &t.Location, &t.Organizer, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Training) (*models.Training, error) {
	query := `INSERT INTO trainings (title, description, schedule, location, organizer)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, t.Title, t.Description, t.Schedule, t.Location, t.Organizer).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Training, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+trainingColumns+` FROM trainings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Training, 0)
	for rows.Next() {
		t, err := scanTraining(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Training, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	t, err := scanTraining(r.db.QueryRowContext(ctx, `SELECT `+trainingColumns+` FROM trainings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.TrainingPatch) (*models.Training, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	query := `UPDATE trainings SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			schedule = COALESCE($4, schedule),
			location = COALESCE($5, location),
			organizer = COALESCE($6, organizer)
		WHERE id = $1
		RETURNING ` + trainingColumns

	t, err := scanTraining(r.db.QueryRowContext(ctx, query, id,
		patch.Title, patch.Description, patch.Schedule, patch.Location, patch.Organizer,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM trainings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
