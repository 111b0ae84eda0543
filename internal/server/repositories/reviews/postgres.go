package reviews

import (
	"context"
	"fmt"

	"github.com/umkmhub/marketplace/internal/dbx"
	"github.com/umkmhub/marketplace/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rv *models.Review) (*models.Review, error) {
	query := `INSERT INTO reviews (product_id, user_id, user_name, rating, comment)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, rv.ProductID, rv.UserID, rv.UserName, rv.Rating, rv.Comment).
		Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rv, nil
}

func (r *PostgresRepository) ListByProduct(ctx context.Context, productID string) ([]*models.Review, error) {
	query := `SELECT id, product_id, user_id, user_name, rating, comment, created_at
		FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Review, 0)
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
