package products

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

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `id, name, price, description, shop_name, image_url, image_key, owner_id`

func scanProduct(row interface{ Scan(dest ...any) error }) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.ShopName, &p.ImageURL, &p.ImageKey, &p.OwnerID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts p and fills in the generated id.
func (r *PostgresRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	query := `INSERT INTO products (name, price, description, shop_name, image_url, image_key, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Price, p.Description, p.ShopName, p.ImageURL, p.ImageKey, p.OwnerID,
	).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// List returns every product, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// Update applies the non-nil fields of patch and returns the stored row.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	query := `UPDATE products SET
			name = COALESCE($2, name),
			price = COALESCE($3, price),
			description = COALESCE($4, description),
			shop_name = COALESCE($5, shop_name),
			image_url = COALESCE($6, image_url),
			image_key = COALESCE($7, image_key)
		WHERE id = $1
		RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id,
		patch.Name, patch.Price, patch.Description, patch.ShopName, patch.ImageURL, patch.ImageKey,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
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
