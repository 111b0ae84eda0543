package customers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/dbx"
	"github.com/umkmhub/marketplace/internal/server/models"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const customerColumns = `id, email, display_name, password_hash, created_at`

func getOne(ctx context.Context, q dbx.DBTX, where string, arg any) (*models.Customer, error) {
	var c models.Customer
	err := q.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE `+where, arg).
		Scan(&c.ID, &c.Email, &c.DisplayName, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &c, nil
}

func insert(ctx context.Context, q dbx.DBTX, c *models.Customer) error {
	err := q.QueryRowContext(ctx,
		`INSERT INTO customers (email, display_name, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at`,
		c.Email, c.DisplayName, c.PasswordHash,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func link(ctx context.Context, q dbx.DBTX, customerID string, ident models.FederatedIdentity) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO customer_identities (customer_id, provider, provider_user_id) VALUES ($1, $2, $3)`,
		customerID, ident.Provider, ident.ProviderUserID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	if err := insert(ctx, r.db, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return getOne(ctx, r.db, `LOWER(email) = LOWER($1)`, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	return getOne(ctx, r.db, `id = $1`, id)
}

// ResolveFederated finds, links or creates the account in one transaction.
func (r *PostgresRepository) ResolveFederated(ctx context.Context, ident models.FederatedIdentity) (*models.Customer, error) {
	var result *models.Customer

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var customerID string
		err := tx.QueryRowContext(ctx,
			`SELECT customer_id FROM customer_identities WHERE provider = $1 AND provider_user_id = $2`,
			ident.Provider, ident.ProviderUserID,
		).Scan(&customerID)
		switch {
		case err == nil:
			result, err = getOne(ctx, tx, `id = $1`, customerID)
			return err
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("db error: %w", err)
		}

		existing, err := getOne(ctx, tx, `LOWER(email) = LOWER($1)`, ident.Email)
		switch {
		case err == nil:
			result = existing
		case errors.Is(err, common.ErrorNotFound):
			c := &models.Customer{Email: ident.Email, DisplayName: ident.DisplayName}
			if err := insert(ctx, tx, c); err != nil {
				return err
			}
			result = c
		default:
			return err
		}

		return link(ctx, tx, result.ID, ident)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
