package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/umkmhub/marketplace/internal/server/migrations"
	"github.com/umkmhub/marketplace/internal/server/repositories/customers"
	"github.com/umkmhub/marketplace/internal/server/repositories/products"
	"github.com/umkmhub/marketplace/internal/server/repositories/reviews"
	"github.com/umkmhub/marketplace/internal/server/repositories/trainings"
)

// PostgresRepositoryManager vends Postgres-backed repositories sharing one
// connection pool.
type PostgresRepositoryManager struct {
	db        *sql.DB
	products  *products.PostgresRepository
	trainings *trainings.PostgresRepository
	reviews   *reviews.PostgresRepository
	customers *customers.PostgresRepository
}

// NewPostgresRepositoryManager opens a pgx connection pool for dsn. The
// connection itself is established lazily.
func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return NewPostgresRepositoryManagerFromDB(db), nil
}

func NewPostgresRepositoryManagerFromDB(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{
		db:        db,
		products:  products.NewPostgresRepository(db),
		trainings: trainings.NewPostgresRepository(db),
		reviews:   reviews.NewPostgresRepository(db),
		customers: customers.NewPostgresRepository(db),
	}
}

func (m *PostgresRepositoryManager) Products() products.Repository   { return m.products }
func (m *PostgresRepositoryManager) Trainings() trainings.Repository { return m.trainings }
func (m *PostgresRepositoryManager) Reviews() reviews.Repository     { return m.reviews }
func (m *PostgresRepositoryManager) Customers() customers.Repository { return m.customers }

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded goose migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, ".")
}

func (m *PostgresRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *PostgresRepositoryManager) Close(_ context.Context) error {
	return m.db.Close()
}
