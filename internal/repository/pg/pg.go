package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

const (
	migrationsTable = "schema_migrations"
	schemaName      = "public"
	migrationsPath  = "./migrations"

	maxAttempts = 3
)

type Repository struct {
	db         *sql.DB
	classifier *PostgresErrorClassifier
	lg         *zap.SugaredLogger
}

func New(databaseURI string, lg *zap.SugaredLogger) (*Repository, error) {
	pool, err := pgxpool.New(context.Background(), databaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Repository{
		db:         db,
		classifier: NewPostgresErrorClassifier(),
		lg:         lg,
	}, nil
}

func migrateUp(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: migrationsTable,
		SchemaName:      schemaName,
	})
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+absPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) Shutdown() error {
	return r.db.Close()
}

// executeWithRetryConnection повторяет запрос только для ошибок, которые классификатор считает временными
func (r *Repository) executeWithRetryConnection(ctx context.Context, fn func(db *sql.DB) error) error {
	var err error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = fn(r.db)
		if err == nil {
			return nil
		}

		if r.classifier.Classify(err) != Retriable {
			return err
		}

		if attempt == maxAttempts-1 {
			break
		}

		if r.lg != nil {
			r.lg.Warnf("retriable database error (attempt %d): %v", attempt+1, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(getAttemptDelay(attempt)):
		}
	}

	return err
}

// getAttemptDelay - 1s, 3s, 5s, далее 5s
func getAttemptDelay(attempt int) time.Duration {
	delay := time.Duration(1+2*attempt) * time.Second
	if delay > 5*time.Second {
		return 5 * time.Second
	}
	return delay
}
