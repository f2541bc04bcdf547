package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/beacon/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of *pgxpool.Pool used by the repository.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	AddReminder(ctx context.Context, name string, coords models.Coordinates) (int, error)
	ListReminders(ctx context.Context) ([]models.Reminder, error)
	MarkAlerted(ctx context.Context, id int) error
	ResetAlerts(ctx context.Context) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
