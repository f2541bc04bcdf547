package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/beacon/internal/models"
)

// ErrReminderNotFound is returned when no reminder matches the given ID.
var ErrReminderNotFound = errors.New("reminder not found")

// AddReminder stores a new reminder and returns its ID.
func (r *Repository) AddReminder(ctx context.Context, name string, coords models.Coordinates) (int, error) {
	query := `
		INSERT INTO reminders (name, latitude, longitude)
		VALUES ($1, $2, $3)
		RETURNING id;
	`

	var id int
	if err := r.db.QueryRow(ctx, query, name, coords.Latitude, coords.Longitude).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert reminder: %w", err)
	}

	r.log.DebugContext(ctx, "Reminder stored", "ID", id, "name", name)

	return id, nil
}

// ListReminders returns every stored reminder ordered by ID.
func (r *Repository) ListReminders(ctx context.Context) ([]models.Reminder, error) {
	query := `
		SELECT id, name, latitude, longitude, alerted, created_at
		FROM reminders
		ORDER BY id ASC;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	reminders := []models.Reminder{}
	for rows.Next() {
		var rem models.Reminder
		if errScan := rows.Scan(
			&rem.ID, &rem.Name, &rem.Location.Latitude, &rem.Location.Longitude, &rem.Alerted, &rem.CreatedAt,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", errScan)
		}
		reminders = append(reminders, rem)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return reminders, nil
}

// MarkAlerted flags the reminder so it does not alert again until reset.
func (r *Repository) MarkAlerted(ctx context.Context, id int) error {
	query := `
		UPDATE reminders
		SET alerted = true
		WHERE id = $1;
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark reminder as alerted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", ErrReminderNotFound, id)
	}

	return nil
}

// ResetAlerts clears the alerted flag of every reminder.
func (r *Repository) ResetAlerts(ctx context.Context) error {
	query := `
		UPDATE reminders
		SET alerted = false
		WHERE alerted = true;
	`

	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to reset reminder alerts: %w", err)
	}

	r.log.DebugContext(ctx, "Reminder alerts reset", "count", tag.RowsAffected())

	return nil
}
