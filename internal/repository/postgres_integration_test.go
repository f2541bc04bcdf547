//go:build integration

package repository_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/beacon/internal/models"
	"github.com/UnknownOlympus/beacon/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRepository_Integration(t *testing.T) {
	ctx := t.Context()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("beacon"),
		postgres.WithUsername("beacon"),
		postgres.WithPassword("beacon"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, testcontainers.TerminateContainer(container))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	pool, err := repository.NewDatabase(ctx, host, port.Port(), "beacon", "beacon", "beacon")
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := repository.NewRepository(pool, slog.Default())
	require.NoError(t, repo.Migrate(ctx))

	id, err := repo.AddReminder(ctx, "Andipatti, Tamil Nadu", models.Coordinates{Latitude: 9.9988, Longitude: 77.6210})
	require.NoError(t, err)

	require.NoError(t, repo.MarkAlerted(ctx, id))
	require.ErrorIs(t, repo.MarkAlerted(ctx, id+100), repository.ErrReminderNotFound)

	reminders, err := repo.ListReminders(ctx)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.True(t, reminders[0].Alerted)
	assert.InEpsilon(t, 9.9988, reminders[0].Location.Latitude, 0.0001)

	require.NoError(t, repo.ResetAlerts(ctx))

	reminders, err = repo.ListReminders(ctx)
	require.NoError(t, err)
	assert.False(t, reminders[0].Alerted)
}
