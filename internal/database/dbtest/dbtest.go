// Package dbtest starts a throwaway PostgreSQL for integration tests.
package dbtest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"

	"github.com/emilythestrangee/roadmap-board/backend/internal/database"
)

var (
	once     sync.Once
	shared   database.Service
	startErr error
)

// New returns a migrated, empty database shared by the tests of one package.
// Tests are skipped in -short mode or when no container runtime is available.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	once.Do(func() {
		shared, startErr = start()
	})
	require.NoError(t, startErr)

	db := shared.GetDB()
	require.NoError(t, db.Exec("TRUNCATE users, posts, reactions, comments RESTART IDENTITY CASCADE").Error)
	return db
}

func start() (database.Service, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("roadmap"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	svc, err := database.Open(dsn, database.Options{LogLevel: "silent"})
	if err != nil {
		return nil, err
	}
	if err := svc.Migrate(); err != nil {
		return nil, err
	}
	return svc, nil
}
