// Package storagetest поднимает схему в тестовой базе для интеграционных тестов репозиториев.
// Тесты запускаются, только если задан TEST_DATABASE_URL.
package storagetest

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/migrations"
	"github.com/m04kA/SMC-ClinicService/pkg/logger"
)

// EnvDatabaseURL переменная окружения с DSN тестовой базы
const EnvDatabaseURL = "TEST_DATABASE_URL"

// Open подключается к тестовой базе, применяет миграции и очищает таблицы.
// Без TEST_DATABASE_URL тест пропускается
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s is not set", EnvDatabaseURL)
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.PingContext(ctx))

	_, err = migrations.NewMigrator(db, logger.NewNop()).Up(ctx)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "TRUNCATE notifications, appointments, services CASCADE")
	require.NoError(t, err)

	return db
}
