package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/license-dashboard/internal/migrations"
	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateLicense вставляет лицензию напрямую, минуя репозиторий
func (f *TestDataFactory) CreateLicense(t *testing.T, vendor models.Vendor, product string,
	cost float64, usage int, status models.Status, createdAt time.Time) string {
	id := uuid.NewString()
	_, err := f.storage.DB.Exec(`INSERT INTO licenses
		(id, vendor, product, quantity, cost, renewal_date, status, usage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		id, string(vendor), product, 10, cost, createdAt.AddDate(1, 0, 0), string(status), usage, createdAt)
	require.NoError(t, err)
	return id
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyLicenseCount проверяет количество лицензий с указанным ID
func (v *TestVerification) VerifyLicenseCount(t *testing.T, id string, expected int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM licenses WHERE id = $1", id).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, expected, count)
}

// sampleLicense возвращает заполненную лицензию с новым ID
func sampleLicense() models.License {
	return models.License{
		ID:          uuid.NewString(),
		Vendor:      models.VendorMicrosoft,
		Product:     "Microsoft 365 E5",
		Quantity:    500,
		Cost:        45000,
		RenewalDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:      models.StatusActive,
		Usage:       92,
		Notes:       "enterprise agreement",
	}
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL и применяет миграции
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	const pgPort = nat.Port("5432/tcp")
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{string(pgPort)},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(pgPort),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(3 * time.Minute),
	}

	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start container")

	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err, "failed to get host")
	port, err := postgresContainer.MappedPort(ctx, pgPort)
	require.NoError(t, err, "failed to get port")

	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		_ = storage.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}
