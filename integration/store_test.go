//go:build database

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/recruitready/compscore/internal/confstore"
	"github.com/recruitready/compscore/internal/iocache"
	"github.com/recruitready/compscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestStoresWithMySQL exercises the memo store and config store against a
// MySQL backend.
func TestStoresWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "compscore",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/compscore?parseTime=true", host, port.Port())

	exerciseMemoStore(t, schema.MySQLBackend, connStr)
	exerciseConfigStore(t, schema.MySQLBackend, connStr)
}

// TestStoresWithPostgres exercises the memo store and config store against a
// PostgreSQL backend.
func TestStoresWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	exerciseMemoStore(t, schema.PostgreSQLBackend, connStr)
	exerciseConfigStore(t, schema.PostgreSQLBackend, connStr)
}

// exerciseMemoStore runs a set/get/clear round trip against a live backend.
func exerciseMemoStore(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	t.Helper()

	store, err := iocache.NewMemoStore(backend, connStr)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	now := time.Now().Unix()
	require.NoError(t, store.Set("integration-key", []byte(`{"level":"competitive"}`), 1, now))

	value, version, ts, err := store.Get("integration-key")
	require.NoError(t, err)
	assert.Equal(t, `{"level":"competitive"}`, string(value))
	assert.Equal(t, 1, version)
	assert.Equal(t, now, ts)

	// Upsert replaces in place.
	require.NoError(t, store.Set("integration-key", []byte(`{"level":"promising"}`), 2, now+1))
	value, version, _, err = store.Get("integration-key")
	require.NoError(t, err)
	assert.Equal(t, `{"level":"promising"}`, string(value))
	assert.Equal(t, 2, version)

	impl := store.(*iocache.MemoStoreImpl)
	require.NoError(t, impl.Clear())
	_, _, _, err = store.Get("integration-key")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

// exerciseConfigStore runs a publish/get/history round trip against a live
// backend.
func exerciseConfigStore(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	t.Helper()
	ctx := context.Background()

	store, err := confstore.NewStore(backend, connStr)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	payload := func(version string) string {
		cfg := schema.DefaultConfig()
		cfg.Version = version
		doc, err := json.Marshal(cfg)
		require.NoError(t, err)
		return string(doc)
	}

	key := fmt.Sprintf("integration-%d", time.Now().UnixNano())

	_, found, err := store.GetContent(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = store.UpdateContent(ctx, key, payload("v1"), "ci", "first")
	require.NoError(t, err)
	_, err = store.UpdateContent(ctx, key, payload("v2"), "ci", "second")
	require.NoError(t, err)

	got, found, err := store.GetContent(ctx, key)
	require.NoError(t, err)
	require.True(t, found)

	var cfg schema.CompetitivenessConfig
	require.NoError(t, json.Unmarshal([]byte(got), &cfg))
	assert.Equal(t, "v2", cfg.Version)

	revisions, err := store.History(ctx, key, 10)
	require.NoError(t, err)
	require.Len(t, revisions, 2)
	assert.Equal(t, "second", revisions[0].Note)
	assert.Equal(t, "first", revisions[1].Note)
}
