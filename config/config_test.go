package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)
}

const validConfig = `
http:
  address: ":8080"
db:
  host: "localhost"
  port: 5432
  user: "feedback"
  password: "secret"
  dbname: "feedback"
  sslmode: "disable"
kafka:
  brokers:
    - "localhost:9092"
redis:
  address: "localhost:6379"
`

func TestLoad(t *testing.T) {
	t.Run("DefaultsApplied", func(t *testing.T) {
		writeConfig(t, validConfig)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
		assert.Equal(t, "comment-index", cfg.Kafka.IndexTopic)
		assert.Equal(t, 5*time.Minute, cfg.Redis.BundleTTL)
		assert.Equal(t, time.Minute, cfg.Indexer.Interval)
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		writeConfig(t, validConfig)
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
		t.Setenv("REDIS_BUNDLE_TTL", "120")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "db.internal", cfg.DB.Host)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, 2*time.Minute, cfg.Redis.BundleTTL)
	})

	t.Run("MissingHTTPAddress", func(t *testing.T) {
		writeConfig(t, `
db:
  host: "localhost"
  user: "feedback"
  dbname: "feedback"
kafka:
  brokers:
    - "localhost:9092"
redis:
  address: "localhost:6379"
`)

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestGetDBConnectionString(t *testing.T) {
	cfg := &Config{DB: DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "feedback",
		Password: "secret",
		DBName:   "feedback",
		SSLMode:  "disable",
	}}

	assert.Equal(t,
		"host=localhost port=5432 user=feedback password=secret dbname=feedback sslmode=disable",
		cfg.GetDBConnectionString(),
	)
}
