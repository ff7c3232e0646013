package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	withEnv(t, map[string]string{
		"APPENV": "test", "APPPORT": "", "DB_DRIVER": "", "STORE_BACKEND": "",
		"CHANGE_FEED": "", "KAFKA_BROKERS": "", "KAFKA_TOPIC": "",
	}, func(t *testing.T) {
		ResetConfigForTest()
		defer ResetConfigForTest()

		cfg := LoadConfig()
		require.NotNil(t, cfg)
		assert.True(t, cfg.IsTest())
		assert.Equal(t, uint16(8080), cfg.AppPort)
		assert.Equal(t, "mysql", cfg.DBDriver)
		assert.Equal(t, "sql", cfg.StoreBackend)
		assert.Equal(t, "local", cfg.ChangeFeed)
		assert.Equal(t, "dentara-changes", cfg.KafkaTopic)
		assert.Empty(t, cfg.KafkaBrokers)
		assert.Same(t, cfg, LoadConfig())
	})
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	withEnv(t, map[string]string{
		"APPENV":        "production",
		"APPPORT":       "9000",
		"DB_DRIVER":     "postgres",
		"STORE_BACKEND": "firestore",
		"CHANGE_FEED":   "kafka",
		"KAFKA_BROKERS": "k1:9092, k2:9092,",
		"S3_BUCKET":     "dentara-reports",
	}, func(t *testing.T) {
		ResetConfigForTest()
		defer ResetConfigForTest()

		cfg := LoadConfig()
		assert.False(t, cfg.IsTest())
		assert.Equal(t, uint16(9000), cfg.AppPort)
		assert.Equal(t, "postgres", cfg.DBDriver)
		assert.Equal(t, "firestore", cfg.StoreBackend)
		assert.Equal(t, "kafka", cfg.ChangeFeed)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, "dentara-reports", cfg.S3Bucket)
	})
}

func TestConnectDatabase_TestEnvUsesSQLite(t *testing.T) {
	withEnv(t, map[string]string{"APPENV": "test"}, func(t *testing.T) {
		ResetConfigForTest()
		defer ResetConfigForTest()

		db, err := ConnectDatabase()
		require.NoError(t, err)
		require.NotNil(t, db)
		assert.Equal(t, "sqlite", db.Dialector.Name())
	})
}

func TestConnectDatabase_UnsupportedDriver(t *testing.T) {
	withEnv(t, map[string]string{"APPENV": "production", "DB_DRIVER": "oracle"}, func(t *testing.T) {
		ResetConfigForTest()
		defer ResetConfigForTest()

		_, err := ConnectDatabase()
		assert.Error(t, err)
	})
}

func TestConnectFirestore_RequiresProject(t *testing.T) {
	withEnv(t, map[string]string{"FIRESTORE_PROJECT": ""}, func(t *testing.T) {
		ResetConfigForTest()
		defer ResetConfigForTest()

		_, err := ConnectFirestore(t.Context())
		assert.Error(t, err)
	})
}
