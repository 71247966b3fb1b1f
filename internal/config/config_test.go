package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var configEnvVars = []string{
	"PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
	"SLOT_CAPACITY", "BOOKING_TIMEZONE",
}

func clearConfigEnv() {
	for _, env := range configEnvVars {
		os.Unsetenv(env)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearConfigEnv()

	cfg := Load()

	// Server defaults
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)

	// Database defaults
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "flavor_trail", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	// Redis defaults
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, "6379", cfg.Redis.Port)
	assert.Equal(t, 0, cfg.Redis.DB)

	// Booking defaults
	assert.Equal(t, 5, cfg.Booking.SlotCapacity)
	assert.Equal(t, "Asia/Tokyo", cfg.Booking.Timezone)
}

func TestLoad_CustomValues(t *testing.T) {
	clearConfigEnv()
	os.Setenv("PORT", "9090")
	os.Setenv("SERVER_READ_TIMEOUT", "60s")
	os.Setenv("DB_HOST", "db.example.com")
	os.Setenv("DB_NAME", "flavor_trail_test")
	os.Setenv("REDIS_HOST", "redis.example.com")
	os.Setenv("REDIS_DB", "1")
	os.Setenv("SLOT_CAPACITY", "10")
	os.Setenv("BOOKING_TIMEZONE", "America/New_York")
	defer clearConfigEnv()

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, "flavor_trail_test", cfg.Database.DBName)
	assert.Equal(t, "redis.example.com", cfg.Redis.Host)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, 10, cfg.Booking.SlotCapacity)
	assert.Equal(t, "America/New_York", cfg.Booking.Timezone)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearConfigEnv()
	os.Setenv("SLOT_CAPACITY", "five")
	os.Setenv("SERVER_READ_TIMEOUT", "soon")
	defer clearConfigEnv()

	cfg := Load()

	assert.Equal(t, 5, cfg.Booking.SlotCapacity)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: "5432", User: "postgres",
		Password: "secret", DBName: "flavor_trail", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=flavor_trail sslmode=disable",
		cfg.DSN(),
	)
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "localhost", Port: "6379"}
	assert.Equal(t, "localhost:6379", cfg.Addr())
}
