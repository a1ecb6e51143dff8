package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "employee-onboarding", cfg.FormID)
	assert.Equal(t, 500*time.Millisecond, cfg.AutosaveDebounce)
	assert.Equal(t, 30*time.Second, cfg.AutosaveInterval)
	assert.Equal(t, 7*24*time.Hour, cfg.SnapshotMaxAge)
	assert.Equal(t, time.Second, cfg.CleanupGraceDelay)
	assert.Equal(t, "onboarding/employee-onboarding", cfg.S3KeyPrefix)
	assert.Equal(t, time.UTC, cfg.Timezone)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, 10, cfg.UploadRateLimitPerMinute)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("FORM_ID", "jane")
	t.Setenv("AUTOSAVE_DEBOUNCE", "250ms")
	t.Setenv("SUBMISSION_SINKS", " log, XLSX ,")
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("UPSTASH_REDIS_URL", "redis://localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "jane", cfg.FormID)
	assert.Equal(t, 250*time.Millisecond, cfg.AutosaveDebounce)
	assert.Equal(t, []string{SinkLog, SinkXLSX}, cfg.SubmissionSinks)
	assert.Equal(t, DriverRedis, cfg.StorageDriver)
	assert.False(t, cfg.UsesPostgres())
}

func TestLoadConfigRejectsInvalidSettings(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown storage driver":      {"STORAGE_DRIVER": "floppy"},
		"postgres without DSN":        {"STORAGE_DRIVER": "postgres", "DATABASE_URL": ""},
		"redis without URL":           {"STORAGE_DRIVER": "redis", "UPSTASH_REDIS_URL": ""},
		"s3 without bucket":           {"BLOB_DRIVER": "s3", "S3_BUCKET": ""},
		"unknown sink":                {"SUBMISSION_SINKS": "fax"},
		"bad timezone":                {"TIMEZONE": "Mars/Olympus"},
		"postgres directory sans DSN": {"DIRECTORY_DRIVER": "postgres", "DATABASE_URL": ""},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("TIMEZONE", "UTC")
			t.Setenv("STORAGE_DRIVER", "memory")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
