package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-onboarding-wizard/pkg/logger"

	"github.com/joho/godotenv"
)

// Driver names accepted by the *_DRIVER variables
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverStatic   = "static"
	DriverS3       = "s3"
)

// Submission sink names accepted by SUBMISSION_SINKS
const (
	SinkLog   = "log"
	SinkXLSX  = "xlsx"
	SinkEmail = "email"
)

type Config struct {
	Port        string
	AppEnv      string
	LogLevel    string
	FrontendURL string
	// Rate limits per client IP per minute; 0 disables
	RateLimitPerMinute       int
	UploadRateLimitPerMinute int
	// Session
	FormID   string
	Timezone *time.Location
	// Storage medium
	StorageDriver     string
	StorageQuotaBytes int64
	DBUrl             string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Autosave timing
	AutosaveDebounce  time.Duration
	AutosaveInterval  time.Duration
	SnapshotMaxAge    time.Duration
	CleanupGraceDelay time.Duration
	// Collaborators
	DirectoryDriver string
	BlobDriver      string
	// S3/Wasabi Configuration
	S3Provider        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Bucket          string
	S3Endpoint        string
	S3KeyPrefix       string
	// Submission
	SubmissionSinks []string
	ExportDir       string
	// SMTP Configuration (Brevo)
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	HREmailTo    string
	// Audit Configuration
	AuditLog bool
}

func LoadConfig() (*Config, error) {
	// Load .env file; a missing file is fine outside local development
	_ = godotenv.Load()

	tzName := getEnv("TIMEZONE", "Local")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}

	formID := getEnv("FORM_ID", "employee-onboarding")

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Rate limits
		RateLimitPerMinute:       getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		UploadRateLimitPerMinute: getEnvInt("UPLOAD_RATE_LIMIT_PER_MINUTE", 10),
		FormID:                   formID,
		Timezone:                 loc,
		// Storage medium
		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
		StorageQuotaBytes: int64(getEnvInt("STORAGE_QUOTA_BYTES", 5*1024*1024)), // 5 MiB, the usual browser allowance
		DBUrl:             getEnv("DATABASE_URL", ""),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Autosave timing
		AutosaveDebounce:  getEnvDuration("AUTOSAVE_DEBOUNCE", 500*time.Millisecond),
		AutosaveInterval:  getEnvDuration("AUTOSAVE_INTERVAL", 30*time.Second),
		SnapshotMaxAge:    getEnvDuration("SNAPSHOT_MAX_AGE", 7*24*time.Hour),
		CleanupGraceDelay: getEnvDuration("CLEANUP_GRACE_DELAY", time.Second),
		// Collaborators
		DirectoryDriver: strings.ToLower(getEnv("DIRECTORY_DRIVER", DriverStatic)),
		BlobDriver:      strings.ToLower(getEnv("BLOB_DRIVER", DriverMemory)),
		// S3/Wasabi Configuration
		S3Provider:        strings.ToLower(getEnv("S3_PROVIDER", "aws")),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3KeyPrefix:       strings.Trim(getEnv("S3_KEY_PREFIX", "onboarding/"+formID), "/"),
		// Submission
		SubmissionSinks: getEnvList("SUBMISSION_SINKS", []string{SinkLog}),
		ExportDir:       getEnv("EXPORT_DIR", "exports"),
		// SMTP Configuration
		SMTPHost:     getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		HREmailTo:    getEnv("HR_EMAIL_TO", ""),
		// Audit Configuration
		AuditLog: getEnvBool("AUDIT_LOG", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects unknown drivers and drivers missing their connection settings
func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverMemory:
	case DriverRedis:
		if c.UpstashRedisURL == "" {
			return fmt.Errorf("STORAGE_DRIVER=redis requires UPSTASH_REDIS_URL")
		}
	case DriverPostgres:
		if c.DBUrl == "" {
			return fmt.Errorf("STORAGE_DRIVER=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.DirectoryDriver {
	case DriverStatic:
	case DriverPostgres:
		if c.DBUrl == "" {
			return fmt.Errorf("DIRECTORY_DRIVER=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown DIRECTORY_DRIVER %q", c.DirectoryDriver)
	}

	switch c.BlobDriver {
	case DriverMemory:
	case DriverS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("BLOB_DRIVER=s3 requires S3_BUCKET")
		}
	default:
		return fmt.Errorf("unknown BLOB_DRIVER %q", c.BlobDriver)
	}

	for _, sink := range c.SubmissionSinks {
		switch sink {
		case SinkLog, SinkXLSX:
		case SinkEmail:
			if c.HREmailTo == "" || c.SMTPUsername == "" {
				logger.Log.Warn("Email submission sink enabled without SMTP_USERNAME/HR_EMAIL_TO; notifications will be skipped")
			}
		default:
			return fmt.Errorf("unknown submission sink %q", sink)
		}
	}

	if c.AutosaveDebounce <= 0 || c.AutosaveInterval <= 0 {
		return fmt.Errorf("autosave durations must be positive")
	}
	return nil
}

// UsesPostgres reports whether any component needs DATABASE_URL
func (c *Config) UsesPostgres() bool {
	return c.StorageDriver == DriverPostgres || c.DirectoryDriver == DriverPostgres
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration parses a Go duration ("500ms", "30s", "168h") or fallback if not set/invalid
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blanks
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
