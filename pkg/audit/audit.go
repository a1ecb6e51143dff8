package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of onboarding audit event
type EventType string

const (
	EventStepCompleted       EventType = "step_completed"
	EventStepInvalidated     EventType = "step_invalidated"
	EventSnapshotDiscarded   EventType = "snapshot_discarded"
	EventSnapshotPurged      EventType = "snapshot_purged"
	EventStorageDegraded     EventType = "storage_degraded"
	EventStorageRecovered    EventType = "storage_recovered"
	EventSubmissionCompleted EventType = "submission_completed"
	EventSubmissionFailed    EventType = "submission_failed"
	EventFormCleared         EventType = "form_cleared"
	EventUploadRejected      EventType = "upload_rejected"
)

// eventLevels derives the log level from the event type
var eventLevels = map[EventType]zapcore.Level{
	EventStepCompleted:       zapcore.InfoLevel,
	EventSubmissionCompleted: zapcore.InfoLevel,
	EventFormCleared:         zapcore.InfoLevel,
	EventStorageRecovered:    zapcore.InfoLevel,
	EventSnapshotPurged:      zapcore.InfoLevel,
	EventStepInvalidated:     zapcore.WarnLevel,
	EventSnapshotDiscarded:   zapcore.WarnLevel,
	EventUploadRejected:      zapcore.WarnLevel,
	EventStorageDegraded:     zapcore.ErrorLevel,
	EventSubmissionFailed:    zapcore.ErrorLevel,
}

// Event is a single audit record
type Event struct {
	Timestamp time.Time              `json:"timestamp"`
	Event     EventType              `json:"event"`
	FormID    string                 `json:"form_id,omitempty"`
	Subject   string                 `json:"subject,omitempty"` // masked or hashed for PII
	RequestID string                 `json:"request_id,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Logger writes audit events through zap
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

// New wraps an existing zap logger
func New(zl *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{zapLogger: zl, serviceName: serviceName, environment: environment}
}

// Init builds the production audit logger and makes it the default.
// A disabled logger discards every event.
func Init(serviceName, environment string, enabled bool) *Logger {
	if !enabled {
		return setDefault(New(zap.NewNop(), serviceName, environment))
	}

	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zl, err := config.Build(zap.AddCaller())
	if err != nil {
		zl, _ = zap.NewProduction()
	}
	return setDefault(New(zl, serviceName, environment))
}

func setDefault(l *Logger) *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
	return l
}

// Default returns the process audit logger, a no-op one until Init is called
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultLogger == nil {
		return New(zap.NewNop(), "", "")
	}
	return defaultLogger
}

// Log writes the event at the level derived from its type
func (l *Logger) Log(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	level, ok := eventLevels[event.Event]
	if !ok {
		level = zapcore.WarnLevel
	}

	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(event.Event)),
		zap.Time("event_time", event.Timestamp),
	}
	if event.FormID != "" {
		fields = append(fields, zap.String("form_id", event.FormID))
	}
	if event.Subject != "" {
		fields = append(fields, zap.String("subject", event.Subject))
	}
	if event.RequestID == "" {
		event.RequestID = requestIDFrom(ctx)
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	l.zapLogger.Log(level, string(event.Event), fields...)
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

type requestIDKey struct{}

// WithRequestID tags ctx so events logged with it carry the request ID
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// MaskEmail masks an email address for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := -1
	for i, c := range email {
		if c == '@' {
			atIndex = i
			break
		}
	}
	if atIndex <= 1 {
		return "***" + email[1:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a short SHA256 digest of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}
