package usecase_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/internal/repository/memory"
	"go-onboarding-wizard/internal/usecase"
	"go-onboarding-wizard/pkg/audit"
	"go-onboarding-wizard/pkg/clock"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// testNow is a Wednesday
var testNow = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

const testFormID = "employee-onboarding"

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func personalInfoPayload() map[string]interface{} {
	return map[string]interface{}{
		"fullName":    "Jane Doe",
		"email":       "jane@example.com",
		"phoneNumber": "+1-555-123-4567",
		"dateOfBirth": "1990-06-01",
	}
}

func jobDetailsPayload() map[string]interface{} {
	return map[string]interface{}{
		"department":        "Engineering",
		"positionTitle":     "Backend Engineer",
		"startDate":         "2025-01-20",
		"jobType":           "Full-time",
		"salaryExpectation": 85000,
		"managerId":         "eng-1",
	}
}

func skillsPayload() map[string]interface{} {
	return map[string]interface{}{
		"primarySkills":        []string{"Go", "SQL", "Docker"},
		"skillExperience":      map[string]float64{"Go": 4},
		"workingHoursStart":    "09:00",
		"workingHoursEnd":      "17:00",
		"remoteWorkPreference": 40,
	}
}

func emergencyContactPayload() map[string]interface{} {
	return map[string]interface{}{
		"contactName":  "John Doe",
		"relationship": "Spouse",
		"phoneNumber":  "+1-555-987-6543",
	}
}

func reviewPayload() map[string]interface{} {
	return map[string]interface{}{"confirmationChecked": true}
}

func stepPayloads() []map[string]interface{} {
	return []map[string]interface{}{
		personalInfoPayload(),
		jobDetailsPayload(),
		skillsPayload(),
		emergencyContactPayload(),
		reviewPayload(),
	}
}

func newSchema(clk clock.Clock) domain.SchemaUsecase {
	return usecase.NewSchemaUsecase(usecase.NewValidator(clk), memory.NewDirectory(), clk)
}

func newObservedAudit() (*audit.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return audit.New(zap.New(core), "onboarding", "test"), logs
}

// auditEvents lists the event names recorded so far
func auditEvents(logs *observer.ObservedLogs) []string {
	var out []string
	for _, e := range logs.All() {
		out = append(out, e.Message)
	}
	return out
}

// countingMedium counts writes on top of the in-memory medium
type countingMedium struct {
	*memory.Medium
	mu   sync.Mutex
	sets int
}

func newCountingMedium() *countingMedium {
	return &countingMedium{Medium: memory.NewMedium(0)}
}

func (m *countingMedium) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	m.sets++
	m.mu.Unlock()
	return m.Medium.Set(ctx, key, value)
}

func (m *countingMedium) Sets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

// MockSubmitter records final submissions
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, sub domain.Submission) error {
	return m.Called(ctx, sub).Error(0)
}

// MockBlobStore lets tests inject blob store failures
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Save(ctx context.Context, key string, blob domain.Blob) error {
	return m.Called(ctx, key, blob).Error(0)
}

func (m *MockBlobStore) Load(ctx context.Context, key string) (*domain.Blob, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blob), args.Error(1)
}

func (m *MockBlobStore) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
