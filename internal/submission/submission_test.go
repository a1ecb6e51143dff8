package submission

import (
	"bytes"
	"context"
	"errors"
	"net/smtp"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-onboarding-wizard/config"
	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, sub domain.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func sampleSubmission() domain.Submission {
	approved := true
	return domain.Submission{
		ID:          "sub-123",
		FormID:      "employee-onboarding",
		SubmittedAt: time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
		Record: domain.OnboardingRecord{
			PersonalInfo: &domain.PersonalInfo{
				FullName:    "José Núñez",
				Email:       "jose@example.com",
				PhoneNumber: "+1-555-123-4567",
				DateOfBirth: "1990-04-12",
			},
			JobDetails: &domain.JobDetails{
				Department:        domain.DepartmentEngineering,
				PositionTitle:     "Backend Engineer",
				StartDate:         "2025-02-03",
				JobType:           domain.JobTypeFullTime,
				SalaryExpectation: 85000,
				ManagerID:         "eng-1",
			},
			Skills: &domain.Skills{
				PrimarySkills:        []string{"Go", "SQL", "Docker"},
				SkillExperience:      map[string]float64{"Go": 4, "SQL": 6},
				WorkingHoursStart:    "09:00",
				WorkingHoursEnd:      "17:00",
				RemoteWorkPreference: 60,
				ManagerApproved:      &approved,
			},
			EmergencyContact: &domain.EmergencyContact{
				ContactName:  "Maria Núñez",
				Relationship: domain.RelationshipSpouse,
				PhoneNumber:  "+1-555-987-6543",
			},
			Review: &domain.Review{ConfirmationChecked: true},
		},
		ManagerName:  "Alice Chen",
		Compensation: "$85,000/year",
	}
}

func TestFilename(t *testing.T) {
	t.Run("uses slugged employee name and submission time", func(t *testing.T) {
		assert.Equal(t, "onboarding-jose-nunez-20250115-093000.xlsx", Filename(sampleSubmission()))
	})

	t.Run("falls back when personal info is missing", func(t *testing.T) {
		sub := sampleSubmission()
		sub.Record.PersonalInfo = nil
		assert.Equal(t, "onboarding-employee-20250115-093000.xlsx", Filename(sub))
	})
}

func TestXLSXSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sink := NewXLSXSink(dir)
	sub := sampleSubmission()

	require.NoError(t, sink.Submit(context.Background(), sub))

	data, err := os.ReadFile(filepath.Join(dir, Filename(sub)))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	t.Run("summary sheet lists field value pairs", func(t *testing.T) {
		rows, err := f.GetRows(summarySheet)
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		assert.Equal(t, []string{"Field", "Value"}, rows[0])

		values := map[string]string{}
		for _, row := range rows[1:] {
			if len(row) == 2 {
				values[row[0]] = row[1]
			}
		}
		assert.Equal(t, "sub-123", values["Submission ID"])
		assert.Equal(t, "José Núñez", values["Full Name"])
		assert.Equal(t, "$85,000/year", values["Annual Salary"])
		assert.Equal(t, "Alice Chen", values["Manager"])
		assert.Equal(t, "60%", values["Remote Work Preference"])
		assert.Equal(t, "Yes", values["Manager Approved"])
		assert.NotContains(t, values, "Guardian")
	})

	t.Run("skills sheet keeps selection order", func(t *testing.T) {
		rows, err := f.GetRows(skillsSheet)
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, []string{"Go", "4"}, rows[1])
		assert.Equal(t, []string{"SQL", "6"}, rows[2])
		assert.Equal(t, "Docker", rows[3][0])
	})
}

func TestXLSXSinkUnwritableDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	err := NewXLSXSink(file).Submit(context.Background(), sampleSubmission())
	assert.Error(t, err)
}

func TestEmailSink(t *testing.T) {
	cfg := &config.Config{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "587",
		SMTPUsername: "noreply@example.com",
		SMTPPassword: "secret",
		HREmailTo:    "hr@example.com",
	}

	t.Run("sends flattened submission", func(t *testing.T) {
		var msg []byte
		svc := email.NewEmailService(cfg).WithSender(func(_ string, _ smtp.Auth, _ string, _ []string, m []byte) error {
			msg = m
			return nil
		})
		require.NoError(t, NewEmailSink(svc).Submit(context.Background(), sampleSubmission()))
		assert.Contains(t, string(msg), "Backend Engineer")
		assert.Contains(t, string(msg), "Alice Chen")
		assert.Contains(t, string(msg), "sub-123")
	})

	t.Run("transport failure fails the submission", func(t *testing.T) {
		svc := email.NewEmailService(cfg).WithSender(func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection refused")
		})
		err := NewEmailSink(svc).Submit(context.Background(), sampleSubmission())
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("unconfigured service is skipped", func(t *testing.T) {
		called := false
		svc := email.NewEmailService(&config.Config{}).WithSender(func(string, smtp.Auth, string, []string, []byte) error {
			called = true
			return nil
		})
		require.NoError(t, NewEmailSink(svc).Submit(context.Background(), sampleSubmission()))
		assert.False(t, called)
	})
}

func TestEmailData(t *testing.T) {
	data := EmailData(sampleSubmission())
	assert.Equal(t, "José Núñez", data.FullName)
	assert.Equal(t, "Engineering", data.Department)
	assert.Equal(t, "Full-time", data.JobType)
	assert.Equal(t, "Jan 15, 2025 9:30 AM UTC", data.SubmittedAt)
}

func TestMulti(t *testing.T) {
	sub := sampleSubmission()

	t.Run("calls every sink", func(t *testing.T) {
		a, b := new(MockSubmitter), new(MockSubmitter)
		a.On("Submit", mock.Anything, sub).Return(nil)
		b.On("Submit", mock.Anything, sub).Return(nil)

		require.NoError(t, Multi{a, b}.Submit(context.Background(), sub))
		a.AssertExpectations(t)
		b.AssertExpectations(t)
	})

	t.Run("returns the sink error", func(t *testing.T) {
		a, b := new(MockSubmitter), new(MockSubmitter)
		a.On("Submit", mock.Anything, sub).Return(nil)
		b.On("Submit", mock.Anything, sub).Return(errors.New("disk full"))

		err := Multi{a, b}.Submit(context.Background(), sub)
		assert.EqualError(t, err, "disk full")
	})
}

func TestBuild(t *testing.T) {
	t.Run("single sink is returned directly", func(t *testing.T) {
		s, err := Build(&config.Config{SubmissionSinks: []string{config.SinkLog}})
		require.NoError(t, err)
		assert.IsType(t, &LogSink{}, s)
	})

	t.Run("several sinks are combined", func(t *testing.T) {
		s, err := Build(&config.Config{
			SubmissionSinks: []string{config.SinkLog, config.SinkXLSX, config.SinkEmail},
			ExportDir:       t.TempDir(),
		})
		require.NoError(t, err)
		require.IsType(t, Multi{}, s)
		assert.Len(t, s.(Multi), 3)
	})

	t.Run("unknown sink is rejected", func(t *testing.T) {
		_, err := Build(&config.Config{SubmissionSinks: []string{"fax"}})
		assert.Error(t, err)
	})
}
