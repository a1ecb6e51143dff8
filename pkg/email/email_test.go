package email

import (
	"errors"
	"net/smtp"
	"testing"

	"go-onboarding-wizard/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *EmailService {
	return NewEmailService(&config.Config{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "587",
		SMTPUsername: "noreply@example.com",
		SMTPPassword: "secret",
		HREmailTo:    "hr@example.com",
	})
}

func TestSendOnboardingEmail(t *testing.T) {
	data := OnboardingEmailData{
		SubmissionID:  "sub-1",
		FullName:      "Jane <Doe>",
		Email:         "jane@example.com",
		PositionTitle: "Engineer",
		Department:    "Engineering",
		Compensation:  "$85,000/year",
	}

	t.Run("sends to HR with escaped body", func(t *testing.T) {
		var gotAddr string
		var gotTo []string
		var gotMsg []byte
		svc := testService().WithSender(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotTo, gotMsg = addr, to, msg
			return nil
		})

		require.NoError(t, svc.SendOnboardingEmail(data))
		assert.Equal(t, "smtp.example.com:587", gotAddr)
		assert.Equal(t, []string{"hr@example.com"}, gotTo)
		assert.Contains(t, string(gotMsg), "Reply-To: jane@example.com")
		assert.Contains(t, string(gotMsg), "$85,000/year")
		assert.Contains(t, string(gotMsg), "Jane &lt;Doe&gt;")
	})

	t.Run("wraps transport errors", func(t *testing.T) {
		svc := testService().WithSender(func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection refused")
		})
		err := svc.SendOnboardingEmail(data)
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, testService().IsConfigured())
	assert.False(t, NewEmailService(&config.Config{}).IsConfigured())
}
