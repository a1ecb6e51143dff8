package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"go-onboarding-wizard/config"
)

// SendFunc matches smtp.SendMail
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
	send      SendFunc
}

// OnboardingEmailData holds the data for the HR new-hire notification
type OnboardingEmailData struct {
	SubmissionID  string
	FullName      string
	Email         string
	PhoneNumber   string
	Department    string
	PositionTitle string
	StartDate     string
	JobType       string
	Compensation  string
	ManagerName   string
	SubmittedAt   string
}

// NewEmailService creates a new email service with Brevo SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPUsername, // Brevo uses login email as from address
		toEmail:   cfg.HREmailTo,
		send:      smtp.SendMail,
	}
}

// WithSender replaces the SMTP transport
func (s *EmailService) WithSender(send SendFunc) *EmailService {
	s.send = send
	return s
}

var onboardingTemplate = template.Must(template.New("onboarding").Parse(onboardingEmailTemplate))

// onboardingEmailTemplate is the HTML template for new-hire notifications
const onboardingEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Employee Onboarding</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .value { margin-top: 5px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Employee Onboarding</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">Employee:</div>
                <div class="value">{{.FullName}} ({{.Email}}, {{.PhoneNumber}})</div>
            </div>
            <div class="field">
                <div class="label">Position:</div>
                <div class="value">{{.PositionTitle}}, {{.Department}} ({{.JobType}})</div>
            </div>
            <div class="field">
                <div class="label">Start date:</div>
                <div class="value">{{.StartDate}}</div>
            </div>
            <div class="field">
                <div class="label">Compensation:</div>
                <div class="value">{{.Compensation}}</div>
            </div>
            <div class="field">
                <div class="label">Manager:</div>
                <div class="value">{{.ManagerName}}</div>
            </div>
        </div>
        <div class="footer">
            <p>Submission {{.SubmissionID}} received {{.SubmittedAt}}.</p>
        </div>
    </div>
</body>
</html>`

// RenderOnboardingEmail builds the MIME message for a new-hire notification
func (s *EmailService) RenderOnboardingEmail(data OnboardingEmailData) ([]byte, error) {
	var body bytes.Buffer
	if err := onboardingTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	subject := fmt.Sprintf("New hire: %s, %s", data.FullName, data.PositionTitle)

	return []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Reply-To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		s.toEmail,
		data.Email,
		subject,
		body.String(),
	)), nil
}

// SendOnboardingEmail notifies HR about a completed onboarding
func (s *EmailService) SendOnboardingEmail(data OnboardingEmailData) error {
	msg, err := s.RenderOnboardingEmail(data)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{s.toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}
