package submission

import (
	"context"

	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/pkg/email"
	"go-onboarding-wizard/pkg/logger"
)

// EmailSink notifies HR of each new hire. An unconfigured service skips the
// notification instead of failing the submission.
type EmailSink struct {
	service *email.EmailService
}

func NewEmailSink(service *email.EmailService) *EmailSink {
	return &EmailSink{service: service}
}

func (s *EmailSink) Submit(ctx context.Context, sub domain.Submission) error {
	if !s.service.IsConfigured() {
		logger.Log.Warn("Email service not configured, skipping onboarding notification", "submission_id", sub.ID)
		return nil
	}
	return s.service.SendOnboardingEmail(EmailData(sub))
}

// EmailData flattens a submission into the notification template fields
func EmailData(sub domain.Submission) email.OnboardingEmailData {
	data := email.OnboardingEmailData{
		SubmissionID: sub.ID,
		Compensation: sub.Compensation,
		ManagerName:  sub.ManagerName,
		SubmittedAt:  sub.SubmittedAt.Format("Jan 2, 2006 3:04 PM MST"),
	}
	if pi := sub.Record.PersonalInfo; pi != nil {
		data.FullName = pi.FullName
		data.Email = pi.Email
		data.PhoneNumber = pi.PhoneNumber
	}
	if jd := sub.Record.JobDetails; jd != nil {
		data.Department = string(jd.Department)
		data.PositionTitle = jd.PositionTitle
		data.StartDate = jd.StartDate
		data.JobType = string(jd.JobType)
	}
	return data
}
