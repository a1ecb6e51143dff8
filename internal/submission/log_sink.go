package submission

import (
	"context"

	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/pkg/audit"
	"go-onboarding-wizard/pkg/logger"
)

// LogSink writes a one-line summary of each submission to the application log
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Submit(ctx context.Context, sub domain.Submission) error {
	attrs := []any{
		"submission_id", sub.ID,
		"form_id", sub.FormID,
		"submitted_at", sub.SubmittedAt,
	}
	if pi := sub.Record.PersonalInfo; pi != nil {
		attrs = append(attrs, "employee", pi.FullName, "email", audit.MaskEmail(pi.Email))
	}
	if jd := sub.Record.JobDetails; jd != nil {
		attrs = append(attrs,
			"department", jd.Department,
			"position", jd.PositionTitle,
			"start_date", jd.StartDate,
			"manager", sub.ManagerName,
		)
	}
	logger.Log.Info("Onboarding submitted", attrs...)
	return nil
}
