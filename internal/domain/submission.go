package domain

import (
	"context"
	"time"
)

// Submission is the finalized onboarding record handed to sinks
type Submission struct {
	ID          string           `json:"id"`
	FormID      string           `json:"formId"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Record      OnboardingRecord `json:"record"`
	ManagerName string           `json:"managerName,omitempty"`
	// Compensation is the formatted salary expectation, e.g. "$85,000/year"
	Compensation string `json:"compensation,omitempty"`
}

// Submitter receives the final record. A returned error aborts final
// submission and leaves the wizard usable.
type Submitter interface {
	Submit(ctx context.Context, submission Submission) error
}
