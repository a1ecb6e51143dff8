package submission

import (
	"context"
	"fmt"

	"go-onboarding-wizard/config"
	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/pkg/email"

	"golang.org/x/sync/errgroup"
)

// Multi fans a submission out to several sinks concurrently. The first
// failing sink fails the whole submission.
type Multi []domain.Submitter

func (m Multi) Submit(ctx context.Context, sub domain.Submission) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, sink := range m {
		sink := sink
		g.Go(func() error {
			return sink.Submit(gctx, sub)
		})
	}
	return g.Wait()
}

// Build assembles the sinks named in SUBMISSION_SINKS
func Build(cfg *config.Config) (domain.Submitter, error) {
	var sinks Multi
	for _, name := range cfg.SubmissionSinks {
		switch name {
		case config.SinkLog:
			sinks = append(sinks, NewLogSink())
		case config.SinkXLSX:
			sinks = append(sinks, NewXLSXSink(cfg.ExportDir))
		case config.SinkEmail:
			sinks = append(sinks, NewEmailSink(email.NewEmailService(cfg)))
		default:
			return nil, fmt.Errorf("unknown submission sink %q", name)
		}
	}
	if len(sinks) == 0 {
		sinks = append(sinks, NewLogSink())
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return sinks, nil
}
