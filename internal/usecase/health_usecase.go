package usecase

import (
	"context"
	"time"

	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/pkg/logger"
)

// Pinger reports whether a backing service answers
type Pinger func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	store   domain.FormStore
	pingers map[string]Pinger
}

// NewHealthUsecase checks the form store plus every named dependency
func NewHealthUsecase(store domain.FormStore, pingers map[string]Pinger) HealthUsecase {
	return &healthUsecase{store: store, pingers: pingers}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result := map[string]string{
		"status":  "ok",
		"storage": "ok",
	}
	if !u.store.Usage(ctx).MediumAvailable {
		result["storage"] = "unavailable"
		result["status"] = "degraded"
	}
	for name, ping := range u.pingers {
		if err := ping(ctx); err != nil {
			logger.Log.Warn("Health check failed", "dependency", name, "error", err)
			result[name] = "unavailable"
			result["status"] = "degraded"
			continue
		}
		result[name] = "ok"
	}
	return result
}
