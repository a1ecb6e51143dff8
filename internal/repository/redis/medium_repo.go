package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-onboarding-wizard/internal/domain"

	"github.com/redis/go-redis/v9"
)

type mediumRepo struct {
	client *redis.Client
}

// NewMediumRepository stores snapshots as plain Redis strings. A nil client
// yields a medium that is permanently unavailable.
func NewMediumRepository(client *redis.Client) domain.StorageMedium {
	return &mediumRepo{client: client}
}

func (r *mediumRepo) Available(ctx context.Context) bool {
	if r.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return r.client.Ping(ctx).Err() == nil
}

func (r *mediumRepo) Get(ctx context.Context, key string) (string, bool, error) {
	if r.client == nil {
		return "", false, domain.ErrMediumUnavailable
	}
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, true, nil
}

func (r *mediumRepo) Set(ctx context.Context, key, value string) error {
	if r.client == nil {
		return domain.ErrMediumUnavailable
	}
	// Snapshots carry their own timestamp; no TTL so the store decides staleness
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		if isOutOfMemory(err) {
			return fmt.Errorf("failed to set %s: %w", key, domain.ErrQuotaExceeded)
		}
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (r *mediumRepo) Delete(ctx context.Context, key string) error {
	if r.client == nil {
		return domain.ErrMediumUnavailable
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (r *mediumRepo) Keys(ctx context.Context, prefix string) ([]string, error) {
	if r.client == nil {
		return nil, domain.ErrMediumUnavailable
	}

	var keys []string
	iter := r.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s*: %w", prefix, err)
	}
	sort.Strings(keys)
	return keys, nil
}

// isOutOfMemory matches the reply Redis sends when maxmemory is reached
func isOutOfMemory(err error) bool {
	return strings.HasPrefix(err.Error(), "OOM")
}
