package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go-onboarding-wizard/internal/domain"
)

// DefaultQuotaBytes mirrors the usual browser local storage allowance
const DefaultQuotaBytes = 5 * 1024 * 1024

// Medium is an in-process storage medium with a byte quota
type Medium struct {
	mu        sync.RWMutex
	data      map[string]string
	quota     int64
	used      int64
	available bool
}

// NewMedium creates an empty medium. quota <= 0 disables the limit.
func NewMedium(quota int64) *Medium {
	return &Medium{
		data:      make(map[string]string),
		quota:     quota,
		available: true,
	}
}

var _ domain.StorageMedium = (*Medium)(nil)

// SetAvailable simulates the medium being disabled (private browsing,
// policy) or coming back.
func (m *Medium) SetAvailable(available bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.available = available
}

func (m *Medium) Available(ctx context.Context) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.available
}

func (m *Medium) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.available {
		return "", false, domain.ErrMediumUnavailable
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Medium) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.available {
		return domain.ErrMediumUnavailable
	}

	next := m.used + entrySize(key, value)
	if old, ok := m.data[key]; ok {
		next -= entrySize(key, old)
	}
	if m.quota > 0 && next > m.quota {
		return domain.ErrQuotaExceeded
	}

	m.data[key] = value
	m.used = next
	return nil
}

func (m *Medium) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.available {
		return domain.ErrMediumUnavailable
	}
	if old, ok := m.data[key]; ok {
		m.used -= entrySize(key, old)
		delete(m.data, key)
	}
	return nil
}

func (m *Medium) Keys(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.available {
		return nil, domain.ErrMediumUnavailable
	}
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Used returns the bytes currently counted against the quota
func (m *Medium) Used() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.used
}

func entrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}
