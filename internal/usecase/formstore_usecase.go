package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/pkg/audit"
	"go-onboarding-wizard/pkg/clock"
	"go-onboarding-wizard/pkg/logger"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// SnapshotKeyPrefix namespaces form snapshots on the medium
	SnapshotKeyPrefix = "form_data_"
	// SnapshotVersion is written into every envelope; other versions are discarded
	SnapshotVersion = "1.0"
	// DefaultSnapshotMaxAge is the freshness window for snapshots
	DefaultSnapshotMaxAge = 7 * 24 * time.Hour
)

const envelopeSchemaJSON = `{
	"type": "object",
	"required": ["version", "timestamp", "data"],
	"properties": {
		"version": {"type": "string", "minLength": 1},
		"timestamp": {"type": "number"},
		"data": {"type": "object"}
	}
}`

var envelopeSchema = gojsonschema.NewStringLoader(envelopeSchemaJSON)

type envelope struct {
	Version   string          `json:"version"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// discard reasons reported to the audit log
const (
	reasonMalformed       = "malformed"
	reasonInvalidEnvelope = "invalid_envelope"
	reasonVersionMismatch = "version_mismatch"
	reasonStale           = "stale"
	reasonUndecodable     = "undecodable"
)

type formStore struct {
	medium domain.StorageMedium
	clock  clock.Clock
	maxAge time.Duration
	audit  *audit.Logger
	schema *gojsonschema.Schema

	mu       sync.Mutex
	degraded bool
}

func NewFormStore(medium domain.StorageMedium, clk clock.Clock, maxAge time.Duration, auditLog *audit.Logger) (domain.FormStore, error) {
	schema, err := gojsonschema.NewSchema(envelopeSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile envelope schema: %w", err)
	}
	if maxAge <= 0 {
		maxAge = DefaultSnapshotMaxAge
	}
	if auditLog == nil {
		auditLog = audit.Default()
	}
	return &formStore{
		medium: medium,
		clock:  clk,
		maxAge: maxAge,
		audit:  auditLog,
		schema: schema,
	}, nil
}

// SnapshotKey returns the medium key for formID
func SnapshotKey(formID string) string {
	return SnapshotKeyPrefix + formID
}

// Load hydrates dst from a fresh snapshot. Anything unusable is deleted and
// reported as absent.
func (s *formStore) Load(ctx context.Context, formID string, dst any) bool {
	if !s.medium.Available(ctx) {
		return false
	}

	key := SnapshotKey(formID)
	raw, found, err := s.medium.Get(ctx, key)
	if err != nil {
		logger.Log.Error("Failed to read snapshot", "key", key, "error", err)
		return false
	}
	if !found {
		return false
	}

	env, reason := s.parseEnvelope(raw)
	if reason == "" {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			reason = reasonUndecodable
		}
	}
	if reason != "" {
		s.discard(ctx, formID, key, reason)
		return false
	}
	return true
}

func (s *formStore) parseEnvelope(raw string) (envelope, string) {
	var env envelope
	result, err := s.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return env, reasonMalformed
	}
	if !result.Valid() {
		return env, reasonInvalidEnvelope
	}
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return env, reasonInvalidEnvelope
	}
	if env.Version != SnapshotVersion {
		return env, reasonVersionMismatch
	}
	if s.isStale(env.Timestamp) {
		return env, reasonStale
	}
	return env, ""
}

func (s *formStore) isStale(timestampMs int64) bool {
	return s.clock.Now().Sub(time.UnixMilli(timestampMs)) > s.maxAge
}

func (s *formStore) discard(ctx context.Context, formID, key, reason string) {
	if err := s.medium.Delete(ctx, key); err != nil {
		logger.Log.Error("Failed to delete discarded snapshot", "key", key, "error", err)
	}
	s.audit.Log(ctx, audit.Event{
		Event:   audit.EventSnapshotDiscarded,
		FormID:  formID,
		Details: map[string]interface{}{"reason": reason},
	})
}

// Save writes v inside a fresh envelope. A failed write triggers one purge
// of stale entries and one retry.
func (s *formStore) Save(ctx context.Context, formID string, v any) bool {
	if !s.medium.Available(ctx) {
		s.setDegraded(ctx, formID, true, domain.ErrMediumUnavailable)
		return false
	}

	data, err := json.Marshal(v)
	if err != nil {
		logger.Log.Error("Failed to encode form data", "form_id", formID, "error", err)
		return false
	}
	raw, err := json.Marshal(envelope{
		Version:   SnapshotVersion,
		Timestamp: s.clock.Now().UnixMilli(),
		Data:      data,
	})
	if err != nil {
		logger.Log.Error("Failed to encode snapshot envelope", "form_id", formID, "error", err)
		return false
	}

	key := SnapshotKey(formID)
	err = s.medium.Set(ctx, key, string(raw))
	if err != nil {
		logger.Log.Warn("Snapshot write failed, purging stale entries", "key", key, "error", err)
		if _, purgeErr := s.PurgeStale(ctx); purgeErr != nil {
			logger.Log.Error("Failed to purge stale snapshots", "error", purgeErr)
		}
		err = s.medium.Set(ctx, key, string(raw))
	}
	if err != nil {
		logger.Log.Error("Snapshot write failed after remediation", "key", key, "error", err)
		s.setDegraded(ctx, formID, true, err)
		return false
	}

	s.setDegraded(ctx, formID, false, nil)
	return true
}

func (s *formStore) setDegraded(ctx context.Context, formID string, degraded bool, cause error) {
	s.mu.Lock()
	changed := s.degraded != degraded
	s.degraded = degraded
	s.mu.Unlock()

	if !changed {
		return
	}
	if degraded {
		s.audit.Log(ctx, audit.Event{
			Event:   audit.EventStorageDegraded,
			FormID:  formID,
			Details: map[string]interface{}{"error": cause.Error()},
		})
		return
	}
	s.audit.Log(ctx, audit.Event{Event: audit.EventStorageRecovered, FormID: formID})
}

// Remove deletes the snapshot; failures are only logged
func (s *formStore) Remove(ctx context.Context, formID string) {
	key := SnapshotKey(formID)
	if err := s.medium.Delete(ctx, key); err != nil {
		logger.Log.Error("Failed to remove snapshot", "key", key, "error", err)
	}
}

// Usage sums key and value sizes of every namespaced entry
func (s *formStore) Usage(ctx context.Context) domain.StorageUsage {
	s.mu.Lock()
	degraded := s.degraded
	s.mu.Unlock()

	usage := domain.StorageUsage{}
	if !s.medium.Available(ctx) {
		return usage
	}
	usage.MediumAvailable = !degraded

	keys, err := s.medium.Keys(ctx, SnapshotKeyPrefix)
	if err != nil {
		logger.Log.Error("Failed to list snapshots", "error", err)
		usage.MediumAvailable = false
		return usage
	}
	for _, key := range keys {
		raw, found, err := s.medium.Get(ctx, key)
		if err != nil || !found {
			continue
		}
		usage.BytesUsed += int64(len(raw))
		usage.EntryCount++
	}
	return usage
}

// PurgeStale deletes namespaced entries that fail to parse or whose
// timestamp is older than the freshness window. Entries without a numeric
// timestamp are kept. Returns the number of entries deleted.
func (s *formStore) PurgeStale(ctx context.Context) (int, error) {
	keys, err := s.medium.Keys(ctx, SnapshotKeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list snapshots: %w", err)
	}

	removed := 0
	for _, key := range keys {
		raw, found, err := s.medium.Get(ctx, key)
		if err != nil || !found {
			continue
		}

		var stamp struct {
			Timestamp *float64 `json:"timestamp"`
		}
		remove := json.Unmarshal([]byte(raw), &stamp) != nil ||
			(stamp.Timestamp != nil && s.isStale(int64(*stamp.Timestamp)))
		if !remove {
			continue
		}

		if err := s.medium.Delete(ctx, key); err != nil {
			logger.Log.Error("Failed to purge snapshot", "key", key, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.audit.Log(ctx, audit.Event{
			Event:   audit.EventSnapshotPurged,
			Details: map[string]interface{}{"count": removed},
		})
	}
	return removed, nil
}
