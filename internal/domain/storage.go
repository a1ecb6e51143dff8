package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrQuotaExceeded is returned by a medium that has no room for a write
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrMediumUnavailable is returned when the medium cannot be reached
	ErrMediumUnavailable = errors.New("storage medium unavailable")
)

// StorageMedium is a durable string key/value store. Get returns found=false
// for absent keys.
type StorageMedium interface {
	Available(ctx context.Context) bool
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// StorageUsage reports the namespaced footprint of the form store
type StorageUsage struct {
	BytesUsed       int64 `json:"bytesUsed"`
	EntryCount      int   `json:"entryCount"`
	MediumAvailable bool  `json:"mediumAvailable"`
}

// Blob is binary content held outside the JSON record
type Blob struct {
	Data        []byte    `json:"-"`
	ContentType string    `json:"contentType"`
	Filename    string    `json:"filename"`
	Size        int       `json:"size"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BlobStore keeps binary attachments by key. Load returns nil, nil when the
// key is absent; Remove of an absent key succeeds.
type BlobStore interface {
	Save(ctx context.Context, key string, blob Blob) error
	Load(ctx context.Context, key string) (*Blob, error)
	Remove(ctx context.Context, key string) error
}

// FormStore persists versioned, timestamped snapshots keyed by form ID
type FormStore interface {
	Load(ctx context.Context, formID string, dst any) bool
	Save(ctx context.Context, formID string, v any) bool
	Remove(ctx context.Context, formID string)
	Usage(ctx context.Context) StorageUsage
	PurgeStale(ctx context.Context) (int, error)
}
