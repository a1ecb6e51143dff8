package memory

import (
	"context"
	"sync"

	"go-onboarding-wizard/internal/domain"
)

type blobStore struct {
	mu    sync.RWMutex
	blobs map[string]domain.Blob
}

// NewBlobStore returns a process-local blob store
func NewBlobStore() domain.BlobStore {
	return &blobStore{blobs: make(map[string]domain.Blob)}
}

func (s *blobStore) Save(ctx context.Context, key string, blob domain.Blob) error {
	blob.Data = append([]byte(nil), blob.Data...)
	blob.Size = len(blob.Data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = blob
	return nil
}

func (s *blobStore) Load(ctx context.Context, key string) (*domain.Blob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, nil
	}
	blob.Data = append([]byte(nil), blob.Data...)
	return &blob, nil
}

func (s *blobStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}
