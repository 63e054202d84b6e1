package storage

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
)

type memoryObject struct {
	data        []byte
	contentType string
	metadata    map[string]string
}

// MemoryBlobStore keeps blobs in process memory. Used by tests.
type MemoryBlobStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{objects: map[string]memoryObject{}}
}

func (s *MemoryBlobStore) Put(_ context.Context, in PutInput) (string, error) {
	data, err := io.ReadAll(in.Reader)
	if err != nil {
		return "", err
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	metadata := make(map[string]string, len(in.Metadata))
	for k, v := range in.Metadata {
		metadata[k] = v
	}

	handle := uuid.NewString()
	s.mu.Lock()
	s.objects[handle] = memoryObject{data: data, contentType: contentType, metadata: metadata}
	s.mu.Unlock()
	return handle, nil
}

func (s *MemoryBlobStore) Get(_ context.Context, handle string) (*Object, error) {
	s.mu.RLock()
	obj, ok := s.objects[handle]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	return &Object{
		ContentType: obj.contentType,
		Size:        int64(len(obj.data)),
		Body:        io.NopCloser(bytes.NewReader(obj.data)),
	}, nil
}

// Len reports the number of stored blobs.
func (s *MemoryBlobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Metadata returns the metadata stored with a blob.
func (s *MemoryBlobStore) Metadata(handle string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects[handle].metadata
}
