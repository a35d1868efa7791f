package memstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

type object struct {
	data    []byte
	modTime time.Time
}

// Store is an in-memory object store for tests and dry runs.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object
	now     func() time.Time
}

func New() *Store {
	return &Store{objects: make(map[string]object), now: time.Now}
}

func (s *Store) Save(_ context.Context, key string, data io.Reader) error {
	raw, err := io.ReadAll(data)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = object{data: raw, modTime: s.now()}
	return nil
}

func (s *Store) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (s *Store) List(_ context.Context) ([]domain.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]domain.ObjectInfo, 0, len(s.objects))
	for key, obj := range s.objects {
		infos = append(infos, domain.ObjectInfo{
			Key:     key,
			Size:    int64(len(obj.data)),
			ModTime: obj.modTime,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

// Bytes returns a copy of a stored object's contents.
func (s *Store) Bytes(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), obj.data...), true
}
