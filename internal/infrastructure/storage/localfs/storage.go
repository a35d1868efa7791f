package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

// Storage keeps artifacts on the local filesystem, one subdirectory per
// storage category. Keys use forward slashes regardless of platform.
type Storage struct {
	basePath string
}

func New(basePath string) (*Storage, error) {
	if basePath == "" {
		basePath = "./data/storage"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

func (s *Storage) Save(_ context.Context, key string, data io.Reader) error {
	full, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create category dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *Storage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	full, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

// List scans every category directory concurrently and returns all stored
// objects keyed as category/filename.
func (s *Storage) List(ctx context.Context) ([]domain.ObjectInfo, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("scan storage dir: %w", err)
	}

	group, ctx := errgroup.WithContext(ctx)
	results := make([][]domain.ObjectInfo, len(entries))
	for i, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		group.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			infos, err := s.listCategory(entry.Name())
			if err != nil {
				return err
			}
			results[i] = infos
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var objects []domain.ObjectInfo
	for _, infos := range results {
		objects = append(objects, infos...)
	}
	return objects, nil
}

func (s *Storage) listCategory(category string) ([]domain.ObjectInfo, error) {
	entries, err := os.ReadDir(filepath.Join(s.basePath, category))
	if err != nil {
		return nil, fmt.Errorf("scan category %s: %w", category, err)
	}

	infos := make([]domain.ObjectInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		infos = append(infos, domain.ObjectInfo{
			Key:     path.Join(category, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return infos, nil
}

// resolve maps a storage key onto the base directory. Rooted cleaning
// keeps ".." segments from escaping it.
func (s *Storage) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("empty storage key")
	}
	return filepath.Join(s.basePath, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
