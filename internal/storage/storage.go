// Package storage persists synthesized audio artifacts. Artifacts are
// write-once: a filename already present is never overwritten, and nothing
// expires. The only invalidation is the bulk Clear used by the cache admin
// endpoint.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarthi-tvs/callagent/internal/models"
)

// PublicPathPrefix is where the API serves artifacts from. Twilio resolves
// these relative URLs against the webhook host, so both backends hand out
// the same path shape regardless of where the bytes live.
const PublicPathPrefix = "/static/audio_cache/"

// artifactPrefix marks files owned by the speech cache. Clear and Info only
// touch files carrying it.
const artifactPrefix = "speech_"

type Store interface {
	// Exists reports whether an artifact is already stored, returning its
	// playable reference on a hit.
	Exists(ctx context.Context, filename string) (string, bool)

	// Put stores an artifact and returns its playable reference.
	Put(ctx context.Context, filename string, data []byte) (string, error)

	// Get returns the raw audio bytes for a stored artifact.
	Get(ctx context.Context, filename string) ([]byte, error)

	// Clear removes every cached artifact and returns how many were removed.
	Clear(ctx context.Context) (int, error)

	// Info describes the cache contents.
	Info(ctx context.Context) (models.CacheInfo, error)
}

func publicRef(filename string) string {
	return PublicPathPrefix + filename
}

// FSStore keeps artifacts as plain files under a local directory. This is
// the default backend; it assumes the process serving the webhook also
// serves the audio.
type FSStore struct {
	dir string
}

var _ Store = (*FSStore)(nil)

func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) Exists(ctx context.Context, filename string) (string, bool) {
	if _, err := os.Stat(filepath.Join(s.dir, filename)); err != nil {
		return "", false
	}
	return publicRef(filename), true
}

func (s *FSStore) Put(ctx context.Context, filename string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	return publicRef(filename), nil
}

func (s *FSStore) Get(ctx context.Context, filename string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("audio file not found")
		}
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	return data, nil
}

func (s *FSStore) Clear(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), artifactPrefix) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
		removed++
	}

	return removed, nil
}

func (s *FSStore) Info(ctx context.Context) (models.CacheInfo, error) {
	info := models.CacheInfo{Files: []models.CacheFile{}}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return info, fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), artifactPrefix) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		info.Files = append(info.Files, models.CacheFile{Name: entry.Name(), Size: fi.Size()})
		info.TotalSize += fi.Size()
		info.Count++
	}

	return info, nil
}
