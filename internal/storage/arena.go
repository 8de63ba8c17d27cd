package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Arena hands out per-request working directories under a single root.
// Each pipeline run gets its own directory keyed by request id, so
// concurrent requests never share or clobber each other's files.
type Arena struct {
	root string
}

// RequestDir is the working directory for one pipeline run. Downloaded media
// and saved reference documents live here until the sweeper reclaims it.
type RequestDir struct {
	ID   uuid.UUID
	Path string
}

func NewArena(root string) (*Arena, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &Arena{root: root}, nil
}

func (a *Arena) Root() string {
	return a.root
}

// Acquire creates a fresh directory for a new request.
func (a *Arena) Acquire() (*RequestDir, error) {
	id := uuid.New()
	path := filepath.Join(a.root, id.String())
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create request directory: %w", err)
	}
	return &RequestDir{ID: id, Path: path}, nil
}

// Release removes a request directory immediately. Used on pipeline failure;
// successful runs keep their media for playback until the sweeper runs.
func (a *Arena) Release(d *RequestDir) {
	if d == nil {
		return
	}
	if err := os.RemoveAll(d.Path); err != nil {
		log.Printf("Failed to release request dir %s: %v", d.ID, err)
	}
}

// Sweep removes request directories older than ttl.
func (a *Arena) Sweep(ttl time.Duration) {
	entries, err := os.ReadDir(a.root)
	if err != nil {
		log.Printf("Arena sweep failed: %v", err)
		return
	}

	cutoff := time.Now().Add(-ttl)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := uuid.Parse(entry.Name()); err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(a.root, entry.Name())); err != nil {
			log.Printf("Arena sweep failed to remove %s: %v", entry.Name(), err)
		}
	}
}

// StartSweeper runs Sweep on a fixed interval until stop is closed.
func (a *Arena) StartSweeper(ttl time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(ttl / 2)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				a.Sweep(ttl)
			}
		}
	}()
}

// MediaURLPath maps an absolute file inside a request dir to the public
// playback path served by the router.
func MediaURLPath(d *RequestDir, absPath string) string {
	if absPath == "" {
		return ""
	}
	return "/media/" + d.ID.String() + "/" + filepath.Base(absPath)
}
