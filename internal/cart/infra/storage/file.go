// Package storage persists cart state as JSON files on local disk: one
// entry for the line items, one for the capped diagnostic event log.
// Writes are atomic (temp file + rename) but there is no cross-process
// locking; concurrent writers overwrite each other, last writer wins.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/geministore/storefront/internal/cart/domain"
)

const (
	cartFile   = "cart.json"
	eventsFile = "events.json"

	// Keep only the most recent entries.
	maxEvents = 100
)

type FileStore struct {
	dir string
	log *slog.Logger

	mu sync.Mutex
}

func NewFileStore(dir string, log *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &FileStore{dir: dir, log: log}, nil
}

// LoadCart reads the stored cart. Absent or malformed data hydrates as
// an empty cart; neither is fatal.
func (f *FileStore) LoadCart(ctx context.Context) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(filepath.Join(f.dir, cartFile))
	if os.IsNotExist(err) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("read cart: %w", err)
	}

	var c domain.Cart
	if err := json.Unmarshal(b, &c); err != nil {
		f.log.Warn("stored cart is malformed, treating as empty", slog.Any("err", err))
		return domain.Cart{}, nil
	}
	return c, nil
}

func (f *FileStore) SaveCart(ctx context.Context, c domain.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return f.writeAtomic(cartFile, b)
}

func (f *FileStore) AppendEvent(ctx context.Context, ev domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	events := f.readEventsLocked()
	events = append(events, ev)
	if len(events) > maxEvents {
		events = events[len(events)-maxEvents:]
	}

	b, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	return f.writeAtomic(eventsFile, b)
}

func (f *FileStore) Events(ctx context.Context) ([]domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readEventsLocked(), nil
}

func (f *FileStore) readEventsLocked() []domain.Event {
	b, err := os.ReadFile(filepath.Join(f.dir, eventsFile))
	if err != nil {
		if !os.IsNotExist(err) {
			f.log.Warn("event log unreadable", slog.Any("err", err))
		}
		return nil
	}

	var events []domain.Event
	if err := json.Unmarshal(b, &events); err != nil {
		f.log.Warn("event log is malformed, resetting", slog.Any("err", err))
		return nil
	}
	return events
}

// writeAtomic writes to a temp file in the same directory and renames it
// over the target so readers never observe a partial write.
func (f *FileStore) writeAtomic(name string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(f.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}
