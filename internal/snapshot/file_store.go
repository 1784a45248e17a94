package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultPrefix = "output_iteration_"

// FileStore publishes each snapshot as <dir>/<prefix><sequence>.txt. The body is written to a
// temporary file in the same directory and renamed into place, so a reader never observes a
// partially written snapshot.
type FileStore struct {
	Dir    string
	Prefix string
}

func NewFileStore(dir, prefix string) *FileStore {
	if dir == "" {
		dir = "."
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &FileStore{Dir: dir, Prefix: prefix}
}

func (s *FileStore) Path(sequence int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s%d.txt", s.Prefix, sequence))
}

func (s *FileStore) Publish(_ context.Context, snap Snapshot) (err error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, "."+s.Prefix+"*.tmp")
	if err != nil {
		return fmt.Errorf("create snapshot %d: %w", snap.Sequence, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err = Encode(tmp, snap); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot %d: %w", snap.Sequence, err)
	}
	// CreateTemp makes the file private; readers may run as another user
	if err = tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod snapshot %d: %w", snap.Sequence, err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync snapshot %d: %w", snap.Sequence, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot %d: %w", snap.Sequence, err)
	}
	if err = os.Rename(tmp.Name(), s.Path(snap.Sequence)); err != nil {
		return fmt.Errorf("publish snapshot %d: %w", snap.Sequence, err)
	}
	return nil
}

// Read decodes the snapshot with the given sequence number without removing it.
func (s *FileStore) Read(sequence int) (Snapshot, error) {
	f, err := os.Open(s.Path(sequence))
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, fmt.Errorf("%w: sequence %d", ErrNotFound, sequence)
	}
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()

	snap, err := Decode(f)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot %d: %w", sequence, err)
	}
	snap.Sequence = sequence
	return snap, nil
}

// Consume reads and then deletes a snapshot; each snapshot is handed out at most once.
func (s *FileStore) Consume(sequence int) (Snapshot, error) {
	snap, err := s.Read(sequence)
	if err != nil {
		return Snapshot{}, err
	}
	if err := os.Remove(s.Path(sequence)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, fmt.Errorf("delete snapshot %d: %w", sequence, err)
	}
	return snap, nil
}

// Await blocks until the snapshot with the given sequence number is published. A zero
// idleTimeout waits until ctx is done.
func (s *FileStore) Await(ctx context.Context, sequence int, idleTimeout time.Duration) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch snapshots: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.Dir, err)
	}

	path := filepath.Clean(s.Path(sequence))
	// the watch is in place, anything published from now on produces an event
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	var timeout <-chan time.Time
	if idleTimeout > 0 {
		timer := time.NewTimer(idleTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout:
			return fmt.Errorf("%w: sequence %d after %s", ErrNotFound, sequence, idleTimeout)
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("%w: watcher closed", ErrNotFound)
			}
			if filepath.Clean(event.Name) == path && (event.Has(fsnotify.Create) || event.Has(fsnotify.Write)) {
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("%w: watcher closed", ErrNotFound)
			}
			return fmt.Errorf("watch snapshots: %w", err)
		}
	}
}
