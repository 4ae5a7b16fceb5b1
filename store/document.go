package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"
)

// documentFile wraps one persisted JSON document. Every read loads the
// whole file and every write rewrites it wholesale; an advisory flock
// guards the file against a second bot process sharing the data dir.
type documentFile struct {
	path string
	lock *flock.Flock
}

func newDocumentFile(path string) *documentFile {
	return &documentFile{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// load reads the document into v. A missing or corrupt file is treated
// as an empty document so a fresh data dir works without setup.
func (d *documentFile) load(v interface{}) error {
	if err := d.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", d.path, err)
	}
	defer d.unlock()

	raw, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", d.path, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		log.Warn().Err(err).Str("path", d.path).Msg("Document is not valid JSON, starting from an empty document")
	}
	return nil
}

// save rewrites the document atomically: marshal, write to a temp file
// in the same directory, rename over the original.
func (d *documentFile) save(v interface{}) error {
	if err := d.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", d.path, err)
	}
	defer d.unlock()

	raw, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", d.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, d.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", d.path, err)
	}
	return nil
}

func (d *documentFile) unlock() {
	if err := d.lock.Unlock(); err != nil {
		log.Error().Err(err).Str("path", d.path).Msg("Failed to release file lock")
	}
}
