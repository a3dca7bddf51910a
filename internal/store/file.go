package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/HendryAvila/azimut/internal/identity"
	"github.com/HendryAvila/azimut/internal/journal"
)

// documentVersion is written into every journal file.
const documentVersion = 1

// document is the on-disk shape of a journal file.
type document struct {
	Version int             `json:"version"`
	Entries []journal.Entry `json:"entries"`
}

// FileStore implements Store with one JSON document per partition.
type FileStore struct {
	root  string
	opts  options
	hooks appendHooks
}

// NewFileStore creates a filesystem-backed journal store under root.
// The directory is created on first save.
func NewFileStore(root string, opts ...Option) *FileStore {
	return &FileStore{root: root, opts: buildOptions(opts)}
}

// Root returns the storage root.
func (fs *FileStore) Root() string {
	return fs.root
}

// Path returns the journal file of key.
func (fs *FileStore) Path(key identity.Key) string {
	return JournalPath(fs.root, key, ".json")
}

// Load reads the full journal of key in append order. It never fails.
func (fs *FileStore) Load(key identity.Key) []journal.Entry {
	if !key.Resolved() {
		return []journal.Entry{}
	}

	log := fs.opts.log.WithField("partition", key.Token)
	data, err := os.ReadFile(fs.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fs.opts.metrics.ObserveLoad(BackendJSON, false)
			return []journal.Entry{}
		}
		log.WithError(err).Warn("journal unreadable, using empty log")
		fs.opts.metrics.ObserveLoad(BackendJSON, true)
		return []journal.Entry{}
	}

	entries, err := decodeJournal(data)
	if err != nil {
		log.WithError(err).Warn("journal malformed, using empty log")
		fs.opts.metrics.ObserveLoad(BackendJSON, true)
		return []journal.Entry{}
	}

	fs.opts.metrics.ObserveLoad(BackendJSON, false)
	return entries
}

// Save atomically replaces the journal of key with entries.
func (fs *FileStore) Save(key identity.Key, entries []journal.Entry) error {
	err := fs.save(key, entries)
	if !errors.Is(err, ErrUnresolved) {
		fs.opts.metrics.ObserveSave(BackendJSON, err)
	}
	return err
}

func (fs *FileStore) save(key identity.Key, entries []journal.Entry) error {
	if !key.Resolved() {
		return ErrUnresolved
	}
	if entries == nil {
		entries = []journal.Entry{}
	}

	data, err := json.MarshalIndent(document{Version: documentVersion, Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling journal: %w", err)
	}
	if err := writeFileAtomic(fs.Path(key), data); err != nil {
		return fmt.Errorf("saving journal: %w", err)
	}
	return nil
}

// Append loads, appends and saves. See the package doc for the race.
func (fs *FileStore) Append(key identity.Key, entry journal.Entry) error {
	return readModifyWrite(fs, fs.hooks, key, entry)
}

// Clear replaces the journal of key with an empty log.
func (fs *FileStore) Clear(key identity.Key) error {
	return fs.Save(key, nil)
}

// decodeJournal accepts the versioned document and, for journals written
// by hand or by older exports, a bare array of entries.
func decodeJournal(data []byte) ([]journal.Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty file")
	}

	if trimmed[0] == '[' {
		var entries []journal.Entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("parsing journal array: %w", err)
		}
		if entries == nil {
			entries = []journal.Entry{}
		}
		return entries, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parsing journal document: %w", err)
	}
	if doc.Version > documentVersion {
		return nil, fmt.Errorf("journal version %d is newer than supported %d", doc.Version, documentVersion)
	}
	if doc.Entries == nil {
		doc.Entries = []journal.Entry{}
	}
	return doc.Entries, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, creating the directory if needed.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating storage root: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }() // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
