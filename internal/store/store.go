// Package store persists journals, one document per partition.
//
// Every backend follows the same contract:
//   - Load never fails: a missing, unreadable or malformed journal is an
//     empty log (logged and counted, never returned as an error).
//   - Save replaces the whole log; readers never observe a partial write.
//   - Append is a full read-modify-write (Load, append, Save). Two writers
//     that both load before either saves race, and the later save wins.
//     This is a known property of the single-writer design.
//   - Only write failures propagate.
//
// Unresolved identity keys never touch disk: Load returns an empty log
// and Save fails with ErrUnresolved. Session-only logs live in
// MemoryStore instead.
package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/HendryAvila/azimut/internal/identity"
	"github.com/HendryAvila/azimut/internal/journal"
	"github.com/HendryAvila/azimut/internal/logging"
	"github.com/HendryAvila/azimut/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

const filePrefix = "journal_"

// ErrUnresolved is returned when a write is attempted without a
// resolved partition key.
var ErrUnresolved = errors.New("identity unresolved: persistence disabled")

// Store defines the persistence interface for partition journals.
type Store interface {
	Load(key identity.Key) []journal.Entry
	Save(key identity.Key, entries []journal.Entry) error
	Append(key identity.Key, entry journal.Entry) error
	Clear(key identity.Key) error
}

// Option configures a backend.
type Option func(*options)

type options struct {
	log     logrus.FieldLogger
	metrics *metrics.Metrics
}

// WithLogger sets the logger used to report recovered conditions.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics sets the counters updated on load and save.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	o.log = logging.OrDiscard(o.log)
	return o
}

// Open returns the backend named by backend, rooted at root.
func Open(backend, root string, opts ...Option) (Store, error) {
	switch backend {
	case "", BackendJSON:
		return NewFileStore(root, opts...), nil
	case BackendSQLite:
		return NewSQLiteStore(root, opts...), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q: must be %s or %s", backend, BackendJSON, BackendSQLite)
	}
}

// JournalPath returns the file holding the journal of key under root,
// using ext as the file extension (".json" or ".db").
func JournalPath(root string, key identity.Key, ext string) string {
	return filepath.Join(root, filePrefix+key.Token+ext)
}

// loadSaver is the part of a backend Append is built from.
type loadSaver interface {
	Load(key identity.Key) []journal.Entry
	Save(key identity.Key, entries []journal.Entry) error
}

// appendHooks lets tests interleave writers between the read and the
// write of a read-modify-write cycle.
type appendHooks struct {
	afterLoad func(key identity.Key)
}

// readModifyWrite implements Append for every durable backend.
func readModifyWrite(s loadSaver, hooks appendHooks, key identity.Key, entry journal.Entry) error {
	if !key.Resolved() {
		return ErrUnresolved
	}
	entries := s.Load(key)
	if hooks.afterLoad != nil {
		hooks.afterLoad(key)
	}
	entries = append(entries, entry)
	return s.Save(key, entries)
}

func cloneEntries(entries []journal.Entry) []journal.Entry {
	out := make([]journal.Entry, len(entries))
	copy(out, entries)
	return out
}
