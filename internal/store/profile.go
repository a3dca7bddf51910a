package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/HendryAvila/azimut/internal/identity"
	"github.com/HendryAvila/azimut/internal/journal"
)

// ProfileStore persists the optional goal profile of a partition as
// profile_<token>.json next to its journal.
type ProfileStore struct {
	root string
	opts options
}

// NewProfileStore creates a ProfileStore under root.
func NewProfileStore(root string, opts ...Option) *ProfileStore {
	return &ProfileStore{root: root, opts: buildOptions(opts)}
}

// Path returns the profile file of key.
func (ps *ProfileStore) Path(key identity.Key) string {
	return filepath.Join(ps.root, "profile_"+key.Token+".json")
}

// Load returns the saved profile, or nil when absent or unreadable.
func (ps *ProfileStore) Load(key identity.Key) *journal.Profile {
	if !key.Resolved() {
		return nil
	}
	data, err := os.ReadFile(ps.Path(key))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			ps.opts.log.WithField("partition", key.Token).WithError(err).Warn("profile unreadable, ignoring")
		}
		return nil
	}

	var p journal.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		ps.opts.log.WithField("partition", key.Token).WithError(err).Warn("profile malformed, ignoring")
		return nil
	}
	if err := p.Validate(); err != nil {
		ps.opts.log.WithField("partition", key.Token).WithError(err).Warn("profile invalid, ignoring")
		return nil
	}
	return &p
}

// Save validates and atomically writes the profile of key.
func (ps *ProfileStore) Save(key identity.Key, p journal.Profile) error {
	if !key.Resolved() {
		return ErrUnresolved
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}
	if err := writeFileAtomic(ps.Path(key), data); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}
