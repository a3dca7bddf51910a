package store

import (
	"time"

	"github.com/HendryAvila/azimut/internal/journal"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DefaultSessionTTL is how long an idle session-only log is kept.
const DefaultSessionTTL = 2 * time.Hour

// MemoryStore holds session-only journals for unresolved identities.
// Nothing here is durable: logs disappear after ttl without writes or
// when the process exits.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates a MemoryStore whose logs expire after ttl of
// inactivity. A non-positive ttl uses DefaultSessionTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &MemoryStore{cache: cache.New(ttl, ttl/2)}
}

// NewSessionID returns a fresh id for a session-only log.
func NewSessionID() string {
	return "session-" + uuid.New().String()
}

// Load returns a copy of the session log, or an empty log.
func (m *MemoryStore) Load(sessionID string) []journal.Entry {
	v, found := m.cache.Get(sessionID)
	if !found {
		return []journal.Entry{}
	}
	return cloneEntries(v.([]journal.Entry))
}

// Save replaces the session log and refreshes its expiry.
func (m *MemoryStore) Save(sessionID string, entries []journal.Entry) {
	m.cache.Set(sessionID, cloneEntries(entries), cache.DefaultExpiration)
}

// Append adds entry to the session log.
func (m *MemoryStore) Append(sessionID string, entry journal.Entry) {
	entries := m.Load(sessionID)
	m.Save(sessionID, append(entries, entry))
}

// Clear empties the session log.
func (m *MemoryStore) Clear(sessionID string) {
	m.cache.Delete(sessionID)
}

// Sessions returns the number of live session logs.
func (m *MemoryStore) Sessions() int {
	return m.cache.ItemCount()
}
