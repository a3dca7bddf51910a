// Package session binds a resolved (or unresolved) identity to a store and
// exposes the journal operations a user performs: record, browse, clear,
// analyze and export.
//
// A resolved identity reads and writes the durable store. An unresolved
// identity gets a session-only log in memory, keyed by a random session
// id, and never touches disk.
package session

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/HendryAvila/azimut/internal/adherence"
	"github.com/HendryAvila/azimut/internal/export"
	"github.com/HendryAvila/azimut/internal/identity"
	"github.com/HendryAvila/azimut/internal/journal"
	"github.com/HendryAvila/azimut/internal/logging"
	"github.com/HendryAvila/azimut/internal/patterns"
	"github.com/HendryAvila/azimut/internal/query"
	"github.com/HendryAvila/azimut/internal/recommend"
	"github.com/HendryAvila/azimut/internal/store"
)

// Service opens sessions over one durable store.
type Service struct {
	store    store.Store
	memory   *store.MemoryStore
	profiles *store.ProfileStore
	now      func() time.Time
	log      logrus.FieldLogger
	maxRecs  int
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) { s.log = l }
}

// WithProfiles enables per-partition goal profiles.
func WithProfiles(ps *store.ProfileStore) Option {
	return func(s *Service) { s.profiles = ps }
}

// WithMaxRecommendations caps the advice returned by Insights. n <= 0
// means no cap.
func WithMaxRecommendations(n int) Option {
	return func(s *Service) { s.maxRecs = n }
}

// NewService creates a Service. memory may be nil, in which case a
// memory store with the default session TTL is created.
func NewService(durable store.Store, memory *store.MemoryStore, opts ...Option) *Service {
	s := &Service{
		store:   durable,
		memory:  memory,
		now:     time.Now,
		maxRecs: recommend.DefaultLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.memory == nil {
		s.memory = store.NewMemoryStore(store.DefaultSessionTTL)
	}
	s.log = logging.OrDiscard(s.log)
	return s
}

// Now returns the current time from the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Today returns the current UTC calendar date.
func (s *Service) Today() journal.Date {
	return journal.DateOf(s.now())
}

// Open resolves the identity parts and binds a session to the partition.
// If the parts do not resolve, the session is backed by a fresh
// session-only log.
func (s *Service) Open(parts ...string) *Session {
	key := identity.Resolve(parts...)
	if key.Resolved() {
		return &Session{svc: s, key: key}
	}
	return s.Resume(store.NewSessionID())
}

// Resume reattaches to a session-only log by its id.
func (s *Service) Resume(sessionID string) *Session {
	s.log.WithField("session", sessionID).Debug("session-only journal")
	return &Session{svc: s, sessionID: sessionID}
}

// Session is one user's view of their journal.
type Session struct {
	svc       *Service
	key       identity.Key
	sessionID string
}

// Persistent reports whether the session writes to durable storage.
func (s *Session) Persistent() bool {
	return s.key.Resolved()
}

// Key returns the partition key. It is unresolved for session-only logs.
func (s *Session) Key() identity.Key {
	return s.key
}

// ID returns the partition token, or the session id when not persistent.
func (s *Session) ID() string {
	if s.Persistent() {
		return s.key.Token
	}
	return s.sessionID
}

// Entries returns the whole journal in append order.
func (s *Session) Entries() []journal.Entry {
	if s.Persistent() {
		return s.svc.store.Load(s.key)
	}
	return s.svc.memory.Load(s.sessionID)
}

// Record builds an entry stamped by the service clock and appends it.
// The stamp never goes backwards relative to the last stored entry.
func (s *Session) Record(category journal.Category, effectiveDate, label, value string, annotations map[string]string) (journal.Entry, error) {
	stamp := journal.NextStamp(s.Entries(), s.svc.now())
	e, err := journal.NewEntry(stamp, category, effectiveDate, label, value, annotations)
	if err != nil {
		return journal.Entry{}, err
	}

	if !s.Persistent() {
		s.svc.memory.Append(s.sessionID, e)
		return e, nil
	}
	if err := s.svc.store.Append(s.key, e); err != nil {
		return journal.Entry{}, fmt.Errorf("recording entry: %w", err)
	}
	s.svc.log.WithFields(logrus.Fields{
		"partition": s.key.String(),
		"category":  int(e.Category),
	}).Debug("entry recorded")
	return e, nil
}

// Clear removes every entry of the journal.
func (s *Session) Clear() error {
	if !s.Persistent() {
		s.svc.memory.Clear(s.sessionID)
		return nil
	}
	if err := s.svc.store.Clear(s.key); err != nil {
		return fmt.Errorf("clearing journal: %w", err)
	}
	s.svc.log.WithField("partition", s.key.String()).Info("journal cleared")
	return nil
}

// Query returns the filtered, ordered entries.
func (s *Session) Query(f query.Filter) []journal.Entry {
	return query.Query(s.Entries(), f)
}

// History returns the filtered entries grouped for display.
func (s *Session) History(f query.Filter) []query.CategoryGroup {
	return query.Group(s.Query(f))
}

// Insights are the derived signals of a filtered window.
type Insights struct {
	AsOf            journal.Date
	Entries         int
	Adherence       adherence.Report
	Distribution    []query.CategoryCount
	Patterns        patterns.Summary
	Recommendations []string
}

// Insights analyzes the entries matching f as of asOf.
func (s *Session) Insights(f query.Filter, asOf journal.Date) Insights {
	entries := s.Query(f)
	summary := patterns.Insight(entries)
	recs := recommend.Recommend(summary.DominantValue, summary.HasValue)

	return Insights{
		AsOf:            asOf,
		Entries:         len(entries),
		Adherence:       adherence.Analyze(entries, asOf, s.Profile()),
		Distribution:    query.Distribution(entries),
		Patterns:        summary,
		Recommendations: recommend.Top(recs, s.svc.maxRecs),
	}
}

// Export projects the entries matching f into a table.
func (s *Session) Export(f query.Filter) export.Table {
	return export.NewTable(s.Query(f))
}

// Profile returns the saved goal profile, or nil.
func (s *Session) Profile() *journal.Profile {
	if !s.Persistent() || s.svc.profiles == nil {
		return nil
	}
	return s.svc.profiles.Load(s.key)
}

// SaveProfile stores the goal profile of a persistent session.
func (s *Session) SaveProfile(p journal.Profile) error {
	if !s.Persistent() {
		return store.ErrUnresolved
	}
	if s.svc.profiles == nil {
		return fmt.Errorf("profiles are not enabled")
	}
	return s.svc.profiles.Save(s.key, p)
}
