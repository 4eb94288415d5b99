package locale

import (
	"context"
	"fmt"

	"github.com/alexedwards/scs/v2"
)

// StoreResult is the outcome of a best-effort preference store operation.
// Callers are free to ignore it.
type StoreResult int

const (
	StoreOK StoreResult = iota
	// StoreEmpty: nothing stored, or the stored value is not a valid locale.
	StoreEmpty
	// StoreUnavailable: the backing store could not be used for this request.
	StoreUnavailable
)

func (r StoreResult) String() string {
	switch r {
	case StoreOK:
		return "ok"
	case StoreEmpty:
		return "empty"
	default:
		return "unavailable"
	}
}

// PreferenceStore keeps the last locale a visitor picked. Implementations
// never return errors; a failing store reports StoreUnavailable.
type PreferenceStore interface {
	Load(ctx context.Context) (Locale, StoreResult)
	Save(ctx context.Context, l Locale) StoreResult
}

const preferenceKey = "preferredLocale"

// SessionStore keeps the preference in the visitor's session.
type SessionStore struct {
	sessions *scs.SessionManager
	set      *Set
	// Err receives the reason of the last StoreUnavailable outcome, if set.
	Err func(error)
}

func NewSessionStore(sessions *scs.SessionManager, set *Set) *SessionStore {
	return &SessionStore{sessions: sessions, set: set}
}

func (s *SessionStore) Load(ctx context.Context) (l Locale, result StoreResult) {
	defer s.guard(&result)
	if s.sessions == nil {
		return "", StoreUnavailable
	}

	raw := s.sessions.GetString(ctx, preferenceKey)
	if v, ok := s.set.Parse(raw); ok {
		return v, StoreOK
	}
	return "", StoreEmpty
}

func (s *SessionStore) Save(ctx context.Context, l Locale) (result StoreResult) {
	defer s.guard(&result)
	if s.sessions == nil {
		return StoreUnavailable
	}
	if !s.set.Valid(l) {
		return StoreEmpty
	}

	s.sessions.Put(ctx, preferenceKey, string(l))
	return StoreOK
}

// guard turns the session manager's "no session data in context" panic into
// StoreUnavailable.
func (s *SessionStore) guard(result *StoreResult) {
	if rec := recover(); rec != nil {
		*result = StoreUnavailable
		if s.Err != nil {
			s.Err(fmt.Errorf("preference store: %v", rec))
		}
	}
}
