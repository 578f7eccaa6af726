package storage

import (
	"context"
)

// Preference keys shared with the location-selection and login flows.
const (
	KeySelectedCity = "selectedCity"
	KeyToken        = "token"
)

// PreferenceStore persists string preferences per browser session.
type PreferenceStore interface {
	GetPreference(ctx context.Context, sessionID, key string) (string, bool, error) // Returns value, found boolean, error
	SetPreference(ctx context.Context, sessionID, key, value string) error
	DeletePreference(ctx context.Context, sessionID, key string) error
	Ping(ctx context.Context) error
}

// Session is a PreferenceStore view bound to one session id.
type Session struct {
	store PreferenceStore
	id    string
}

// ForSession binds store to sessionID.
func ForSession(store PreferenceStore, sessionID string) *Session {
	return &Session{store: store, id: sessionID}
}

// ID returns the bound session id.
func (s *Session) ID() string { return s.id }

// Lookup returns the stored value for key. Empty values count as absent.
func (s *Session) Lookup(ctx context.Context, key string) (string, bool, error) {
	value, found, err := s.store.GetPreference(ctx, s.id, key)
	if err != nil || !found || value == "" {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key for this session.
func (s *Session) Set(ctx context.Context, key, value string) error {
	return s.store.SetPreference(ctx, s.id, key, value)
}

// Delete removes key for this session.
func (s *Session) Delete(ctx context.Context, key string) error {
	return s.store.DeletePreference(ctx, s.id, key)
}
