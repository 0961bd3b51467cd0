package purse

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// UnlockTTL is how long an unlock stays valid before the UI should ask the
// user to authenticate again.
const UnlockTTL = 24 * time.Hour

// SessionPointer names the active user.
type SessionPointer struct {
	UserID     string    `json:"userId"`
	LastUnlock time.Time `json:"lastUnlock"`
}

// NeedsUnlock reports whether the last unlock is older than UnlockTTL.
func (p SessionPointer) NeedsUnlock(now time.Time) bool {
	return now.Sub(p.LastUnlock) > UnlockTTL
}

// Store persists user states keyed by user ID, and the current session pointer.
//
// Load returns the seed state for unknown users. Save overwrites the previous
// state entirely. Clear forgets the session pointer if it names userID but
// never deletes the user's state, so logging in again restores it.
// Failures are reported as *PersistenceError.
type Store interface {
	Load(ctx context.Context, userID string) (UserState, error)
	Save(ctx context.Context, userID string, s UserState) error
	Begin(ctx context.Context, p SessionPointer) error
	Current(ctx context.Context) (SessionPointer, bool, error)
	Clear(ctx context.Context, userID string) error
}

func checkUserID(op, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return &PersistenceError{Op: op, Err: &ValidationError{Field: "user id", Reason: "missing"}}
	}
	return nil
}

// MemStore is a Store kept in memory. States are stored encoded, so callers
// never share memory with the store.
type MemStore struct {
	mu      sync.Mutex
	users   map[string][]byte
	current *SessionPointer
}

func NewMemStore() *MemStore {
	return &MemStore{users: make(map[string][]byte)}
}

func (m *MemStore) Load(_ context.Context, userID string) (UserState, error) {
	if err := checkUserID("load", userID); err != nil {
		return UserState{}, err
	}
	m.mu.Lock()
	data, ok := m.users[userID]
	m.mu.Unlock()
	if !ok {
		return SeedState(userID), nil
	}
	var s UserState
	if err := json.Unmarshal(data, &s); err != nil {
		return UserState{}, &PersistenceError{Op: "load", UserID: userID, Err: err}
	}
	return s, nil
}

func (m *MemStore) Save(_ context.Context, userID string, s UserState) error {
	if err := checkUserID("save", userID); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return &PersistenceError{Op: "save", UserID: userID, Err: err}
	}
	m.mu.Lock()
	m.users[userID] = data
	m.mu.Unlock()
	return nil
}

func (m *MemStore) Begin(_ context.Context, p SessionPointer) error {
	if err := checkUserID("begin", p.UserID); err != nil {
		return err
	}
	m.mu.Lock()
	m.current = &p
	m.mu.Unlock()
	return nil
}

func (m *MemStore) Current(context.Context) (SessionPointer, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return SessionPointer{}, false, nil
	}
	return *m.current, true, nil
}

func (m *MemStore) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil && m.current.UserID == userID {
		m.current = nil
	}
	return nil
}
