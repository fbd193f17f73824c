package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/devboard/internal/client/models"
	"github.com/dmitrijs2005/devboard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/devboard/internal/dbx"
)

// ErrNotAuthenticated is returned by operations that require a session.
var ErrNotAuthenticated = errors.New("not authenticated")

// Cache keys in the metadata table.
const (
	sessionKey = "session"
	savedAtKey = "session_saved_at"
)

// Manager is the single writer of the Session. Readers receive copies;
// every mutation goes through Set/UpdateProfile/Clear, which also keep the
// local cache in step so a later CLI invocation can resume.
type Manager struct {
	mu      sync.RWMutex
	current *Session
	db      *sql.DB
}

func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db}
}

// Current returns a copy of the session and whether one exists.
func (m *Manager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.current.Valid() {
		return Session{}, false
	}
	return *m.current, true
}

// Token returns the bearer token, or "" when unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.current.Valid() {
		return ""
	}
	return m.current.Token
}

// Set installs a new session and persists it to the local cache. An invalid
// session (missing token or profile) is rejected so a partially
// authenticated state can never be observed.
func (m *Manager) Set(ctx context.Context, s Session) error {
	if !s.Valid() {
		return errors.New("refusing to store a partial session")
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	if err := m.save(ctx, &s); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()
	return nil
}

// UpdateProfile re-derives the session from a fresh profile snapshot,
// keeping the token. This is the only way profile fields change after
// login.
func (m *Manager) UpdateProfile(ctx context.Context, u models.User) error {
	m.mu.RLock()
	cur := m.current
	m.mu.RUnlock()

	if !cur.Valid() {
		return ErrNotAuthenticated
	}

	next := Session{Token: cur.Token, User: u, CreatedAt: cur.CreatedAt}
	if !next.Valid() {
		return errors.New("refusing to store a partial session")
	}

	if err := m.save(ctx, &next); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = &next
	m.mu.Unlock()
	return nil
}

// Clear destroys the session in memory and wipes the local cache.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	repo := metadata.NewSQLiteRepository(m.db)
	if err := repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session cache: %w", err)
	}
	return nil
}

// Restore loads a previously cached session. A cached session whose token
// has expired is discarded, leaving the caller unauthenticated. Returns a
// copy of the restored session, or nil when there was nothing usable.
func (m *Manager) Restore(ctx context.Context) (*Session, error) {
	repo := metadata.NewSQLiteRepository(m.db)

	raw, err := repo.Get(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("read session cache: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil || !s.Valid() {
		// Unreadable or partial cache entries are dropped, not surfaced.
		_ = repo.Clear(ctx)
		return nil, nil
	}

	if TokenExpired(s.Token, time.Now()) {
		if err := repo.Clear(ctx); err != nil {
			return nil, fmt.Errorf("drop expired session: %w", err)
		}
		return nil, nil
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	out := s
	return &out, nil
}

// save writes the session snapshot and its timestamp in one transaction.
func (m *Manager) save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, sessionKey, raw); err != nil {
			return err
		}
		return repo.Set(ctx, savedAtKey, []byte(strconv.FormatInt(time.Now().Unix(), 10)))
	})
	if err != nil {
		return fmt.Errorf("write session cache: %w", err)
	}
	return nil
}
