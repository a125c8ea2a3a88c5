package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned when a session identifier resolves to nothing
var ErrNotFound = errors.New("session not found")

// Store interface defines methods for session persistence. Update runs the
// whole load-mutate-save cycle under a per-identifier lock so that
// concurrent writers to the same session cannot clobber each other
type Store interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, mutate func(*Session) error) (*Session, error)
}

// FileStore persists one JSON document per session, named by its identifier
type FileStore struct {
	dir string

	mu    sync.Mutex // guards locks
	locks map[string]*sync.Mutex
}

// NewFileStore creates a file-backed session store rooted at dir
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory %s: %w", dir, err)
	}

	return &FileStore{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// lock returns the mutex guarding a single session's document
func (s *FileStore) lock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *FileStore) path(id string) (string, error) {
	// Identifiers come from URL parameters; never let them escape the data dir
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", ErrNotFound
	}
	return filepath.Join(s.dir, id+".json"), nil
}

func (s *FileStore) load(id string) (*Session, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read session %s: %w", id, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}

	return &session, nil
}

func (s *FileStore) save(session *Session) error {
	path, err := s.path(session.ID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", session.ID, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session %s: %w", session.ID, err)
	}

	return nil
}

// Create writes a new session document
func (s *FileStore) Create(ctx context.Context, session *Session) error {
	l := s.lock(session.ID)
	l.Lock()
	defer l.Unlock()

	return s.save(session)
}

// Get loads a session by identifier
func (s *FileStore) Get(ctx context.Context, id string) (*Session, error) {
	l := s.lock(id)
	l.Lock()
	defer l.Unlock()

	return s.load(id)
}

// Update loads a session, applies mutate, and writes the full document back,
// all under the session's lock. The mutated session is returned
func (s *FileStore) Update(ctx context.Context, id string, mutate func(*Session) error) (*Session, error) {
	l := s.lock(id)
	l.Lock()
	defer l.Unlock()

	session, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if err := mutate(session); err != nil {
		return nil, err
	}

	if err := s.save(session); err != nil {
		return nil, err
	}

	return session, nil
}

// InMemoryStore keeps sessions in a map (for tests and one-off operations)
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewInMemoryStore creates a new in-memory session store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string]*Session),
	}
}

// Create stores a copy of the session in memory
func (s *InMemoryStore) Create(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session.Clone()
	return nil
}

// Get retrieves a session by identifier
func (s *InMemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	return session.Clone(), nil
}

// Update applies mutate to the stored session under the store lock
func (s *InMemoryStore) Update(ctx context.Context, id string, mutate func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	if err := mutate(session); err != nil {
		return nil, err
	}

	return session.Clone(), nil
}
