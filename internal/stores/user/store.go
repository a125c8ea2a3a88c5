package user

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Store interface defines the user directory operations. The directory is
// only consulted at signup/login time; it is not part of the interview
// lifecycle
type Store interface {
	Add(ctx context.Context, name, email, password string) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	Verify(ctx context.Context, email, password string) (*User, error)
}

// FileStore persists all users as one JSON array file
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a user directory backed by the given JSON file,
// creating an empty one if it does not exist yet
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create user directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
			return nil, fmt.Errorf("failed to initialize user file: %w", err)
		}
	}

	return &FileStore{path: path}, nil
}

func (s *FileStore) load() ([]User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read user file: %w", err)
	}

	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode user file: %w", err)
	}

	return users, nil
}

func (s *FileStore) save(users []User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write user file: %w", err)
	}

	return nil
}

// Add registers a new user after checking the password policy and email
// uniqueness (case-sensitive). The password is stored as a bcrypt hash
func (s *FileStore) Add(ctx context.Context, name, email, password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}

	for _, u := range users {
		if u.Email == email {
			return ErrExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	users = append(users, User{Name: name, Email: email, Password: string(hash)})
	return s.save(users)
}

// FindByEmail returns the user registered under email, or ErrNotFound
func (s *FileStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == email {
			return &u, nil
		}
	}

	return nil, ErrNotFound
}

// Verify checks the supplied credentials against the stored hash. A missing
// user and a wrong password both return ErrNotFound
func (s *FileStore) Verify(ctx context.Context, email, password string) (*User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrNotFound
	}

	return user, nil
}
