package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Field keys, matching the web client's localStorage keys one for one.
const (
	KeyToken         = "token"
	KeyUserRole      = "userRole"
	KeyUserName      = "userName"
	KeyUserID        = "userId"
	KeyEmail         = "email"
	KeyHistoria      = "historia"
	KeyLastLogin     = "lastLogin"
	KeySessionExpiry = "sessionExpiry"
)

// Keys lists every field the store may hold.
var Keys = []string{
	KeyToken,
	KeyUserRole,
	KeyUserName,
	KeyUserID,
	KeyEmail,
	KeyHistoria,
	KeyLastLogin,
	KeySessionExpiry,
}

// Store persists session fields as one serialized record in a single file,
// written atomically. Field-level access keeps the localStorage-style
// contract while ruling out the partial-write states that eight
// independently written keys allowed.
type Store struct {
	path   string
	mu     sync.RWMutex
	fields map[string]string
}

// Open loads any previously persisted record. A missing or corrupt file is
// treated as no session.
func Open(path string) (*Store, error) {
	s := &Store{path: path, fields: map[string]string{}}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &s.fields); err != nil {
		s.fields = map[string]string{}
	}
	return s, nil
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.fields[key]
	return v, ok
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[key] = value
	return s.persist()
}

// Replace swaps the whole record in one write.
func (s *Store) Replace(fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields = make(map[string]string, len(fields))
	for k, v := range fields {
		s.fields[k] = v
	}
	return s.persist()
}

func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fields, key)
	return s.persist()
}

// Clear drops every field and removes the backing file. Idempotent.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields = map[string]string{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.fields)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
