package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store holds the working set of user records for the lifetime of the
// process. It is seeded once from a fixture dataset and never written back:
// a restart reverts to the fixture list, discarding registrations made in
// the meantime.
type Store struct {
	mu     sync.RWMutex
	users  []User
	nextID int
}

func NewStore(seed []User) *Store {
	s := &Store{users: make([]User, len(seed))}
	copy(s.users, seed)
	s.nextID = 1
	for _, u := range s.users {
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
	}
	return s
}

type fixtureFile struct {
	Users []User `yaml:"users"`
}

// Load seeds a store from a fixture file. JSON fixtures are a bare array of
// records; .yaml/.yml fixtures carry them under a top-level "users" key.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seed []User
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		var f fixtureFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse users fixture: %w", err)
		}
		seed = f.Users
	default:
		if err := json.Unmarshal(data, &seed); err != nil {
			return nil, fmt.Errorf("parse users fixture: %w", err)
		}
	}
	return NewStore(seed), nil
}

// FindByCredentials matches email, password and role exactly.
func (s *Store) FindByCredentials(email, password string, role Role) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		u := s.users[i]
		if u.Email == email && u.Password == password && u.Role == role {
			return &u, true
		}
	}
	return nil, false
}

func (s *Store) FindByID(id int) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, true
		}
	}
	return nil, false
}

func (s *Store) EmailExists(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Email == email {
			return true
		}
	}
	return false
}

// Add appends a record, assigning the next monotonic id. The email
// uniqueness invariant is enforced here so check-then-add races cannot
// slip a duplicate in.
func (s *Store) Add(u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Email == u.Email {
			return User{}, ErrDuplicateEmail
		}
	}
	u.ID = s.nextID
	s.nextID++
	s.users = append(s.users, u)
	return u, nil
}

// Apply merges updates into the record with the given id.
func (s *Store) Apply(id int, upd Updates) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		u := &s.users[i]
		if upd.Username != nil {
			u.Username = *upd.Username
		}
		if upd.Email != nil {
			u.Email = *upd.Email
		}
		if upd.Password != nil {
			u.Password = *upd.Password
		}
		if upd.State != nil {
			u.State = *upd.State
		}
		if upd.City != nil {
			u.City = *upd.City
		}
		if upd.PhoneNumber != nil {
			u.PhoneNumber = *upd.PhoneNumber
		}
		if upd.PropertyName != nil {
			u.PropertyName = *upd.PropertyName
		}
		if upd.FarmerStory != nil {
			u.FarmerStory = *upd.FarmerStory
		}
		if upd.ProfileImage != nil {
			u.ProfileImage = *upd.ProfileImage
		}
		if upd.Rating != nil {
			u.Rating = *upd.Rating
		}
		if upd.TotalSales != nil {
			u.TotalSales = *upd.TotalSales
		}
		out := *u
		return &out, nil
	}
	return nil, ErrUserNotFound
}

func (s *Store) All() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

// Farmers returns the records with the agricultor role.
func (s *Store) Farmers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []User
	for i := range s.users {
		if s.users[i].Role == RoleAgricultor {
			out = append(out, s.users[i])
		}
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
