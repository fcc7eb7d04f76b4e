package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"acaiaca/internal/users"
)

// Store holds the product fixture set. Read-only after load.
type Store struct {
	products []Product
}

func NewStore(products []Product) *Store {
	s := &Store{products: make([]Product, len(products))}
	copy(s.products, products)
	return s
}

type fixtureFile struct {
	Products []Product `yaml:"products"`
}

func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var products []Product
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		var f fixtureFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse products fixture: %w", err)
		}
		products = f.Products
	default:
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("parse products fixture: %w", err)
		}
	}
	return NewStore(products), nil
}

// List applies the filter in fixture order with a bounded result size.
func (s *Store) List(f Filter) []Product {
	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	var out []Product
	for _, p := range s.products {
		if f.Categoria != "" && !strings.EqualFold(p.Categoria, f.Categoria) {
			continue
		}
		if f.AgricultorID != 0 && p.AgricultorID != f.AgricultorID {
			continue
		}
		if f.Search != "" && !matchesSearch(p, f.Search) {
			continue
		}
		out = append(out, p)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func (s *Store) ByID(id int) (*Product, bool) {
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, true
		}
	}
	return nil, false
}

func (s *Store) Len() int {
	return len(s.products)
}

// Listings joins each filtered product to its farmer's public profile.
// Products whose farmer id misses, or points at a non-farmer record, keep a
// nil Agricultor.
func (s *Store) Listings(us *users.Store, f Filter) []Listing {
	products := s.List(f)
	out := make([]Listing, 0, len(products))
	for _, p := range products {
		l := Listing{Product: p}
		if u, ok := us.FindByID(p.AgricultorID); ok && u.Role == users.RoleAgricultor {
			l.Agricultor = &FarmerProfile{
				ID:           u.ID,
				Username:     u.Username,
				Email:        u.Email,
				PropertyName: u.PropertyName,
				CityName:     u.City,
				StateName:    u.State,
				PhoneNumber:  u.PhoneNumber,
				ImageProfile: u.ProfileImage,
			}
		}
		out = append(out, l)
	}
	return out
}

func matchesSearch(p Product, q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(p.Nome), q) ||
		strings.Contains(strings.ToLower(p.Descricao), q)
}
