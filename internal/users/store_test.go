package users

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func seedUsers() []User {
	return []User{
		{
			ID: 3, Username: "Ana", Email: "ana@x.com", Password: "pw123",
			Role: RoleAgricultor, State: "PR", City: "Morretes",
			PropertyName: "Sítio Ana", FarmerStory: "História da Ana",
		},
		{ID: 7, Username: "Bruno", Email: "bruno@x.com", Password: "pw456", Role: RoleConsumidor},
	}
}

func TestNewStoreSeedsNextID(t *testing.T) {
	s := NewStore(seedUsers())
	u, err := s.Add(User{Username: "Novo", Email: "novo@x.com", Role: RoleConsumidor})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if u.ID != 8 {
		t.Errorf("new id = %d, want max+1 = 8", u.ID)
	}
}

func TestFindByCredentials(t *testing.T) {
	s := NewStore(seedUsers())

	u, ok := s.FindByCredentials("ana@x.com", "pw123", RoleAgricultor)
	if !ok {
		t.Fatal("expected match for exact credentials")
	}
	if u.ID != 3 {
		t.Errorf("matched id = %d, want 3", u.ID)
	}

	// Any mismatching field is a miss.
	if _, ok := s.FindByCredentials("ana@x.com", "pw123", RoleConsumidor); ok {
		t.Error("wrong role should not match")
	}
	if _, ok := s.FindByCredentials("ana@x.com", "nope", RoleAgricultor); ok {
		t.Error("wrong password should not match")
	}
	if _, ok := s.FindByCredentials("ghost@x.com", "pw123", RoleAgricultor); ok {
		t.Error("unknown email should not match")
	}
}

func TestAddRejectsDuplicateEmail(t *testing.T) {
	s := NewStore(seedUsers())
	before := s.Len()
	_, err := s.Add(User{Username: "Outra Ana", Email: "ana@x.com", Role: RoleConsumidor})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("err = %v, want ErrDuplicateEmail", err)
	}
	if s.Len() != before {
		t.Errorf("collection length changed: %d -> %d", before, s.Len())
	}
}

func TestApplyMergesFields(t *testing.T) {
	s := NewStore(seedUsers())
	name := "Ana Maria"
	story := "História nova"
	u, err := s.Apply(3, Updates{Username: &name, FarmerStory: &story})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if u.Username != "Ana Maria" || u.FarmerStory != "História nova" {
		t.Errorf("merge failed: %+v", u)
	}
	if u.Email != "ana@x.com" || u.PropertyName != "Sítio Ana" {
		t.Errorf("untouched fields should survive: %+v", u)
	}

	got, _ := s.FindByID(3)
	if got.Username != "Ana Maria" {
		t.Error("update should be visible through FindByID")
	}
}

func TestApplyUnknownID(t *testing.T) {
	s := NewStore(seedUsers())
	if _, err := s.Apply(99, Updates{}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestFarmers(t *testing.T) {
	s := NewStore(seedUsers())
	farmers := s.Farmers()
	if len(farmers) != 1 || farmers[0].ID != 3 {
		t.Errorf("farmers = %+v, want only id 3", farmers)
	}
}

func TestLoadJSONFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usuarios.json")
	data := `[{"id":10,"username":"Zé","email":"ze@x.com","password":"pw","role":"consumidor"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := s.FindByID(10); !ok {
		t.Error("seeded user should resolve")
	}
}

func TestLoadYAMLFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usuarios.yaml")
	data := "users:\n  - id: 11\n    username: Lia\n    email: lia@x.com\n    password: pw\n    role: agricultor\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	u, ok := s.FindByID(11)
	if !ok || u.Role != RoleAgricultor {
		t.Errorf("yaml user = %+v, ok = %v", u, ok)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing fixture should fail to load")
	}
}
