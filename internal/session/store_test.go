package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetGetRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, ok := s.Get(KeyToken); ok {
		t.Error("fresh store should have no token")
	}
	if err := s.Set(KeyToken, "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok := s.Get(KeyToken); !ok || v != "abc" {
		t.Errorf("get = %q, %v", v, ok)
	}
	if err := s.Remove(KeyToken); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := s.Get(KeyToken); ok {
		t.Error("removed key should be absent")
	}
}

func TestReplaceIsWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(KeyHistoria, "antiga"); err != nil {
		t.Fatal(err)
	}
	if err := s.Replace(map[string]string{KeyToken: "t", KeyUserID: "3"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, ok := s.Get(KeyHistoria); ok {
		t.Error("replace should drop fields not in the new record")
	}
	if v, _ := s.Get(KeyUserID); v != "3" {
		t.Errorf("userId = %q, want 3", v)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Replace(map[string]string{KeyToken: "tok", KeyEmail: "ana@x.com"}); err != nil {
		t.Fatal(err)
	}

	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if v, _ := again.Get(KeyEmail); v != "ana@x.com" {
		t.Errorf("email after reopen = %q", v)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(KeyToken, "tok"); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("backing file should be gone after clear")
	}
	for _, k := range Keys {
		if _, ok := s.Get(k); ok {
			t.Errorf("key %q should be absent after clear", k)
		}
	}
}

func TestCorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := s.Get(KeyToken); ok {
		t.Error("corrupt file should read as no session")
	}
}
