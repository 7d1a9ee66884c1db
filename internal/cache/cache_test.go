package cache

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func TestMemory_GetPut(t *testing.T) {
	m := NewMemory(time.Minute)

	if _, ok, _ := m.Get("https://example.com/a"); ok {
		t.Fatal("expected miss on empty store")
	}

	if err := m.Put("https://example.com/a", []byte("body-a")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	body, ok, err := m.Get("https://example.com/a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if !bytes.Equal(body, []byte("body-a")) {
		t.Errorf("Get = %q, want %q", body, "body-a")
	}

	// A different URL is still a miss.
	if _, ok, _ := m.Get("https://example.com/b"); ok {
		t.Error("expected miss for unrelated URL")
	}
}

func TestMemory_TTL(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(5 * time.Minute)
	m.now = func() time.Time { return clock }

	m.Put("u", []byte("x"))

	clock = clock.Add(4 * time.Minute)
	if _, ok, _ := m.Get("u"); !ok {
		t.Fatal("entry within TTL should hit")
	}

	clock = clock.Add(2 * time.Minute)
	if _, ok, _ := m.Get("u"); ok {
		t.Fatal("entry past TTL must be treated as absent")
	}
}

func TestMemory_PutRefreshes(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(5 * time.Minute)
	m.now = func() time.Time { return clock }

	m.Put("u", []byte("old"))
	clock = clock.Add(4 * time.Minute)
	m.Put("u", []byte("new"))
	clock = clock.Add(4 * time.Minute)

	body, ok, _ := m.Get("u")
	if !ok {
		t.Fatal("refreshed entry should still be live")
	}
	if string(body) != "new" {
		t.Errorf("Get = %q, want %q", body, "new")
	}
}

func TestMemory_Expire(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute)
	m.now = func() time.Time { return clock }

	m.Put("a", []byte("1"))
	clock = clock.Add(30 * time.Second)
	m.Put("b", []byte("2"))
	clock = clock.Add(45 * time.Second)

	if err := m.Expire(); err != nil {
		t.Fatalf("Expire: %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("after Expire: %d entries, want 1", m.Len())
	}
	if _, ok, _ := m.Get("b"); !ok {
		t.Error("entry within TTL dropped by Expire")
	}
}

func TestSQLite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := OpenSQLite(path, time.Minute)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.Get("u"); err != nil || ok {
		t.Fatalf("Get on empty store = ok=%v err=%v, want miss", ok, err)
	}

	if err := s.Put("u", []byte("payload")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	body, ok, err := s.Get("u")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || string(body) != "payload" {
		t.Fatalf("Get = (%q, %v), want (\"payload\", true)", body, ok)
	}

	// Replacing keeps a single row.
	if err := s.Put("u", []byte("fresh")); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	body, _, _ = s.Get("u")
	if string(body) != "fresh" {
		t.Errorf("after replace Get = %q, want %q", body, "fresh")
	}
}

func TestSQLite_TTLAndExpire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := OpenSQLite(path, time.Minute)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	s.Put("old", []byte("1"))
	clock = clock.Add(30 * time.Second)
	s.Put("new", []byte("2"))
	clock = clock.Add(40 * time.Second)

	if _, ok, _ := s.Get("old"); ok {
		t.Error("entry past TTL must be treated as absent")
	}
	if _, ok, _ := s.Get("new"); !ok {
		t.Error("entry within TTL should hit")
	}

	if err := s.Expire(); err != nil {
		t.Fatalf("Expire: %v", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM pages`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("after Expire: %d rows, want 1", count)
	}
}

func TestSQLite_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	s, err := OpenSQLite(path, time.Hour)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	s.Put("u", []byte("kept"))
	s.Close()

	s2, err := OpenSQLite(path, time.Hour)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	body, ok, _ := s2.Get("u")
	if !ok || string(body) != "kept" {
		t.Fatalf("after reopen Get = (%q, %v), want (\"kept\", true)", body, ok)
	}
}
