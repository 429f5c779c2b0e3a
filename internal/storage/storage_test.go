package storage

import (
	"errors"
	"fmt"
	"testing"
)

// exercise runs the shared DB contract against an implementation.
func exercise(t *testing.T, db DB) {
	t.Helper()

	if _, err := db.Get([]byte("missing")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing key error = %v, want ErrNotFound", err)
	}
	if ok, err := db.Has([]byte("missing")); err != nil || ok {
		t.Fatalf("Has(missing) = %v, %v, want false, nil", ok, err)
	}

	if err := db.Put([]byte("a:1"), []byte("one")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := db.Put([]byte("a:2"), []byte("two")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := db.Put([]byte("b:1"), []byte("other")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := db.Get([]byte("a:1"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "one" {
		t.Errorf("Get = %q, want %q", got, "one")
	}

	// Overwrite.
	if err := db.Put([]byte("a:1"), []byte("uno")); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	if got, _ := db.Get([]byte("a:1")); string(got) != "uno" {
		t.Errorf("Get after overwrite = %q, want %q", got, "uno")
	}

	// Prefix iteration sees exactly the a: keys.
	seen := map[string]string{}
	err = db.ForEach([]byte("a:"), func(k, v []byte) error {
		seen[string(k)] = string(v)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach: %v", err)
	}
	if len(seen) != 2 || seen["a:1"] != "uno" || seen["a:2"] != "two" {
		t.Errorf("ForEach saw %v", seen)
	}

	// Early stop propagates the callback error.
	stop := fmt.Errorf("stop")
	if err := db.ForEach([]byte("a:"), func(k, v []byte) error { return stop }); !errors.Is(err, stop) {
		t.Errorf("ForEach early-stop error = %v, want %v", err, stop)
	}

	if err := db.Delete([]byte("a:1")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Get([]byte("a:1")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get deleted key error = %v, want ErrNotFound", err)
	}
	// Deleting a missing key is a no-op.
	if err := db.Delete([]byte("a:1")); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestMemoryDB(t *testing.T) {
	db := NewMemory()
	defer db.Close()
	exercise(t, db)
}

func TestBadgerDB(t *testing.T) {
	db, err := NewBadger(t.TempDir())
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	defer db.Close()
	exercise(t, db)
}

func TestBadgerPersistence(t *testing.T) {
	dir := t.TempDir()

	db, err := NewBadger(dir)
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	if err := db.Put([]byte("key"), []byte("value")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewBadger(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Get([]byte("key"))
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get = %q, want %q", got, "value")
	}
}
