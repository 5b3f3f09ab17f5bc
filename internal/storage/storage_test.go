package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()

	if _, ok, err := kv.Get(KeyTheme); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want ok=false err=nil", ok, err)
	}

	if err := kv.Set(KeyTheme, "light"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	got, ok, err := kv.Get(KeyTheme)
	if err != nil || !ok || got != "light" {
		t.Fatalf("Get = %q ok=%v err=%v, want light", got, ok, err)
	}

	if err := kv.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("Set (overwrite) returned error: %v", err)
	}
	got, _, _ = kv.Get(KeyTheme)
	if got != "dark" {
		t.Fatalf("Get after overwrite = %q, want dark", got)
	}

	// Namespaces are independent.
	if err := kv.Set(KeySettings, `{"theme":"light"}`); err != nil {
		t.Fatalf("Set settings returned error: %v", err)
	}
	got, _, _ = kv.Get(KeyTheme)
	if got != "dark" {
		t.Fatalf("theme changed after settings write: %q", got)
	}

	if err := kv.Delete(KeyTheme); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok, _ := kv.Get(KeyTheme); ok {
		t.Fatalf("Get after Delete reported present")
	}
}

func TestMemory(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "concepta.db")
	kv, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite returned error: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	exerciseKV(t, kv)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concepta.db")
	kv, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite returned error: %v", err)
	}
	if err := kv.Set(KeyFlashcards, `[{"question":"q","answer":"a"}]`); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite (reopen) returned error: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	got, ok, err := reopened.Get(KeyFlashcards)
	if err != nil || !ok {
		t.Fatalf("Get after reopen ok=%v err=%v", ok, err)
	}
	if got != `[{"question":"q","answer":"a"}]` {
		t.Fatalf("Get after reopen = %q", got)
	}
}

func TestMemory_FailWritesAndClose(t *testing.T) {
	kv := NewMemory()
	boom := errors.New("disk full")
	kv.FailWrites = boom

	if err := kv.Set(KeyTheme, "dark"); !errors.Is(err, boom) {
		t.Fatalf("Set error = %v, want %v", err, boom)
	}

	kv.FailWrites = nil
	_ = kv.Close()
	if _, _, err := kv.Get(KeyTheme); !errors.Is(err, ErrClosed) {
		t.Fatalf("Get after Close error = %v, want ErrClosed", err)
	}
}
