package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenSetGet(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "corvid-storage-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp failed: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	db, err := Open(filepath.Join(tmpDir, "db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if db.Has() {
		t.Error("freshly opened database should report no keys")
	}

	if err := db.Set([]byte("k1"), []byte("v1")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, ok, err := db.Get([]byte("k1"))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || string(val) != "v1" {
		t.Errorf("Get(k1) = (%q, %v), want (v1, true)", val, ok)
	}

	if _, ok, err := db.Get([]byte("missing")); err != nil || ok {
		t.Errorf("Get(missing) = (_, %v, %v), want (_, false, nil)", ok, err)
	}

	if !db.Has() {
		t.Error("database with a key should report Has() == true")
	}
}

func TestBatchSet(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "corvid-storage-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp failed: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	db, err := Open(filepath.Join(tmpDir, "db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	entries := map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}
	if err := db.BatchSet(entries); err != nil {
		t.Fatalf("BatchSet failed: %v", err)
	}

	for k, want := range entries {
		got, ok, err := db.Get([]byte(k))
		if err != nil || !ok || string(got) != string(want) {
			t.Errorf("Get(%q) = (%q, %v, %v), want (%q, true, nil)", k, got, ok, err, want)
		}
	}
}

func TestCount(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "corvid-storage-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp failed: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	db, err := Open(filepath.Join(tmpDir, "db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if n := db.Count(); n != 0 {
		t.Errorf("Count() on empty db = %d, want 0", n)
	}

	entries := map[string][]byte{"a": []byte("1"), "b": []byte("2"), "c": []byte("3")}
	if err := db.BatchSet(entries); err != nil {
		t.Fatalf("BatchSet failed: %v", err)
	}

	if n := db.Count(); n != len(entries) {
		t.Errorf("Count() = %d, want %d", n, len(entries))
	}
}

func TestDataPaths(t *testing.T) {
	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("DataDir returned empty path")
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("data directory was not created: %s", dataDir)
	}
}
