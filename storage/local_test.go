package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLocalStorage(t *testing.T) {
	tests := []struct {
		name      string
		baseDir   string
		wantError bool
	}{
		{name: "valid base directory", baseDir: t.TempDir()},
		{name: "creates non-existent directory", baseDir: filepath.Join(t.TempDir(), "new-dir")},
		{name: "empty base directory", baseDir: "", wantError: true},
		{name: "dot as base directory", baseDir: ".", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, err := NewLocalStorage(tt.baseDir)
			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := os.Stat(storage.baseDir); err != nil {
				t.Errorf("base directory not created: %v", err)
			}
		})
	}
}

func TestLocalStorage_PutGet(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	ctx := context.Background()

	if err := storage.Put(ctx, "drafts/a.json", strings.NewReader(`{"v":1}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := storage.Put(ctx, "drafts/a.json", strings.NewReader(`{"v":2}`)); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	data, err := ReadAll(ctx, storage, "drafts/a.json")
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != `{"v":2}` {
		t.Errorf("content = %q, want the latest write", data)
	}

	large := bytes.Repeat([]byte("x"), 1<<20)
	if err := storage.Put(ctx, "large.bin", bytes.NewReader(large)); err != nil {
		t.Fatalf("Put large failed: %v", err)
	}
	got, err := ReadAll(ctx, storage, "large.bin")
	if err != nil {
		t.Fatalf("ReadAll large failed: %v", err)
	}
	if !bytes.Equal(got, large) {
		t.Error("large object content mismatch")
	}
}

func TestLocalStorage_Missing(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	ctx := context.Background()

	if _, err := storage.Get(ctx, "nope.json"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Get error = %v, want ErrObjectNotFound", err)
	}
	if err := storage.Delete(ctx, "nope.json"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Delete error = %v, want ErrObjectNotFound", err)
	}
	exists, err := storage.Exists(ctx, "nope.json")
	if err != nil || exists {
		t.Errorf("Exists = %v, %v; want false, nil", exists, err)
	}
}

func TestLocalStorage_DeleteAndExists(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	ctx := context.Background()

	if err := storage.Put(ctx, "cert.pem", strings.NewReader("pem")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if exists, _ := storage.Exists(ctx, "cert.pem"); !exists {
		t.Error("expected object to exist")
	}
	if err := storage.Delete(ctx, "cert.pem"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if exists, _ := storage.Exists(ctx, "cert.pem"); exists {
		t.Error("expected object to be gone")
	}
}

func TestLocalStorage_List(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"drafts/b.json", "drafts/a.json", "cert.pem"} {
		if err := storage.Put(ctx, key, strings.NewReader("x")); err != nil {
			t.Fatalf("Put %s failed: %v", key, err)
		}
	}

	keys, err := storage.List(ctx, "drafts/")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"drafts/a.json", "drafts/b.json"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("List = %v, want %v", keys, want)
	}

	all, err := storage.List(ctx, "")
	if err != nil {
		t.Fatalf("List all failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List all returned %d keys, want 3", len(all))
	}
}

func TestLocalStorage_PathTraversal(t *testing.T) {
	baseDir := t.TempDir()
	storage, err := NewLocalStorage(baseDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"../outside.txt", "a/../../outside.txt", "/etc/passwd"} {
		if err := storage.Put(ctx, key, strings.NewReader("x")); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Put(%q) should have been blocked, got %v", key, err)
		}
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(baseDir), "outside.txt")); err == nil {
		t.Error("file was written outside the base directory")
	}
}
