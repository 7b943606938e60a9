package fs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/candell/typed-content/pkg/typedcontent"
)

func TestFSBackend_BasicOps(t *testing.T) {
	tmp := t.TempDir()
	backend, err := New(Config{BaseDir: tmp})
	if err != nil {
		t.Fatalf("new fs backend: %v", err)
	}

	ctx := context.Background()
	data := []byte("encoded block bytes")

	// Add
	id, err := backend.Add(ctx, data)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id.IsZero() {
		t.Fatalf("expected non-zero identifier")
	}

	// Block lands in its shard directory
	digest := id.Hex()
	path := filepath.Join(tmp, digest[:2], digest+".blob")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected block file at %s: %v", path, err)
	}

	// Get
	got, err := backend.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("get mismatch: %q", got)
	}

	// Re-add is a no-op with the same identifier
	again, err := backend.Add(ctx, data)
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if again != id {
		t.Fatalf("expected stable identifier, got %s and %s", id, again)
	}

	// No temp file left behind
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file removed, stat err=%v", err)
	}
}

func TestFSBackend_GetMissing(t *testing.T) {
	backend, err := New(Config{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("new fs backend: %v", err)
	}

	missing := typedcontent.IdentifyBlock([]byte("never added"))
	if _, err := backend.Get(context.Background(), missing); !errors.Is(err, typedcontent.ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound, got %v", err)
	}

	var zero typedcontent.Identifier
	if _, err := backend.Get(context.Background(), zero); !errors.Is(err, typedcontent.ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound for zero identifier, got %v", err)
	}
}

func TestFSBackend_RequiresBaseDir(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for missing base directory")
	}
}
