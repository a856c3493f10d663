package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ai-trainer/internal/database"
)

// exerciseStore runs the behaviour every Store must share.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	key := "aiFitnessPlan_v1"

	t.Run("Get-NotFound", func(t *testing.T) {
		_, err := store.Get(ctx, key)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Put-Get", func(t *testing.T) {
		if err := store.Put(ctx, key, []byte(`{"title":"first"}`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := store.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != `{"title":"first"}` {
			t.Errorf("Unexpected value '%s'", got)
		}
	})

	t.Run("Put-Replaces", func(t *testing.T) {
		if err := store.Put(ctx, key, []byte(`{"title":"second"}`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, _ := store.Get(ctx, key)
		if string(got) != `{"title":"second"}` {
			t.Errorf("Expected value to be replaced, got '%s'", got)
		}
	})

	t.Run("Keys-Independent", func(t *testing.T) {
		if err := store.Put(ctx, "other", []byte("x")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, _ := store.Get(ctx, key)
		if string(got) != `{"title":"second"}` {
			t.Errorf("Writing another key changed the slot: '%s'", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, key); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := store.Get(ctx, key); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.Delete(ctx, key); err != nil {
			t.Errorf("Deleting a missing key should not fail, got %v", err)
		}
	})
}

func TestFileStore(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewFileStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create FileStore: %v", err)
	}

	exerciseStore(t, store)

	t.Run("NoTempFilesLeft", func(t *testing.T) {
		matches, _ := filepath.Glob(filepath.Join(tempDir, "*.tmp"))
		if len(matches) != 0 {
			t.Errorf("Expected no temp files, found %v", matches)
		}
	})

	t.Run("EncodedFilename", func(t *testing.T) {
		if err := store.Put(context.Background(), "user/42:plan", []byte("{}")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(tempDir, "user%2F42%3Aplan.json")); err != nil {
			t.Errorf("Expected encoded file to exist: %v", err)
		}
	})

	t.Run("DistinctKeysDistinctFiles", func(t *testing.T) {
		ctx := context.Background()
		keys := []string{"user:1", "user-1", "user%3A1", "user/1"}
		for _, k := range keys {
			if err := store.Put(ctx, k, []byte(k)); err != nil {
				t.Fatalf("Put %q failed: %v", k, err)
			}
		}
		for _, k := range keys {
			got, err := store.Get(ctx, k)
			if err != nil {
				t.Fatalf("Get %q failed: %v", k, err)
			}
			if string(got) != k {
				t.Errorf("Key %q read back %q", k, got)
			}
		}
	})
}

func TestSQLiteStore(t *testing.T) {
	db, err := database.NewDB(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	exerciseStore(t, NewSQLiteStore(db.SQL))
}

// TestRedisStore runs against a real server.
// Run with: REDIS_URL=redis://localhost:6379/15 go test ./internal/storage -run TestRedisStore
func TestRedisStore(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if testing.Short() || redisURL == "" {
		t.Skip("Skipping: REDIS_URL not set")
	}

	client, err := NewRedisClient(context.Background(), redisURL)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	store := NewRedisStore(client, "ai-trainer-test:")
	defer store.Close()
	defer client.Del(context.Background(), "ai-trainer-test:aiFitnessPlan_v1", "ai-trainer-test:other")

	exerciseStore(t, store)
}
