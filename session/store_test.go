package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, "agrt"), mr
}

func TestPersistAndExists(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	if err := store.Persist(ctx, "tok-1", "uid-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	known, err := store.Exists(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !known {
		t.Fatal("persisted token not found")
	}

	known, err = store.Exists(ctx, "tok-other")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if known {
		t.Fatal("unknown token reported as present")
	}
}

func TestPersistDuplicateFails(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	if err := store.Persist(ctx, "tok-1", "uid-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if err := store.Persist(ctx, "tok-1", "uid-2", time.Now().Add(time.Hour)); !errors.Is(err, ErrDuplicateToken) {
		t.Fatalf("got %v, want ErrDuplicateToken", err)
	}

	// The original record is untouched.
	rec, err := store.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec == nil || rec.UserID != "uid-1" {
		t.Fatalf("record rebound: %+v", rec)
	}
}

func TestPersistRejectsPastExpiry(t *testing.T) {
	store, _ := testStore(t)

	err := store.Persist(context.Background(), "tok-1", "uid-1", time.Now().Add(-time.Second))
	if !errors.Is(err, ErrAlreadyExpired) {
		t.Fatalf("got %v, want ErrAlreadyExpired", err)
	}
}

func TestRecordExpiresWithTTL(t *testing.T) {
	store, mr := testStore(t)
	ctx := context.Background()

	if err := store.Persist(ctx, "tok-1", "uid-1", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	known, err := store.Exists(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if known {
		t.Fatal("record survived its TTL")
	}
}

func TestGetAbsentReturnsNil(t *testing.T) {
	store, _ := testStore(t)

	rec, err := store.Get(context.Background(), "tok-unknown")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec != nil {
		t.Fatalf("got %+v, want nil", rec)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	if err := store.Persist(ctx, "tok-1", "uid-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if err := store.Delete(ctx, "tok-never-existed"); err != nil {
		t.Fatalf("Delete of absent token: %v", err)
	}
}

func TestKeysAreHashedNotRaw(t *testing.T) {
	store, mr := testStore(t)
	ctx := context.Background()

	token := "raw-refresh-token-value"
	if err := store.Persist(ctx, token, "uid-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	for _, key := range mr.Keys() {
		if key == "agrt:"+token {
			t.Fatal("raw token used as a Redis key")
		}
	}
}

func TestRedisDownIsUnavailableError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewStore(client, "agrt")
	mr.Close()

	ctx := context.Background()
	if err := store.Persist(ctx, "tok-1", "uid-1", time.Now().Add(time.Hour)); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Persist: got %v", err)
	}
	if _, err := store.Exists(ctx, "tok-1"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Exists: got %v", err)
	}
	if err := store.Delete(ctx, "tok-1"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Delete: got %v", err)
	}
}
