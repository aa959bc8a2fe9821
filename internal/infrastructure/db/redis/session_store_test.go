package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testStore(t *testing.T) *SessionStore {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client, err := Connect(context.Background(), Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client)
}

func TestSessionStore_Lifecycle(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	token := uuid.NewString()

	if _, found, err := store.Lookup(ctx, token); err != nil || found {
		t.Fatalf("expected no session, got found=%v err=%v", found, err)
	}
	if err := store.Save(ctx, token, 42, time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}
	id, found, err := store.Lookup(ctx, token)
	if err != nil || !found || id != 42 {
		t.Fatalf("expected user 42, got %d found=%v err=%v", id, found, err)
	}
	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := store.Lookup(ctx, token); found {
		t.Fatal("session survived delete")
	}
}

func TestSessionStore_Key(t *testing.T) {
	s := &SessionStore{}
	if got := s.key("abc"); got != "session:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}
