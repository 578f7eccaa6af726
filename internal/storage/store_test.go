package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// exerciseStore runs the same contract against any PreferenceStore.
func exerciseStore(t *testing.T, store PreferenceStore) {
	t.Helper()
	ctx := context.Background()
	sessionID := uuid.NewString()
	other := uuid.NewString()

	if _, found, err := store.GetPreference(ctx, sessionID, KeySelectedCity); err != nil || found {
		t.Fatalf("GetPreference on empty store = found %v, err %v", found, err)
	}

	if err := store.SetPreference(ctx, sessionID, KeySelectedCity, "Hyderabad"); err != nil {
		t.Fatalf("SetPreference error: %v", err)
	}
	if err := store.SetPreference(ctx, sessionID, KeySelectedCity, "Guntur"); err != nil {
		t.Fatalf("SetPreference overwrite error: %v", err)
	}
	got, found, err := store.GetPreference(ctx, sessionID, KeySelectedCity)
	if err != nil || !found || got != "Guntur" {
		t.Fatalf("GetPreference = (%q, %v, %v), want (Guntur, true, nil)", got, found, err)
	}

	if _, found, _ := store.GetPreference(ctx, other, KeySelectedCity); found {
		t.Error("preference leaked across sessions")
	}

	if err := store.DeletePreference(ctx, sessionID, KeySelectedCity); err != nil {
		t.Fatalf("DeletePreference error: %v", err)
	}
	if _, found, _ := store.GetPreference(ctx, sessionID, KeySelectedCity); found {
		t.Error("preference still present after delete")
	}
	if err := store.DeletePreference(ctx, sessionID, KeyToken); err != nil {
		t.Errorf("DeletePreference of missing key error: %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		t.Errorf("Ping error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	ctx := context.Background()
	if err := store.SetPreference(ctx, "s", KeyToken, "tok"); err != nil {
		t.Fatalf("SetPreference error: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if _, found, _ := store.GetPreference(ctx, "s", KeyToken); found {
		t.Error("preference survived past its TTL")
	}
}

func TestSessionLookupTreatsEmptyAsAbsent(t *testing.T) {
	store := NewMemoryStore(0)
	session := ForSession(store, "abc")
	ctx := context.Background()

	if err := session.Set(ctx, KeySelectedCity, ""); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, found, err := session.Lookup(ctx, KeySelectedCity); found || err != nil {
		t.Errorf("Lookup of empty value = found %v, err %v; want absent", found, err)
	}

	if err := session.Set(ctx, KeySelectedCity, "Chennai"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if v, found, _ := session.Lookup(ctx, KeySelectedCity); !found || v != "Chennai" {
		t.Errorf("Lookup = (%q, %v), want (Chennai, true)", v, found)
	}
	if session.ID() != "abc" {
		t.Errorf("ID = %q, want abc", session.ID())
	}
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping PostgreSQL preference store test")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("pgxpool.New error: %v", err)
	}
	defer pool.Close()

	store := NewPostgresStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema error: %v", err)
	}
	exerciseStore(t, store)
}
