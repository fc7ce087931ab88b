package accounts

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "accounts.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "Amaya@Example.com", "Amaya")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned ID")
	}
	if created.Email != "amaya@example.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}
	if created.Deactivated() {
		t.Error("new account should be active")
	}

	byEmail, err := store.GetByEmail(ctx, "amaya@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Errorf("lookup mismatch: %q vs %q", byEmail.ID, created.ID)
	}
}

func TestCreateRejectsEmptyEmail(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Create(context.Background(), "   ", "Nobody"); err == nil {
		t.Error("expected error for empty email")
	}
}

func TestDeactivateAndReactivate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "r@example.com", "R")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stamp := time.Now()
	if err := store.Deactivate(ctx, created.ID, stamp); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.Deactivated() {
		t.Fatal("account should be deactivated")
	}

	// A second deactivation must not move the stamp.
	if err := store.Deactivate(ctx, created.ID, stamp.Add(time.Hour)); err != nil {
		t.Fatalf("second Deactivate failed: %v", err)
	}
	again, _ := store.GetByID(ctx, created.ID)
	if !again.DeletedAt.Equal(*got.DeletedAt) {
		t.Error("deactivation stamp moved on repeat call")
	}

	if err := store.Reactivate(ctx, created.ID); err != nil {
		t.Fatalf("Reactivate failed: %v", err)
	}
	restored, _ := store.GetByID(ctx, created.ID)
	if restored.Deactivated() {
		t.Error("account should be active after reactivation")
	}
}

func TestDeactivateMissingAccount(t *testing.T) {
	store := openTestStore(t)
	err := store.Deactivate(context.Background(), "no-such-id", time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	expired, _ := store.Create(ctx, "old@example.com", "Old")
	recent, _ := store.Create(ctx, "new@example.com", "New")
	active, _ := store.Create(ctx, "live@example.com", "Live")

	if err := store.Deactivate(ctx, expired.ID, now.Add(-40*24*time.Hour)); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	if err := store.Deactivate(ctx, recent.ID, now.Add(-5*24*time.Hour)); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	removed, err := store.Sweep(ctx, now.Add(-30*24*time.Hour))
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removal, got %d", removed)
	}

	if _, err := store.GetByID(ctx, expired.ID); !errors.Is(err, ErrNotFound) {
		t.Error("expired account should be gone")
	}
	if _, err := store.GetByID(ctx, recent.ID); err != nil {
		t.Errorf("recently deactivated account should survive: %v", err)
	}
	if _, err := store.GetByID(ctx, active.ID); err != nil {
		t.Errorf("active account should survive: %v", err)
	}
}

func TestSweeperSweepOnce(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	doomed, _ := store.Create(ctx, "d@example.com", "D")
	if err := store.Deactivate(ctx, doomed.ID, time.Now().Add(-31*24*time.Hour)); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	sweeper := NewSweeper(store, 30*24*time.Hour, time.Hour, nil)
	removed, err := sweeper.SweepOnce(ctx)
	if err != nil {
		t.Fatalf("SweepOnce failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removal, got %d", removed)
	}
}
