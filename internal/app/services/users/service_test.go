package users

import (
	"context"
	"errors"
	"testing"

	"github.com/R3E-Network/commerce_layer/internal/app/domain/user"
	"github.com/R3E-Network/commerce_layer/internal/app/storage"
	"github.com/R3E-Network/commerce_layer/internal/app/storage/memory"
	"github.com/R3E-Network/commerce_layer/pkg/logger"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), logger.Discard())

	alice, err := svc.Create(ctx, "Alice", "alice@example.com", 30)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if alice.ID == "" {
		t.Fatalf("expected id to be generated")
	}
	bob, err := svc.Create(ctx, "Bob", "bob@example.com", 41)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if bob.ID == alice.ID {
		t.Fatalf("expected distinct ids")
	}

	age := 31
	patched, err := svc.Patch(ctx, alice.ID, user.Patch{Age: &age})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if patched.Age != 31 || patched.Email != "alice@example.com" || patched.Name != "Alice" {
		t.Fatalf("patch touched unrelated fields: %+v", patched)
	}
	if !patched.UpdatedAt.After(alice.UpdatedAt) {
		t.Fatalf("patch must advance updatedAt")
	}

	replaced, err := svc.Replace(ctx, bob.ID, "Robert", "robert@example.com", 42)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if replaced.Name != "Robert" || !replaced.CreatedAt.Equal(bob.CreatedAt) {
		t.Fatalf("unexpected replace result: %+v", replaced)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != alice.ID || list[1].ID != bob.ID {
		t.Fatalf("expected insertion order, got %v", list)
	}
}

func TestService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), logger.Discard())

	if _, err := svc.Create(ctx, "", "x@example.com", 1); !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser for empty name, got %v", err)
	}
	if _, err := svc.Create(ctx, "X", "not-an-email", 1); !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser for bad email, got %v", err)
	}
	if _, err := svc.Create(ctx, "X", "x@example.com", -1); !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser for negative age, got %v", err)
	}
	if _, err := svc.Patch(ctx, "missing", user.Patch{}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if deleted, err := svc.Delete(ctx, "missing"); err != nil || deleted {
		t.Fatalf("expected (false, nil), got (%v, %v)", deleted, err)
	}
}
