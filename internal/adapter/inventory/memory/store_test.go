package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"runemind/internal/app/ports"
)

var _ ports.InventoryStore = (*Store)(nil)

func TestStore_AddCountRemove(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.Add(ctx, "shrimp", 5); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Add(ctx, "shrimp", 2); err != nil {
		t.Fatalf("Add again: %v", err)
	}
	if got, _ := store.Count(ctx, "shrimp"); got != 7 {
		t.Fatalf("Count = %d, want 7", got)
	}

	if err := store.Remove(ctx, "shrimp", 3); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got, _ := store.Count(ctx, "shrimp"); got != 4 {
		t.Fatalf("Count after remove = %d, want 4", got)
	}
}

func TestStore_NormalizesItemNames(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.Add(ctx, "  Bronze Axe ", 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got, _ := store.Count(ctx, "bronze axe"); got != 1 {
		t.Fatalf("Count = %d, want 1 under the normalized name", got)
	}
	items, _ := store.Items(ctx)
	if _, ok := items["bronze axe"]; !ok {
		t.Fatalf("Items = %v, want lowercase trimmed key", items)
	}
}

func TestStore_RemoveInsufficientIsConflict(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.Add(ctx, "logs", 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	err := store.Remove(ctx, "logs", 3)
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("Remove beyond held = %v, want ports.ErrConflict", err)
	}
}

func TestStore_RemoveToZeroFreesSlot(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.Add(ctx, "bond", 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Remove(ctx, "bond", 1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	items, _ := store.Items(ctx)
	if len(items) != 0 {
		t.Fatalf("Items = %v, want empty after removing the whole stack", items)
	}
}

func TestStore_SlotCap(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for i := 0; i < 28; i++ {
		if err := store.Add(ctx, fmt.Sprintf("item-%d", i), 1); err != nil {
			t.Fatalf("Add item-%d: %v", i, err)
		}
	}
	err := store.Add(ctx, "one too many", 1)
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("Add past slot cap = %v, want ports.ErrConflict", err)
	}
	// Stacking onto a held item needs no free slot.
	if err := store.Add(ctx, "item-0", 10); err != nil {
		t.Fatalf("Add to existing stack: %v", err)
	}
}

func TestStore_SeedDropsNonPositiveCounts(t *testing.T) {
	store := NewStore()
	store.Seed(map[string]int{"Shrimp": 3, "ash": 0})

	items, _ := store.Items(context.Background())
	if len(items) != 1 || items["shrimp"] != 3 {
		t.Fatalf("Items = %v, want only shrimp x3", items)
	}
}
