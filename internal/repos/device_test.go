package repos

import (
	"context"
	"testing"

	"github.com/akvideo/technikliste-backend/internal/types"
)

func TestDeviceInsertListDelete(t *testing.T) {
	repo := NewDeviceRepo(newTestDB(t), newTestLogger())
	ctx := context.Background()

	price := 27.90
	devices := []types.Device{
		{Index: 2, Amount: 1, Description: "Produkt2", Location: "Medienraum", Category: "Zubehör", Brand: "Coast", Price: &price, ID: "AAAAAA"},
		{Index: 1, Amount: 1, Description: "Produkt1", Location: "Medienraum", Category: "Software", Brand: "Magix", ID: "BBBBBB"},
	}
	for i := range devices {
		if err := repo.Insert(ctx, &devices[i]); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	listed, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("list: got=%d want=2", len(listed))
	}
	if listed[0].Index != 1 || listed[1].Index != 2 {
		t.Fatalf("list not ordered by index: %v, %v", listed[0].Index, listed[1].Index)
	}
	if listed[1].Price == nil || *listed[1].Price != 27.90 {
		t.Fatalf("price roundtrip: got=%v", listed[1].Price)
	}

	ids, err := repo.IDs(ctx)
	if err != nil {
		t.Fatalf("ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids: got=%v", ids)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	listed, err = repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("list after delete: got=%d want=0", len(listed))
	}
}
