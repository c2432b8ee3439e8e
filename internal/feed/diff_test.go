package feed

import (
	"testing"

	"github.com/eighttenaric/gmc-editor/internal/models"
)

func sampleRows() []models.ProductRow {
	return []models.ProductRow{
		{
			ProductID:             "online:en:US:sku-1",
			Title:                 "Red Shoes",
			Description:           "Comfortable red shoes",
			ProductType:           "Apparel > Shoes",
			GoogleProductCategory: "Apparel & Accessories > Shoes",
			Link:                  "https://shop.example/sku-1",
		},
		{
			ProductID:             "online:en:US:sku-2",
			Title:                 "Blue Hat",
			Description:           "A hat, blue",
			ProductType:           "Apparel > Hats",
			GoogleProductCategory: "Apparel & Accessories > Hats",
			Link:                  "https://shop.example/sku-2",
		},
		{
			ProductID:             "online:en:US:sku-3",
			Title:                 "Green Socks",
			Description:           "Warm socks",
			ProductType:           "Apparel > Socks",
			GoogleProductCategory: "Apparel & Accessories > Socks",
			Link:                  "https://shop.example/sku-3",
		},
	}
}

func TestDiffIdenticalSnapshots(t *testing.T) {
	original := models.NewSnapshot(sampleRows())
	working := original.Clone()

	diff := Diff(original, working)
	if len(diff) != 0 {
		t.Errorf("expected empty diff for identical snapshots, got %d rows", len(diff))
	}
}

func TestDiffDetectsChangedFields(t *testing.T) {
	original := models.NewSnapshot(sampleRows())
	working := original.Clone()

	row, _ := working.Get("online:en:US:sku-2")
	row.Title = "Premium Blue Hat"
	row.Description = "A premium hat, still blue"
	working.Update(row)

	diff := Diff(original, working)
	if len(diff) != 1 {
		t.Fatalf("expected 1 diff row, got %d", len(diff))
	}
	if diff[0].ProductID != "online:en:US:sku-2" {
		t.Errorf("expected diff for sku-2, got %s", diff[0].ProductID)
	}
	if len(diff[0].Changes) != 2 {
		t.Fatalf("expected 2 field changes, got %d", len(diff[0].Changes))
	}

	titleChange := diff[0].Changes[0]
	if titleChange.Field != models.FieldTitle {
		t.Errorf("expected first change to be %s, got %s", models.FieldTitle, titleChange.Field)
	}
	if titleChange.Old != "Blue Hat" || titleChange.New != "Premium Blue Hat" {
		t.Errorf("unexpected title change: old=%q new=%q", titleChange.Old, titleChange.New)
	}
}

func TestDiffFollowsOriginalOrder(t *testing.T) {
	original := models.NewSnapshot(sampleRows())
	working := original.Clone()

	// Modify in reverse listing order; the diff must come back in listing order.
	for _, id := range []string{"online:en:US:sku-3", "online:en:US:sku-1"} {
		row, _ := working.Get(id)
		row.Title = row.Title + " (updated)"
		working.Update(row)
	}

	diff := Diff(original, working)
	if len(diff) != 2 {
		t.Fatalf("expected 2 diff rows, got %d", len(diff))
	}
	if diff[0].ProductID != "online:en:US:sku-1" || diff[1].ProductID != "online:en:US:sku-3" {
		t.Errorf("diff not in original listing order: %s, %s", diff[0].ProductID, diff[1].ProductID)
	}
}

func TestDiffIgnoresUnmatchedIDs(t *testing.T) {
	original := models.NewSnapshot(sampleRows())

	// Working snapshot missing sku-3 entirely.
	working := models.NewSnapshot(sampleRows()[:2])
	row, _ := working.Get("online:en:US:sku-1")
	row.GoogleProductCategory = "Apparel & Accessories > Shoes > Sneakers"
	working.Update(row)

	diff := Diff(original, working)
	if len(diff) != 1 {
		t.Fatalf("expected 1 diff row, got %d", len(diff))
	}
	if diff[0].ProductID != "online:en:US:sku-1" {
		t.Errorf("expected diff for sku-1 only, got %s", diff[0].ProductID)
	}
}

func TestSnapshotUpdateRejectsNewIDs(t *testing.T) {
	snap := models.NewSnapshot(sampleRows())

	if ok := snap.Update(models.ProductRow{ProductID: "online:en:US:sku-99"}); ok {
		t.Error("expected Update to reject a product id not in the snapshot")
	}
	if snap.Len() != 3 {
		t.Errorf("expected snapshot to keep 3 rows, got %d", snap.Len())
	}
}
