package feed

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/eighttenaric/gmc-editor/internal/models"
	"github.com/xuri/excelize/v2"
)

func TestWriteBackupCreatesWorkbook(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	snap := models.NewSnapshot(sampleRows())

	path, err := WriteBackup(dir, "123456", snap)
	if err != nil {
		t.Fatalf("backup failed: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "feed_123456_") || !strings.HasSuffix(name, ".xlsx") {
		t.Errorf("unexpected backup filename: %s", name)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("backup is not a readable workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	// Header plus one line per product.
	if len(rows) != snap.Len()+1 {
		t.Fatalf("expected %d rows, got %d", snap.Len()+1, len(rows))
	}
	if rows[1][0] != "online:en:US:sku-1" {
		t.Errorf("expected the first product in listing order, got %q", rows[1][0])
	}
}
