package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/eighttenaric/gmc-editor/internal/models"
	"github.com/xuri/excelize/v2"
)

// WriteBackup persists a snapshot as a timestamped workbook in dir, creating
// the directory if absent. Returns the written file path.
func WriteBackup(dir, accountID string, snap models.Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Sheet1"

	headerStyleID, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#274E13"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})

	type header struct {
		col   string
		value string
	}
	headers := []header{
		{"A", "Product ID"},
		{"B", "Link"},
		{"C", "Title"},
		{"D", "Description"},
		{"E", "Product Type"},
		{"F", "Google Product Category"},
	}

	colMaxWidth := make(map[string]float64)
	for _, h := range headers {
		f.SetCellValue(sheetName, h.col+"1", h.value)
		colMaxWidth[h.col] = float64(len([]rune(h.value)))
	}
	f.SetCellStyle(sheetName, "A1", "F1", headerStyleID)

	for i, p := range snap.List() {
		row := strconv.Itoa(i + 2)

		trackWidth := func(col, value string) {
			f.SetCellValue(sheetName, col+row, value)
			if w := float64(len([]rune(value))); w > colMaxWidth[col] {
				colMaxWidth[col] = w
			}
		}

		trackWidth("A", p.ProductID)
		trackWidth("B", p.Link)
		trackWidth("C", p.Title)
		trackWidth("D", p.Description)
		trackWidth("E", p.ProductType)
		trackWidth("F", p.GoogleProductCategory)
	}

	// Auto-fit column widths with padding, capped so descriptions don't
	// blow the sheet up.
	for col, maxW := range colMaxWidth {
		width := maxW*1.2 + 4
		if width < 8 {
			width = 8
		}
		if width > 80 {
			width = 80
		}
		f.SetColWidth(sheetName, col, col, width)
	}

	lastRow := snap.Len() + 1
	f.AutoFilter(sheetName, fmt.Sprintf("A1:F%d", lastRow), nil)

	name := fmt.Sprintf("feed_%s_%s.xlsx", accountID, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write backup workbook: %w", err)
	}
	f.Close()

	return path, nil
}
