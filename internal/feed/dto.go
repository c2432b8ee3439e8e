package feed

import "github.com/eighttenaric/gmc-editor/internal/models"

// Input DTOs

type SelectAccountInput struct {
	AccountID string `json:"account_id" form:"account_id"`
}

type OptimizeInput struct {
	// Fields limits which tracked attributes get rewritten; empty means all.
	Fields []string `json:"fields" form:"fields"`
}

type UpdateRowInput struct {
	Title                 *string `json:"title" form:"title"`
	Description           *string `json:"description" form:"description"`
	ProductType           *string `json:"product_type" form:"product_type"`
	GoogleProductCategory *string `json:"google_product_category" form:"google_product_category"`
}

// Output DTOs

type AccountsOutput struct {
	Accounts []string `json:"accounts"`
	Selected string   `json:"selected,omitempty"`
}

type FetchResult struct {
	AccountID  string `json:"account_id"`
	Products   int    `json:"products"`
	BackupPath string `json:"backup_path,omitempty"`
}

type OptimizeResult struct {
	Rows    int  `json:"rows"`
	Changed int  `json:"changed"`
	Skipped bool `json:"skipped"` // true when no language-model key is configured
}

type ReportOutput struct {
	Diff []models.DiffRow `json:"diff"`
	HTML string           `json:"-"`
}

type SyncError struct {
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
}

// SyncResult documents the best-effort policy: rows already patched before a
// failure stay patched, failures are reported per row.
type SyncResult struct {
	AccountID string      `json:"account_id"`
	Synced    int         `json:"synced"`
	Failed    []SyncError `json:"failed,omitempty"`
}
