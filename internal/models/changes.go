package models

// FieldChange carries the before/after pair for one tracked attribute.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// DiffRow is one changed product: at least one tracked attribute differs
// between the original and working snapshots.
type DiffRow struct {
	ProductID string        `json:"product_id"`
	Changes   []FieldChange `json:"changes"`
}

func (d DiffRow) Changed(field string) bool {
	for _, c := range d.Changes {
		if c.Field == field {
			return true
		}
	}
	return false
}
