package feed

import "github.com/eighttenaric/gmc-editor/internal/models"

// Diff inner-joins two snapshots on product id and returns the rows where at
// least one tracked attribute differs (strict inequality), carrying both old
// and new values. Ids present in only one snapshot are silently excluded;
// output follows the original snapshot's listing order.
func Diff(original, working models.Snapshot) []models.DiffRow {
	var diff []models.DiffRow

	for _, id := range original.Order {
		oldRow := original.Rows[id]
		newRow, ok := working.Get(id)
		if !ok {
			continue
		}

		var changes []models.FieldChange
		for _, field := range models.TrackedFields {
			oldVal, newVal := oldRow.Tracked(field), newRow.Tracked(field)
			if oldVal != newVal {
				changes = append(changes, models.FieldChange{
					Field: field,
					Old:   oldVal,
					New:   newVal,
				})
			}
		}

		if len(changes) > 0 {
			diff = append(diff, models.DiffRow{ProductID: id, Changes: changes})
		}
	}

	return diff
}
