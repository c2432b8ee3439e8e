package models

// Snapshot is an in-memory feed table keyed by product id. Order preserves
// the catalog listing order so diffs stay stable under the join.
type Snapshot struct {
	Rows  map[string]ProductRow `json:"rows"`
	Order []string              `json:"order"`
}

func NewSnapshot(rows []ProductRow) Snapshot {
	s := Snapshot{
		Rows:  make(map[string]ProductRow, len(rows)),
		Order: make([]string, 0, len(rows)),
	}
	for _, r := range rows {
		if _, exists := s.Rows[r.ProductID]; !exists {
			s.Order = append(s.Order, r.ProductID)
		}
		s.Rows[r.ProductID] = r
	}
	return s
}

func (s Snapshot) Len() int {
	return len(s.Order)
}

func (s Snapshot) Get(productID string) (ProductRow, bool) {
	r, ok := s.Rows[productID]
	return r, ok
}

// Update replaces an existing row. Rows cannot be inserted or removed: the
// working snapshot must keep the original's product-id set for the whole
// session.
func (s Snapshot) Update(row ProductRow) bool {
	if _, ok := s.Rows[row.ProductID]; !ok {
		return false
	}
	s.Rows[row.ProductID] = row
	return true
}

// List returns the rows in listing order.
func (s Snapshot) List() []ProductRow {
	rows := make([]ProductRow, 0, len(s.Order))
	for _, id := range s.Order {
		rows = append(rows, s.Rows[id])
	}
	return rows
}

func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		Rows:  make(map[string]ProductRow, len(s.Rows)),
		Order: make([]string, len(s.Order)),
	}
	copy(c.Order, s.Order)
	for id, r := range s.Rows {
		c.Rows[id] = r
	}
	return c
}
