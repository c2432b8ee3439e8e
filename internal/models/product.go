package models

// Tracked attribute names, matching the Content API field names.
const (
	FieldTitle                 = "title"
	FieldDescription           = "description"
	FieldProductType           = "productType"
	FieldGoogleProductCategory = "googleProductCategory"
)

// TrackedFields are the only attributes the editor reads, rewrites, diffs
// and pushes back. Everything else on the product is left untouched.
var TrackedFields = []string{
	FieldTitle,
	FieldDescription,
	FieldProductType,
	FieldGoogleProductCategory,
}

// ProductRow is one feed entry. ProductID is the identity; the rest is free
// text as delivered by the catalog.
type ProductRow struct {
	ProductID             string `json:"product_id"`
	Link                  string `json:"link"`
	Title                 string `json:"title"`
	Description           string `json:"description"`
	ProductType           string `json:"product_type"`
	GoogleProductCategory string `json:"google_product_category"`
}

// Tracked returns the value of a tracked attribute by field name.
func (r ProductRow) Tracked(field string) string {
	switch field {
	case FieldTitle:
		return r.Title
	case FieldDescription:
		return r.Description
	case FieldProductType:
		return r.ProductType
	case FieldGoogleProductCategory:
		return r.GoogleProductCategory
	}
	return ""
}

// SetTracked sets a tracked attribute by field name. Unknown fields are
// ignored.
func (r *ProductRow) SetTracked(field, value string) {
	switch field {
	case FieldTitle:
		r.Title = value
	case FieldDescription:
		r.Description = value
	case FieldProductType:
		r.ProductType = value
	case FieldGoogleProductCategory:
		r.GoogleProductCategory = value
	}
}
