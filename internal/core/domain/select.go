package domain

// SelectOption is the minimal id/label projection used to populate
// cross-entity pickers (author dropdowns, category dropdowns, and so on).
type SelectOption struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}
