package api

// CalculateRequest asks for one month's bill
type CalculateRequest struct {
	// Month and Year identify the month; both zero means the previous month
	Month int `json:"month"`
	Year  int `json:"year"`

	// Log persists the result as a bill log
	Log bool `json:"log"`
}

// PaperRequest creates or edits a paper
type PaperRequest struct {
	// Name is the paper name
	Name string `json:"name"`

	// DeliveryDays is the seven-character Y/N flag string, Monday-first
	DeliveryDays string `json:"delivery_days"`

	// Prices are the per-day prices for the delivered weekdays, in weekday
	// order, as decimal strings
	Prices []string `json:"prices"`
}

// UndeliveredRequest records undelivered strings
type UndeliveredRequest struct {
	// Month and Year identify the month
	Month int `json:"month"`
	Year  int `json:"year"`

	// PaperID is the target paper; empty means every paper
	PaperID string `json:"paper_id,omitempty"`

	// Strings are the raw undelivered strings
	Strings []string `json:"strings"`
}

// DeleteUndeliveredRequest filters strings to delete
type DeleteUndeliveredRequest struct {
	ID      string `json:"id,omitempty"`
	PaperID string `json:"paper_id,omitempty"`
	Month   int    `json:"month,omitempty"`
	Year    int    `json:"year,omitempty"`
	Value   string `json:"value,omitempty"`
}
