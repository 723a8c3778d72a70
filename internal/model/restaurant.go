package model

// Restaurant is an entry of the read-only restaurant catalog.  The
// catalog is a static lookup table; nothing in the booking workflow
// mutates it.
type Restaurant struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	ImageRef    string `json:"image_ref"`
	Popularity  int    `json:"popularity"` // 1 to 5 stars
	Address     string `json:"address"`
	Description string `json:"description"`
}
