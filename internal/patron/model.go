package patron

import "time"

// Patron is the owner of fee/fine accounts. The registry keeps only what
// the fees domain needs; identity and credentials live elsewhere.
type Patron struct {
	ID        string    `json:"id"`
	Barcode   string    `json:"barcode"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
