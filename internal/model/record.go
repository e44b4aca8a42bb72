package model

import (
	"strings"
	"time"
)

// Record is an entity owning one ordered array of storage paths.
// Paths are unique storage keys in upload order; the slice is rewritten wholesale on every
// save that carries a new batch.
type Record struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Paths     []string  `json:"paths"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UploadedText renders the array the way the admin detail page shows it:
// one path per line, or "-" when the array is empty.
func (r *Record) UploadedText() string {
	if r == nil || len(r.Paths) == 0 {
		return "-"
	}
	return strings.Join(r.Paths, "\n")
}
