package catalog

import "time"

// Story is one catalog record. Media files for a story are addressed by its
// numeric ID under the library directory.
type Story struct {
	ID        int64
	Slug      string
	Title     string
	Week      int // gestation week the story is written for
	Summary   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
