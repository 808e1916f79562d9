package model

import "time"

// Category is a row in the `categories` table.  Names are unique.
// Deleting a category is a hard delete and does not cascade to books;
// orphaned category references on books are tolerated.
type Category struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
