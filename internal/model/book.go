package model

import "time"

// Book represents a catalog entry as stored in the `books` table.
// A book tracks two counters: the total number of physical copies the
// library owns and the number currently on the shelf.  The invariant
// 0 <= AvailableCopies <= TotalCopies must hold after every borrow and
// return; repositories enforce it with guarded UPDATE statements.
//
// Books are never removed physically.  Deleting a book flips IsActive
// so that existing borrow records keep a valid reference.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – book title (at most 100 characters).
//  Author          – author name (at most 50 characters).
//  ISBN            – unique 10 or 13 digit ISBN.
//  CategoryID      – reference into the categories table.
//  CategoryName    – joined display name, populated on reads.
//  Description     – optional blurb (at most 500 characters).
//  PublicationYear – optional, 1800 up to the current year.
//  Publisher       – optional publisher name.
//  TotalCopies     – copies owned, at least 1.
//  AvailableCopies – copies currently on the shelf.
//  Location        – shelf location inside the library.
//  CoverImage      – cover image URL.
//  IsActive        – soft-delete marker.
type Book struct {
	ID              uint64     `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            string     `json:"isbn"`
	CategoryID      uint64     `json:"category_id"`
	CategoryName    string     `json:"category_name,omitempty"`
	Description     string     `json:"description,omitempty"`
	PublicationYear *uint16    `json:"publication_year,omitempty"`
	Publisher       string     `json:"publisher,omitempty"`
	TotalCopies     uint32     `json:"total_copies"`
	AvailableCopies uint32     `json:"available_copies"`
	Location        string     `json:"location"`
	CoverImage      string     `json:"cover_image"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsAvailable reports whether at least one copy is on the shelf.
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}
