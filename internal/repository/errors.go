// Package repository implements the persistence layer on top of a
// shared *sql.DB handle.  This file defines sentinel error values
// reused across repositories so handlers can map failure scenarios to
// HTTP responses without string matching.  Not-found cases are
// reported as sql.ErrNoRows.
package repository

import "errors"

// ErrISBNExists is returned when creating a book whose ISBN is already
// present in the catalog.  Handlers translate it into a 400 with the
// duplicate-ISBN message.
var ErrISBNExists = errors.New("isbn already exists")

// ErrEmailExists is returned when registering a user with an email
// that is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrCategoryExists is returned when creating a category whose name is
// already present.
var ErrCategoryExists = errors.New("category already exists")

// ErrAlreadyReturned is returned when returning a borrow that has
// already been finalized.  The fine and book counters stay untouched.
var ErrAlreadyReturned = errors.New("already returned")
