package handler

import (
	"regexp"
	"strings"
	"time"
)

// FieldError is a single failed validation, returned to the client in
// the errors array of the response envelope.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var isbnPattern = regexp.MustCompile(`^(?:\d{10}|\d{13})$`)

// ValidISBN reports whether s is a plain 10 or 13 digit ISBN.
// Hyphenated forms are rejected; clients are expected to normalize.
func ValidISBN(s string) bool {
	return isbnPattern.MatchString(s)
}

// BookInput is the create/update payload for a book.  Pointers are
// not used: updates send the full document, matching the API contract.
type BookInput struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	ISBN            string  `json:"isbn"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	PublicationYear *uint16 `json:"publicationYear"`
	Publisher       string  `json:"publisher"`
	TotalCopies     int     `json:"totalCopies"`
	AvailableCopies *int    `json:"availableCopies"`
	Location        string  `json:"location"`
	CoverImage      string  `json:"coverImage"`
}

// ValidateBookInput checks the payload against the catalog rules and
// returns every violation rather than stopping at the first.
func ValidateBookInput(in *BookInput) []FieldError {
	var errs []FieldError

	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.ISBN = strings.TrimSpace(in.ISBN)
	in.Category = strings.TrimSpace(in.Category)
	in.Location = strings.TrimSpace(in.Location)

	switch {
	case in.Title == "":
		errs = append(errs, FieldError{"title", "Title is required"})
	case len(in.Title) > 100:
		errs = append(errs, FieldError{"title", "Title cannot exceed 100 characters"})
	}

	switch {
	case in.Author == "":
		errs = append(errs, FieldError{"author", "Author is required"})
	case len(in.Author) > 50:
		errs = append(errs, FieldError{"author", "Author name cannot exceed 50 characters"})
	}

	switch {
	case in.ISBN == "":
		errs = append(errs, FieldError{"isbn", "ISBN is required"})
	case !ValidISBN(in.ISBN):
		errs = append(errs, FieldError{"isbn", "Please provide a valid ISBN (10 or 13 digits)"})
	}

	if in.Category == "" {
		errs = append(errs, FieldError{"category", "Category is required"})
	}

	if len(in.Description) > 500 {
		errs = append(errs, FieldError{"description", "Description cannot exceed 500 characters"})
	}

	if in.PublicationYear != nil {
		y := int(*in.PublicationYear)
		if y < 1800 || y > time.Now().UTC().Year() {
			errs = append(errs, FieldError{"publicationYear", "Please provide a valid publication year"})
		}
	}

	if in.TotalCopies < 1 {
		errs = append(errs, FieldError{"totalCopies", "Must have at least 1 copy"})
	}

	if in.AvailableCopies != nil {
		if *in.AvailableCopies < 0 {
			errs = append(errs, FieldError{"availableCopies", "Available copies cannot be negative"})
		} else if in.TotalCopies >= 1 && *in.AvailableCopies > in.TotalCopies {
			errs = append(errs, FieldError{"availableCopies", "Available copies cannot exceed total copies"})
		}
	}

	if in.Location == "" {
		errs = append(errs, FieldError{"location", "Book location is required"})
	}

	return errs
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterInput is the self-service registration payload.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// ValidateRegisterInput checks the registration rules.
func ValidateRegisterInput(in *RegisterInput) []FieldError {
	var errs []FieldError

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	switch {
	case in.Name == "":
		errs = append(errs, FieldError{"name", "Name is required"})
	case len(in.Name) > 50:
		errs = append(errs, FieldError{"name", "Name cannot exceed 50 characters"})
	}

	switch {
	case in.Email == "":
		errs = append(errs, FieldError{"email", "Email is required"})
	case !emailPattern.MatchString(in.Email):
		errs = append(errs, FieldError{"email", "Please provide a valid email"})
	}

	if len(in.Password) < 6 {
		errs = append(errs, FieldError{"password", "Password must be at least 6 characters"})
	}

	return errs
}

// ValidDueDate reports whether due is strictly in the future relative
// to now.  Both sides are compared in UTC.
func ValidDueDate(due, now time.Time) bool {
	return due.UTC().After(now.UTC())
}

// BorrowInput is the borrow creation payload.  The due date is
// caller-supplied; there is no server-side default loan period.
type BorrowInput struct {
	BookID  uint64    `json:"bookId"`
	DueDate time.Time `json:"dueDate"`
	Notes   string    `json:"notes"`
}

// ValidateBorrowInput checks the borrow payload: the book reference is
// required and the due date must parse and lie strictly after now.
func ValidateBorrowInput(in *BorrowInput, now time.Time) []FieldError {
	var errs []FieldError
	if in.BookID == 0 {
		errs = append(errs, FieldError{"bookId", "Book ID is required"})
	}
	switch {
	case in.DueDate.IsZero():
		errs = append(errs, FieldError{"dueDate", "Please provide a valid due date"})
	case !ValidDueDate(in.DueDate, now):
		errs = append(errs, FieldError{"dueDate", "Due date must be in the future"})
	}
	return errs
}
