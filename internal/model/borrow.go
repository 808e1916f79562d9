package model

import "time"

// Borrow status values.  A borrow starts as StatusBorrowed, is derived
// to StatusOverdue once its due date passes without a return, and
// reaches StatusReturned only through an explicit admin return action.
const (
	StatusBorrowed = "borrowed"
	StatusOverdue  = "overdue"
	StatusReturned = "returned"
)

// FinePerDay is the flat fee charged for every started day a borrow
// stays out past its due date.  There is no cap and no grace period.
const FinePerDay = 1

// Borrow records one user holding one copy of one book between a
// borrow date and an optional return date.  It mirrors the `borrows`
// table.  ReturnDate is set if and only if Status is returned, and
// Fine stays zero until the due date has passed.
//
// The overdue transition is lazy: nothing sweeps the table in the
// background.  Whenever a borrow is read or listed, ApplyOverdueAt
// derives the current status and fine from the due date.
type Borrow struct {
	ID         uint64     `json:"id"`
	UserID     uint64     `json:"user_id"`
	BookID     uint64     `json:"book_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     string     `json:"status"`
	Fine       int64      `json:"fine"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// DaysOverdueAt returns the number of started days between the due
// date and asOf, floored at zero.  A borrow one hour past due already
// counts one full day, matching the ceil in the fine formula.
func (b *Borrow) DaysOverdueAt(asOf time.Time) int64 {
	late := asOf.Sub(b.DueDate)
	if late <= 0 {
		return 0
	}
	days := int64(late / (24 * time.Hour))
	if late%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// FineAt computes the fine owed as of the given instant.  Returned
// borrows keep the fine frozen at return time; everything else accrues
// FinePerDay per started overdue day.  The result is monotonic
// non-decreasing until the book comes back.
func (b *Borrow) FineAt(asOf time.Time) int64 {
	if b.Status == StatusReturned {
		return b.Fine
	}
	return b.DaysOverdueAt(asOf) * FinePerDay
}

// ApplyOverdueAt derives the overdue state of the borrow as of the
// given instant.  An active borrow past its due date becomes overdue
// and its fine is recomputed.  Returned borrows are never touched.
// The derivation is pure in-memory state; callers decide whether to
// persist it (listing endpoints do not).
func (b *Borrow) ApplyOverdueAt(asOf time.Time) {
	if b.Status == StatusReturned {
		return
	}
	if asOf.After(b.DueDate) {
		b.Status = StatusOverdue
		b.Fine = b.FineAt(asOf)
	}
}

// IsActive reports whether the borrow still holds a copy, i.e. the
// book has not been returned yet.
func (b *Borrow) IsActive() bool {
	return b.Status == StatusBorrowed || b.Status == StatusOverdue
}
