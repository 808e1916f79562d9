package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var due = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func activeBorrow() Borrow {
	return Borrow{
		ID:         1,
		UserID:     7,
		BookID:     42,
		BorrowDate: due.AddDate(0, 0, -14),
		DueDate:    due,
		Status:     StatusBorrowed,
	}
}

func TestFineIsZeroBeforeDueDate(t *testing.T) {
	b := activeBorrow()

	assert.EqualValues(t, 0, b.FineAt(due.Add(-48*time.Hour)))
	assert.EqualValues(t, 0, b.FineAt(due)) // exactly on the due date is not late
}

func TestFineAccruesPerOverdueDay(t *testing.T) {
	b := activeBorrow()

	assert.EqualValues(t, 3*FinePerDay, b.FineAt(due.Add(3*24*time.Hour)))
	assert.EqualValues(t, 5*FinePerDay, b.FineAt(due.Add(5*24*time.Hour)))
}

func TestFineRoundsPartialDaysUp(t *testing.T) {
	b := activeBorrow()

	// One hour late already counts as a full day.
	assert.EqualValues(t, 1, b.DaysOverdueAt(due.Add(time.Hour)))
	assert.EqualValues(t, 3, b.DaysOverdueAt(due.Add(2*24*time.Hour+time.Minute)))
}

func TestApplyOverdueTransitionsActiveBorrow(t *testing.T) {
	b := activeBorrow()

	b.ApplyOverdueAt(due.Add(-time.Hour))
	assert.Equal(t, StatusBorrowed, b.Status)
	assert.EqualValues(t, 0, b.Fine)

	b.ApplyOverdueAt(due.Add(5 * 24 * time.Hour))
	assert.Equal(t, StatusOverdue, b.Status)
	assert.EqualValues(t, 5, b.Fine)
}

func TestApplyOverdueRecomputesFineOnLaterReads(t *testing.T) {
	b := activeBorrow()

	b.ApplyOverdueAt(due.Add(2 * 24 * time.Hour))
	assert.EqualValues(t, 2, b.Fine)

	// Fine is monotonic non-decreasing while the book stays out.
	b.ApplyOverdueAt(due.Add(6 * 24 * time.Hour))
	assert.EqualValues(t, 6, b.Fine)
}

func TestReturnedBorrowKeepsFrozenFine(t *testing.T) {
	b := activeBorrow()
	returned := due.Add(7 * 24 * time.Hour)

	// Finalize the way the return handler does: freeze fine, set status.
	b.Fine = b.FineAt(returned)
	b.Status = StatusReturned
	b.ReturnDate = &returned
	assert.EqualValues(t, 7, b.Fine)

	// Neither derivation nor fine computation moves after return.
	b.ApplyOverdueAt(returned.Add(30 * 24 * time.Hour))
	assert.Equal(t, StatusReturned, b.Status)
	assert.EqualValues(t, 7, b.FineAt(returned.Add(30*24*time.Hour)))
}

func TestIsActive(t *testing.T) {
	b := activeBorrow()
	assert.True(t, b.IsActive())

	b.Status = StatusOverdue
	assert.True(t, b.IsActive())

	b.Status = StatusReturned
	assert.False(t, b.IsActive())
}
