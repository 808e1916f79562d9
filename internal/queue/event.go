// Package queue defines message payloads exchanged over the message broker.
package queue

// CirculationEvent is published whenever a borrow is created or a book
// comes back.  It carries enough display information for downstream
// consumers (audit log, notifications, analytics) to act without
// querying the primary database.  Type is "borrow.created" or
// "book.returned"; Fine is only meaningful on returns.
type CirculationEvent struct {
	Type             string `json:"type"`
	BorrowID         uint64 `json:"borrow_id"`
	UserID           uint64 `json:"user_id"`
	UserName         string `json:"user_name"`
	MembershipNumber string `json:"membership_number"`
	BookID           uint64 `json:"book_id"`
	BookTitle        string `json:"book_title"`
	ISBN             string `json:"isbn"`
	DueDate          string `json:"due_date"`
	ReturnDate       string `json:"return_date,omitempty"`
	Fine             int64  `json:"fine"`
	OccurredAt       string `json:"occurred_at"`
}

// Event type values for CirculationEvent.Type.
const (
	EventBorrowCreated = "borrow.created"
	EventBookReturned  = "book.returned"
)
