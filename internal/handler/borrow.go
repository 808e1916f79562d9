package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Shrutis65143/Booqly/internal/model"
	"github.com/Shrutis65143/Booqly/internal/queue"
	"github.com/Shrutis65143/Booqly/internal/repository"
	queuepublisher "github.com/Shrutis65143/Booqly/internal/service"
)

// BorrowHandler drives the circulation lifecycle: creating borrows,
// taking returns, and the listing/overdue/stats views.  Borrow and
// return each run inside one database transaction so the borrow row
// and the book's available-copies counter always move together.
type BorrowHandler struct {
	Borrows *repository.BorrowRepo
	Books   *repository.BookRepo
}

// NewBorrowHandler builds a BorrowHandler.
func NewBorrowHandler(borrows *repository.BorrowRepo, books *repository.BookRepo) *BorrowHandler {
	return &BorrowHandler{Borrows: borrows, Books: books}
}

// Create borrows a book for the authenticated user.  Inside one
// transaction: the book must exist and be active, a copy is claimed
// with a conditional decrement (the availability check under
// concurrency), and a second active borrow of the same book by the
// same user is rejected.  The due date must lie in the future.
func (h *BorrowHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized, token failed"})
	}

	var in BorrowInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if errs := ValidateBorrowInput(&in, time.Now().UTC()); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Validation failed", "errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Borrows.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not start borrow"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	ok, err := h.Books.ExistsActiveTx(ctx, tx, in.BookID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not start borrow"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Book not found"})
	}

	claimed, err := h.Books.DecrementAvailableTx(ctx, tx, in.BookID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not start borrow"})
	}
	if !claimed {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Book is not available for borrowing"})
	}

	active, err := h.Borrows.HasActiveTx(ctx, tx, userID, in.BookID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not start borrow"})
	}
	if active {
		// Rollback gives the claimed copy back.
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "You already have this book borrowed"})
	}

	b := model.Borrow{UserID: userID, BookID: in.BookID, DueDate: in.DueDate.UTC(), Notes: in.Notes}
	if err := h.Borrows.CreateTx(ctx, tx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not create borrow"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not create borrow"})
	}
	committed = true

	detail, err := h.Borrows.GetDetail(ctx, b.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not load borrow"})
	}
	h.publishEvent(queue.EventBorrowCreated, detail)

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": detail})
}

// Return takes a book back.  The borrow row is locked for the duration
// of the transaction, the fine is computed from the due date and
// frozen, and the copy goes back on the shelf.  Returning twice is
// rejected.  Admin only.
func (h *BorrowHandler) Return(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid borrow id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Borrows.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not process return"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := h.Borrows.GetForReturnTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Borrow record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not process return"})
	}
	if b.Status == model.StatusReturned {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Book is already returned"})
	}

	now := time.Now().UTC()
	fine := b.FineAt(now)

	if err := h.Borrows.MarkReturnedTx(ctx, tx, id, now, fine); err != nil {
		if errors.Is(err, repository.ErrAlreadyReturned) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Book is already returned"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not process return"})
	}
	if err := h.Books.IncrementAvailableTx(ctx, tx, b.BookID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not process return"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not process return"})
	}
	committed = true

	detail, err := h.Borrows.GetDetail(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not load borrow"})
	}
	h.publishEvent(queue.EventBookReturned, detail)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": detail})
}

// List returns borrows, newest first.  Regular users see only their
// own records; admins see everyone's and may filter by user and
// status.  Overdue state is derived per row at read time.
func (h *BorrowHandler) List(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized, token failed"})
	}

	opts := repository.BorrowListOptions{
		UserID: callerID,
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	}
	if isAdmin(c) {
		opts.UserID = uint64(queryInt(c, "user", 0)) // zero means all users
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, total, err := h.Borrows.List(ctx, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not list borrows"})
	}
	now := time.Now().UTC()
	for i := range details {
		details[i].ApplyOverdueAt(now)
	}

	return c.JSON(http.StatusOK, listEnvelope(details, "totalBorrows", total, opts.Page, opts.Limit))
}

// Get returns one borrow.  Users may only read their own records;
// admins may read any.
func (h *BorrowHandler) Get(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized, token failed"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid borrow id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Borrows.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Borrow record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not load borrow"})
	}
	if detail.User.ID != callerID && !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "Not authorized to access this record"})
	}
	detail.ApplyOverdueAt(time.Now().UTC())

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": detail})
}

// Overdue lists every unreturned borrow past its due date, oldest due
// date first, with the derived status and current fine.  Nothing is
// written back.  Admin only.
func (h *BorrowHandler) Overdue(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	details, err := h.Borrows.ListOverdue(ctx, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not list overdue borrows"})
	}
	for i := range details {
		details[i].ApplyOverdueAt(now)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": details})
}

// Stats returns the all-time circulation aggregate.  Admin only.
func (h *BorrowHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Borrows.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not compute stats"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": s})
}

// publishEvent hands the event to the broker on a separate goroutine.
// Publishing is strictly best effort; a broker outage never fails the
// request that triggered the event.
func (h *BorrowHandler) publishEvent(eventType string, d repository.BorrowDetail) {
	ev := queue.CirculationEvent{
		Type:             eventType,
		BorrowID:         d.ID,
		UserID:           d.User.ID,
		UserName:         d.User.Name,
		MembershipNumber: d.User.MembershipNumber,
		BookID:           d.Book.ID,
		BookTitle:        d.Book.Title,
		ISBN:             d.Book.ISBN,
		DueDate:          d.DueDate.UTC().Format(time.RFC3339),
		Fine:             d.Fine,
		OccurredAt:       time.Now().UTC().Format(time.RFC3339),
	}
	if d.ReturnDate != nil {
		ev.ReturnDate = d.ReturnDate.UTC().Format(time.RFC3339)
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queuepublisher.PublishCirculationEvent(ctx, ev)
	}()
}
