package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Shrutis65143/Booqly/internal/model"
)

// BorrowRepo provides persistence for borrow records.  Creation and
// return always run inside a transaction shared with BookRepo so the
// borrow row and the book's available-copies counter move together.
// All timestamp columns are stored in UTC.
type BorrowRepo struct {
	db *sql.DB
}

// NewBorrowRepo returns a new BorrowRepo bound to the given database.
func NewBorrowRepo(db *sql.DB) *BorrowRepo { return &BorrowRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning borrows and books.
func (r *BorrowRepo) DB() *sql.DB { return r.db }

// BorrowUserInfo is the subset of the user record shown on borrow
// responses, matching what the client renders on loan lists.
type BorrowUserInfo struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	MembershipNumber string `json:"membership_number"`
}

// BorrowBookInfo is the subset of the book record shown on borrow
// responses.
type BorrowBookInfo struct {
	ID         uint64 `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	ISBN       string `json:"isbn"`
	CoverImage string `json:"cover_image"`
}

// BorrowDetail is a borrow joined with its user and book display
// fields.  It is what every borrow endpoint returns.
type BorrowDetail struct {
	ID         uint64         `json:"id"`
	User       BorrowUserInfo `json:"user"`
	Book       BorrowBookInfo `json:"book"`
	BorrowDate time.Time      `json:"borrow_date"`
	DueDate    time.Time      `json:"due_date"`
	ReturnDate *time.Time     `json:"return_date,omitempty"`
	Status     string         `json:"status"`
	Fine       int64          `json:"fine"`
	Notes      string         `json:"notes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ApplyOverdueAt runs the lazy overdue derivation on the joined view.
// Listing endpoints call this per row instead of sweeping the table.
func (d *BorrowDetail) ApplyOverdueAt(asOf time.Time) {
	b := model.Borrow{Status: d.Status, Fine: d.Fine, DueDate: d.DueDate}
	b.ApplyOverdueAt(asOf)
	d.Status = b.Status
	d.Fine = b.Fine
}

// detailColumns is the select list shared by every joined borrow read.
const detailColumns = `br.id, br.borrow_date, br.due_date, br.return_date, br.status, br.fine, br.notes, br.created_at,
       u.id, u.name, u.email, u.membership_number,
       b.id, b.title, b.author, b.isbn, b.cover_image`

// scanBorrowDetail scans one row produced with detailColumns.
func scanBorrowDetail(row interface{ Scan(...interface{}) error }) (BorrowDetail, error) {
	var (
		d          BorrowDetail
		returnDate sql.NullTime
		notes      sql.NullString
	)
	err := row.Scan(
		&d.ID, &d.BorrowDate, &d.DueDate, &returnDate, &d.Status, &d.Fine, &notes, &d.CreatedAt,
		&d.User.ID, &d.User.Name, &d.User.Email, &d.User.MembershipNumber,
		&d.Book.ID, &d.Book.Title, &d.Book.Author, &d.Book.ISBN, &d.Book.CoverImage,
	)
	if err != nil {
		return BorrowDetail{}, err
	}
	if returnDate.Valid {
		t := returnDate.Time
		d.ReturnDate = &t
	}
	if notes.Valid {
		d.Notes = notes.String
	}
	return d, nil
}

// HasActiveTx reports whether the user already holds an active
// (borrowed or overdue) borrow for the book, inside the borrow
// transaction.
func (r *BorrowRepo) HasActiveTx(ctx context.Context, tx *sql.Tx, userID, bookID uint64) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM borrows
		  WHERE user_id=? AND book_id=? AND status IN ('borrowed','overdue'))`,
		userID, bookID).Scan(&exists)
	return exists, err
}

// CreateTx inserts a new borrow within the scope of an existing
// transaction and populates the generated ID plus the defaulted
// borrow_date.  The caller must commit or rollback.
func (r *BorrowRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Borrow) error {
	const q = `INSERT INTO borrows (user_id, book_id, due_date, notes) VALUES (?,?,?,?)`
	res, err := tx.ExecContext(ctx, q, b.UserID, b.BookID, b.DueDate, nullStr(b.Notes))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Read back defaults so the response carries the stored values.
	const sel = `SELECT borrow_date, status, fine, created_at, updated_at FROM borrows WHERE id=?`
	return tx.QueryRowContext(ctx, sel, b.ID).Scan(
		&b.BorrowDate, &b.Status, &b.Fine, &b.CreatedAt, &b.UpdatedAt)
}

// GetForReturnTx loads the raw borrow row for the return flow and
// locks it until the transaction ends, so concurrent returns of the
// same borrow serialize.  Missing borrows surface as sql.ErrNoRows.
func (r *BorrowRepo) GetForReturnTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Borrow, error) {
	var (
		b          model.Borrow
		returnDate sql.NullTime
		notes      sql.NullString
	)
	err := tx.QueryRowContext(ctx,
		`SELECT id, user_id, book_id, borrow_date, due_date, return_date, status, fine, notes
		 FROM borrows WHERE id=? FOR UPDATE`, id).Scan(
		&b.ID, &b.UserID, &b.BookID, &b.BorrowDate, &b.DueDate, &returnDate, &b.Status, &b.Fine, &notes)
	if err != nil {
		return model.Borrow{}, err
	}
	if returnDate.Valid {
		t := returnDate.Time
		b.ReturnDate = &t
	}
	if notes.Valid {
		b.Notes = notes.String
	}
	return b, nil
}

// MarkReturnedTx finalizes a borrow: return date set, status frozen to
// returned, fine frozen at the value computed by the caller.  The
// status guard makes the operation idempotent-safe; a second return
// affects zero rows and reports ErrAlreadyReturned.
func (r *BorrowRepo) MarkReturnedTx(ctx context.Context, tx *sql.Tx, id uint64, returnedAt time.Time, fine int64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE borrows SET status='returned', return_date=?, fine=?, updated_at=NOW()
		 WHERE id=? AND status <> 'returned'`, returnedAt, fine, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyReturned
	}
	return nil
}

// GetDetail returns one borrow joined with user and book display
// fields.  Missing borrows surface as sql.ErrNoRows.
func (r *BorrowRepo) GetDetail(ctx context.Context, id uint64) (BorrowDetail, error) {
	const q = `SELECT ` + detailColumns + `
               FROM borrows br
               JOIN users u ON u.id = br.user_id
               JOIN books b ON b.id = br.book_id
               WHERE br.id = ?`
	return scanBorrowDetail(r.db.QueryRowContext(ctx, q, id))
}

// BorrowListOptions filters the borrow listing.  UserID zero means all
// users (admin view); Status empty means every status.
type BorrowListOptions struct {
	UserID uint64
	Status string
	Page   int
	Limit  int
}

// List returns one page of borrows, newest first, plus the total match
// count for pagination.
func (r *BorrowRepo) List(ctx context.Context, o BorrowListOptions) ([]BorrowDetail, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	if o.UserID != 0 {
		where += " AND br.user_id = ?"
		args = append(args, o.UserID)
	}
	if o.Status != "" {
		where += " AND br.status = ?"
		args = append(args, o.Status)
	}

	page := o.Page
	if page < 1 {
		page = 1
	}
	limit := o.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	q := `SELECT ` + detailColumns + `
          FROM borrows br
          JOIN users u ON u.id = br.user_id
          JOIN books b ON b.id = br.book_id
          ` + where + `
          ORDER BY br.created_at DESC
          LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, append(append([]interface{}{}, args...), limit, (page-1)*limit)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	details := make([]BorrowDetail, 0)
	for rows.Next() {
		d, err := scanBorrowDetail(rows)
		if err != nil {
			return nil, 0, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	countQ := "SELECT COUNT(*) FROM borrows br " + where
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

// ListOverdue returns every unreturned borrow whose due date lies
// before asOf, most aged due date first (ascending due date, matching
// the listing the admin dashboard expects).  The caller applies the
// overdue derivation per row.
func (r *BorrowRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]BorrowDetail, error) {
	const q = `SELECT ` + detailColumns + `
               FROM borrows br
               JOIN users u ON u.id = br.user_id
               JOIN books b ON b.id = br.book_id
               WHERE br.status IN ('borrowed','overdue') AND br.due_date < ?
               ORDER BY br.due_date ASC`
	rows, err := r.db.QueryContext(ctx, q, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]BorrowDetail, 0)
	for rows.Next() {
		d, err := scanBorrowDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// BorrowStats is the all-time aggregate over the borrows table.  No
// time window is applied; TotalFines includes fines on borrows that
// were already returned.
type BorrowStats struct {
	TotalBorrows    int64 `json:"totalBorrows"`
	ActiveBorrows   int64 `json:"activeBorrows"`
	OverdueBorrows  int64 `json:"overdueBorrows"`
	ReturnedBorrows int64 `json:"returnedBorrows"`
	TotalFines      int64 `json:"totalFines"`
}

// Stats computes the aggregate in a single scan of the table.
func (r *BorrowRepo) Stats(ctx context.Context) (BorrowStats, error) {
	const q = `SELECT COUNT(*),
                      COALESCE(SUM(status='borrowed'),0),
                      COALESCE(SUM(status='overdue'),0),
                      COALESCE(SUM(status='returned'),0),
                      COALESCE(SUM(fine),0)
               FROM borrows`
	var s BorrowStats
	err := r.db.QueryRowContext(ctx, q).Scan(
		&s.TotalBorrows, &s.ActiveBorrows, &s.OverdueBorrows, &s.ReturnedBorrows, &s.TotalFines)
	return s, err
}
