package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Shrutis65143/Booqly/internal/model"
)

// BookRepo provides persistence for the book catalog.  Reads join the
// categories table for display names; soft-deleted books are excluded
// from listings but still reachable by ID so historical borrow records
// stay renderable.  The available-copies counter is only ever changed
// through the guarded Tx methods at the bottom of this file.
type BookRepo struct {
	db *sql.DB
}

// NewBookRepo returns a new BookRepo bound to the given database.
func NewBookRepo(db *sql.DB) *BookRepo { return &BookRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning books and borrows.
func (r *BookRepo) DB() *sql.DB { return r.db }

// bookColumns is the select list shared by every book read, including
// the joined category name.
const bookColumns = `b.id, b.title, b.author, b.isbn, b.category_id, b.description,
       b.publication_year, b.publisher, b.total_copies, b.available_copies,
       b.location, b.cover_image, b.is_active, b.created_at, b.updated_at, c.name`

// scanBook scans one row produced with bookColumns into a model.Book.
func scanBook(row interface{ Scan(...interface{}) error }) (model.Book, error) {
	var (
		b        model.Book
		desc     sql.NullString
		year     sql.NullInt64
		pub      sql.NullString
		category sql.NullString
	)
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.CategoryID, &desc,
		&year, &pub, &b.TotalCopies, &b.AvailableCopies,
		&b.Location, &b.CoverImage, &b.IsActive, &b.CreatedAt, &b.UpdatedAt, &category,
	)
	if err != nil {
		return model.Book{}, err
	}
	if desc.Valid {
		b.Description = desc.String
	}
	if year.Valid {
		y := uint16(year.Int64)
		b.PublicationYear = &y
	}
	if pub.Valid {
		b.Publisher = pub.String
	}
	if category.Valid {
		b.CategoryName = category.String
	}
	return b, nil
}

// BookListOptions captures the query parameters of the catalog listing
// endpoint.  Search matches title, author and ISBN with a
// case-insensitive contains.  SortBy is validated against a whitelist;
// anything unknown falls back to title.
type BookListOptions struct {
	Search     string
	CategoryID uint64
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

// bookSortColumns whitelists sortable fields.  Both the JSON-ish names
// the original client sends and the column names are accepted.
var bookSortColumns = map[string]string{
	"title":            "b.title",
	"author":           "b.author",
	"publicationYear":  "b.publication_year",
	"publication_year": "b.publication_year",
	"createdAt":        "b.created_at",
	"created_at":       "b.created_at",
	"availableCopies":  "b.available_copies",
	"available_copies": "b.available_copies",
}

// buildBookListQuery assembles the listing and count statements for
// the given options.  It is split out of List so the query shape can
// be tested without a live database.
func buildBookListQuery(o BookListOptions) (listQ, countQ string, listArgs, countArgs []interface{}) {
	where := "WHERE b.is_active = 1"
	args := []interface{}{}
	if s := strings.TrimSpace(o.Search); s != "" {
		where += " AND (b.title LIKE ? OR b.author LIKE ? OR b.isbn LIKE ?)"
		pat := "%" + s + "%"
		args = append(args, pat, pat, pat)
	}
	if o.CategoryID != 0 {
		where += " AND b.category_id = ?"
		args = append(args, o.CategoryID)
	}

	col, ok := bookSortColumns[o.SortBy]
	if !ok {
		col = "b.title"
	}
	dir := "ASC"
	if strings.EqualFold(o.SortOrder, "desc") {
		dir = "DESC"
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

	listQ = `SELECT ` + bookColumns + `
             FROM books b
             LEFT JOIN categories c ON c.id = b.category_id
             ` + where + `
             ORDER BY ` + col + ` ` + dir + `
             LIMIT ? OFFSET ?`
	listArgs = append(append([]interface{}{}, args...), limit, (page-1)*limit)

	countQ = `SELECT COUNT(*) FROM books b ` + where
	countArgs = args
	return listQ, countQ, listArgs, countArgs
}

// List returns one page of active books matching the options together
// with the total match count used for pagination.
func (r *BookRepo) List(ctx context.Context, o BookListOptions) ([]model.Book, int, error) {
	listQ, countQ, listArgs, countArgs := buildBookListQuery(o)

	rows, err := r.db.QueryContext(ctx, listQ, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQ, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// GetByID fetches a single book with its category name.  Inactive
// books are returned too; callers that care check IsActive.  Missing
// books surface as sql.ErrNoRows.
func (r *BookRepo) GetByID(ctx context.Context, id uint64) (model.Book, error) {
	const q = `SELECT ` + bookColumns + `
               FROM books b
               LEFT JOIN categories c ON c.id = b.category_id
               WHERE b.id = ?`
	return scanBook(r.db.QueryRowContext(ctx, q, id))
}

// Create inserts a new book and populates its generated ID.  A
// duplicate ISBN maps to ErrISBNExists via the MySQL duplicate-key
// error code.
func (r *BookRepo) Create(ctx context.Context, b *model.Book) error {
	const q = `INSERT INTO books
               (title, author, isbn, category_id, description, publication_year,
                publisher, total_copies, available_copies, location, cover_image)
               VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		b.Title, b.Author, b.ISBN, b.CategoryID, nullStr(b.Description), nullYear(b.PublicationYear),
		nullStr(b.Publisher), b.TotalCopies, b.AvailableCopies, b.Location, b.CoverImage)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrISBNExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// Update overwrites the mutable fields of a book.  The counters are
// written as provided; callers validate 0 <= available <= total first.
// Missing books surface as sql.ErrNoRows.
func (r *BookRepo) Update(ctx context.Context, b *model.Book) error {
	const q = `UPDATE books SET
               title=?, author=?, isbn=?, category_id=?, description=?,
               publication_year=?, publisher=?, total_copies=?, available_copies=?,
               location=?, updated_at=NOW()
               WHERE id=?`
	res, err := r.db.ExecContext(ctx, q,
		b.Title, b.Author, b.ISBN, b.CategoryID, nullStr(b.Description),
		nullYear(b.PublicationYear), nullStr(b.Publisher), b.TotalCopies, b.AvailableCopies,
		b.Location, b.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrISBNExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetCover updates just the cover image URL.
func (r *BookRepo) SetCover(ctx context.Context, id uint64, coverURL string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE books SET cover_image=?, updated_at=NOW() WHERE id=?", coverURL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete flips is_active so the book disappears from listings
// while borrow history keeps a valid reference.
func (r *BookRepo) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE books SET is_active=0, updated_at=NOW() WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ExistsActiveTx reports whether an active book with the given ID
// exists, inside the borrow transaction.  Borrowing a soft-deleted
// book is treated the same as borrowing a missing one.
func (r *BookRepo) ExistsActiveTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx,
		"SELECT 1 FROM books WHERE id=? AND is_active=1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DecrementAvailableTx atomically takes one copy off the shelf.  The
// WHERE clause is the availability check: when two borrows race, only
// as many succeed as there are copies, and the counter can never go
// negative.  It returns false when no copy was available.
func (r *BookRepo) DecrementAvailableTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	res, err := tx.ExecContext(ctx,
		"UPDATE books SET available_copies = available_copies - 1, updated_at=NOW() WHERE id=? AND available_copies > 0", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IncrementAvailableTx puts a copy back on the shelf on return.  The
// guard keeps available_copies from exceeding total_copies even if a
// return is replayed.
func (r *BookRepo) IncrementAvailableTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE books SET available_copies = available_copies + 1, updated_at=NOW() WHERE id=? AND available_copies < total_copies", id)
	return err
}

// nullStr maps "" to NULL for optional text columns.
func nullStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// nullYear maps a nil year pointer to NULL.
func nullYear(y *uint16) interface{} {
	if y == nil {
		return nil
	}
	return *y
}

// isDuplicateKey detects MySQL error 1062 (duplicate entry) without
// depending on the driver's error type.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
