package repository

import (
	"context"
	"database/sql"

	"github.com/Shrutis65143/Booqly/internal/model"
)

// CategoryRepo provides CRUD for book categories.  Category deletion
// is physical and does not cascade to books; listings LEFT JOIN the
// table so orphaned references simply render without a name.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo returns a new CategoryRepo bound to the given database.
func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// List returns all categories sorted by name.
func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// Create inserts a category and populates its generated ID.  A
// duplicate name maps to ErrCategoryExists.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	res, err := r.db.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", c.Name)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrCategoryExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// EnsureByName resolves a category name to its ID, creating the row on
// first use.  Book writes call this so clients can send plain category
// names.  A concurrent create is absorbed by re-reading after a
// duplicate-key error.
func (r *CategoryRepo) EnsureByName(ctx context.Context, name string) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM categories WHERE name=? LIMIT 1", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		if isDuplicateKey(err) {
			err = r.db.QueryRowContext(ctx,
				"SELECT id FROM categories WHERE name=? LIMIT 1", name).Scan(&id)
			return id, err
		}
		return 0, err
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(newID), nil
}

// Update renames a category.  Missing categories surface as
// sql.ErrNoRows, duplicate names as ErrCategoryExists.
func (r *CategoryRepo) Update(ctx context.Context, id uint64, name string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE categories SET name=? WHERE id=?", name, id)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrCategoryExists
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

// Delete removes a category.  Books keep their category_id; the
// dangling reference is tolerated by design of the catalog reads.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id=?", id)
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
