package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildBookListQueryDefaults(t *testing.T) {
	listQ, countQ, listArgs, countArgs := buildBookListQuery(BookListOptions{})

	assert.Contains(t, listQ, "WHERE b.is_active = 1")
	assert.Contains(t, listQ, "ORDER BY b.title ASC")
	assert.Contains(t, listQ, "LIMIT ? OFFSET ?")
	// No filters: only limit and offset remain as args.
	assert.Equal(t, []interface{}{10, 0}, listArgs)
	assert.Contains(t, countQ, "WHERE b.is_active = 1")
	assert.Empty(t, countArgs)
}

func TestBuildBookListQuerySearchMatchesThreeColumns(t *testing.T) {
	listQ, _, listArgs, countArgs := buildBookListQuery(BookListOptions{Search: "tolkien"})

	assert.Contains(t, listQ, "b.title LIKE ?")
	assert.Contains(t, listQ, "b.author LIKE ?")
	assert.Contains(t, listQ, "b.isbn LIKE ?")
	assert.Equal(t, []interface{}{"%tolkien%", "%tolkien%", "%tolkien%", 10, 0}, listArgs)
	assert.Len(t, countArgs, 3)
}

func TestBuildBookListQueryCategoryFilter(t *testing.T) {
	listQ, countQ, listArgs, _ := buildBookListQuery(BookListOptions{CategoryID: 7})

	assert.Contains(t, listQ, "b.category_id = ?")
	assert.Contains(t, countQ, "b.category_id = ?")
	assert.Equal(t, []interface{}{uint64(7), 10, 0}, listArgs)
}

func TestBuildBookListQuerySortWhitelist(t *testing.T) {
	listQ, _, _, _ := buildBookListQuery(BookListOptions{SortBy: "publicationYear", SortOrder: "desc"})
	assert.Contains(t, listQ, "ORDER BY b.publication_year DESC")

	// Unknown sort columns fall back to title; no injection via SortBy.
	listQ, _, _, _ = buildBookListQuery(BookListOptions{SortBy: "title; DROP TABLE books"})
	assert.Contains(t, listQ, "ORDER BY b.title ASC")
}

func TestBuildBookListQueryPagination(t *testing.T) {
	_, _, listArgs, _ := buildBookListQuery(BookListOptions{Page: 3, Limit: 20})
	assert.Equal(t, []interface{}{20, 40}, listArgs)

	// Page and limit are clamped to sane bounds.
	_, _, listArgs, _ = buildBookListQuery(BookListOptions{Page: -1, Limit: 10000})
	assert.Equal(t, []interface{}{100, 0}, listArgs)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, isDuplicateKey(nil))
	assert.False(t, isDuplicateKey(errors.New("connection refused")))
	assert.True(t, isDuplicateKey(errors.New("Error 1062: Duplicate entry '9780000000000' for key 'books.isbn'")))
}
