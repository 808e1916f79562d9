package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Shrutis65143/Booqly/internal/model"
	"github.com/Shrutis65143/Booqly/internal/repository"
	"github.com/Shrutis65143/Booqly/internal/utils"
)

// BookHandler serves the catalog endpoints.  Listing and single reads
// are public; writes are admin only (enforced in the router).
type BookHandler struct {
	Books      *repository.BookRepo
	Categories *repository.CategoryRepo
}

// NewBookHandler builds a BookHandler.
func NewBookHandler(books *repository.BookRepo, categories *repository.CategoryRepo) *BookHandler {
	return &BookHandler{Books: books, Categories: categories}
}

// List returns one page of the catalog.  Supported query parameters:
// search (title/author/isbn contains), category (id), sortBy,
// sortOrder, page, limit.
func (h *BookHandler) List(c echo.Context) error {
	opts := repository.BookListOptions{
		Search:     c.QueryParam("search"),
		CategoryID: uint64(queryInt(c, "category", 0)),
		SortBy:     c.QueryParam("sortBy"),
		SortOrder:  c.QueryParam("sortOrder"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 10),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	books, total, err := h.Books.List(ctx, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not list books"})
	}
	return c.JSON(http.StatusOK, listEnvelope(books, "totalBooks", total, opts.Page, opts.Limit))
}

// Get returns one book by ID.  Soft-deleted books answer 404 here even
// though history still joins against them.
func (h *BookHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid book id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not load book"})
	}
	if !b.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Book not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": b})
}

// Create adds a book to the catalog.  Available copies default to the
// total when omitted; a missing cover URL is filled from the public
// book catalogs (or a stock image) keyed by ISBN and title.
func (h *BookHandler) Create(c echo.Context) error {
	var in BookInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if errs := ValidateBookInput(&in); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Validation failed", "errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	catID, err := h.Categories.EnsureByName(ctx, in.Category)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not resolve category"})
	}

	available := in.TotalCopies
	if in.AvailableCopies != nil {
		available = *in.AvailableCopies
	}
	cover := in.CoverImage
	if cover == "" {
		cover = utils.BestCoverImage(ctx, in.ISBN, in.Title)
	}

	b := model.Book{
		Title:           in.Title,
		Author:          in.Author,
		ISBN:            in.ISBN,
		CategoryID:      catID,
		Description:     in.Description,
		PublicationYear: in.PublicationYear,
		Publisher:       in.Publisher,
		TotalCopies:     uint32(in.TotalCopies),
		AvailableCopies: uint32(available),
		Location:        in.Location,
		CoverImage:      cover,
	}
	if err := h.Books.Create(ctx, &b); err != nil {
		if errors.Is(err, repository.ErrISBNExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Book with this ISBN already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not create book"})
	}

	created, err := h.Books.GetByID(ctx, b.ID)
	if err != nil {
		created = b
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": created})
}

// Update overwrites a book's fields.  The full document is expected,
// mirroring Create.
func (h *BookHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid book id"})
	}
	var in BookInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if errs := ValidateBookInput(&in); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Validation failed", "errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not load book"})
	}
	if !existing.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Book not found"})
	}

	catID, err := h.Categories.EnsureByName(ctx, in.Category)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not resolve category"})
	}

	available := int(existing.AvailableCopies)
	if in.AvailableCopies != nil {
		available = *in.AvailableCopies
	}
	if available > in.TotalCopies {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  []FieldError{{"availableCopies", "Available copies cannot exceed total copies"}},
		})
	}

	b := model.Book{
		ID:              id,
		Title:           in.Title,
		Author:          in.Author,
		ISBN:            in.ISBN,
		CategoryID:      catID,
		Description:     in.Description,
		PublicationYear: in.PublicationYear,
		Publisher:       in.Publisher,
		TotalCopies:     uint32(in.TotalCopies),
		AvailableCopies: uint32(available),
		Location:        in.Location,
	}
	if err := h.Books.Update(ctx, &b); err != nil {
		switch {
		case errors.Is(err, repository.ErrISBNExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Book with this ISBN already exists"})
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not update book"})
	}

	updated, err := h.Books.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not load book"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": updated})
}

// UpdateCover refreshes the cover image.  With an explicit URL in the
// body it is stored verbatim; with an empty body the catalogs are
// queried again by ISBN.
func (h *BookHandler) UpdateCover(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid book id"})
	}
	var in struct {
		CoverImage string `json:"coverImage"`
	}
	_ = c.Bind(&in) // empty body means re-fetch

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b, err := h.Books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not load book"})
	}

	cover := in.CoverImage
	if cover == "" {
		cover = utils.BestCoverImage(ctx, b.ISBN, b.Title)
	}
	if err := h.Books.SetCover(ctx, id, cover); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not update cover"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"id": id, "cover_image": cover}})
}

// Delete soft-deletes a book so it vanishes from the catalog while
// borrow history stays intact.
func (h *BookHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid book id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Books.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not delete book"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Book removed"})
}
