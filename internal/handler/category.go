package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Shrutis65143/Booqly/internal/model"
	"github.com/Shrutis65143/Booqly/internal/repository"
)

// CategoryHandler serves category management.  Listing is public so
// the catalog filter can populate; writes are admin only.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

// NewCategoryHandler builds a CategoryHandler.
func NewCategoryHandler(categories *repository.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

// List returns every category sorted by name.
func (h *CategoryHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Categories.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not list categories"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": cats})
}

func bindCategoryName(c echo.Context) (string, bool) {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&in); err != nil {
		return "", false
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 50 {
		return "", false
	}
	return name, true
}

// Create adds a category.
func (h *CategoryHandler) Create(c echo.Context) error {
	name, ok := bindCategoryName(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Category name is required (max 50 characters)"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat := model.Category{Name: name}
	if err := h.Categories.Create(ctx, &cat); err != nil {
		if errors.Is(err, repository.ErrCategoryExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Category already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not create category"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": cat})
}

// Update renames a category.
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid category id"})
	}
	name, ok := bindCategoryName(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Category name is required (max 50 characters)"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Categories.Update(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Category already exists"})
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not update category"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"id": id, "name": name}})
}

// Delete removes a category.  Books referencing it keep their
// category_id and simply render without a name.
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid category id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not delete category"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Category removed"})
}
