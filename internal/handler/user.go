package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Shrutis65143/Booqly/internal/config"
	"github.com/Shrutis65143/Booqly/internal/model"
	"github.com/Shrutis65143/Booqly/internal/repository"
)

// UserHandler serves the admin user-management endpoints.
type UserHandler struct {
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Cfg    *config.Config
}

// NewUserHandler builds a UserHandler.
func NewUserHandler(users *repository.UserRepo, tokens *repository.TokenRepo, cfg *config.Config) *UserHandler {
	return &UserHandler{Users: users, Tokens: tokens, Cfg: cfg}
}

// List returns one page of accounts, newest first.
func (h *UserHandler) List(c echo.Context) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, total, err := h.Users.List(ctx, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not list users"})
	}
	profiles := make([]echo.Map, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, userProfile(u))
	}
	return c.JSON(http.StatusOK, listEnvelope(profiles, "totalUsers", total, page, limit))
}

// Get returns one account.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not load user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": userProfile(u)})
}

// Create adds an account with an explicit role.  Unlike self-service
// registration, admins may create other admins here.
func (h *UserHandler) Create(c echo.Context) error {
	var in struct {
		RegisterInput
		Role string `json:"role"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if errs := ValidateRegisterInput(&in.RegisterInput); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Validation failed", "errors": errs})
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Role must be user or admin"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, _, err := h.Users.Create(ctx, in.Name, in.Email, in.Password, role, in.Phone, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "User already exists with this email"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not create user"})
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not load user"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": userProfile(u)})
}

// Update edits an account's name, phone and role.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user id"})
	}
	var in struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Role  string `json:"role"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || len(in.Name) > 50 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Name is required (max 50 characters)"})
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role != model.RoleUser && role != model.RoleAdmin {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Role must be user or admin"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Update(ctx, id, in.Name, in.Phone, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not update user"})
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not load user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": userProfile(u)})
}

// Deactivate soft-deletes an account and revokes its refresh tokens so
// open sessions die with it.  Borrow history keeps its reference.
func (h *UserHandler) Deactivate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Deactivate(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not deactivate user"})
	}
	_ = h.Tokens.RevokeAllForUser(ctx, id)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User deactivated"})
}
