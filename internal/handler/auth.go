package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Shrutis65143/Booqly/internal/config"
	"github.com/Shrutis65143/Booqly/internal/model"
	"github.com/Shrutis65143/Booqly/internal/repository"
	"github.com/Shrutis65143/Booqly/internal/utils"
)

// AuthHandler bundles the repositories and settings the auth endpoints
// need.
type AuthHandler struct {
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Cfg    *config.Config
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(users *repository.UserRepo, tokens *repository.TokenRepo, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens, Cfg: cfg}
}

// userProfile is the account shape returned by auth endpoints; the
// password hash never leaves the repository layer.
func userProfile(u model.User) echo.Map {
	return echo.Map{
		"id":                u.ID,
		"name":              u.Name,
		"email":             u.Email,
		"role":              u.Role,
		"membership_number": u.MembershipNumber,
		"phone":             u.Phone,
		"is_active":         u.IsActive,
		"created_at":        u.CreatedAt,
	}
}

// issueTokens creates an access/refresh pair for the user and stores
// the refresh hash.
func (h *AuthHandler) issueTokens(ctx context.Context, u model.User) (utils.AccessToken, utils.RefreshToken, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return utils.AccessToken{}, utils.RefreshToken{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return utils.AccessToken{}, utils.RefreshToken{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return utils.AccessToken{}, utils.RefreshToken{}, err
	}
	return access, refresh, nil
}

// Register creates a new member account.  Self-registration always
// yields the user role; admins are created through user management.
func (h *AuthHandler) Register(c echo.Context) error {
	var in RegisterInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if errs := ValidateRegisterInput(&in); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Validation failed", "errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, _, err := h.Users.Create(ctx, in.Name, in.Email, in.Password, model.RoleUser, in.Phone, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "User already exists with this email"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not create account"})
	}

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not load account"})
	}

	access, refresh, err := h.issueTokens(ctx, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not issue tokens"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data": echo.Map{
			"user":          userProfile(u),
			"token":         access.Token,
			"refresh_token": refresh.Raw,
			"expires_at":    access.Exp,
		},
	})
}

// Login verifies credentials and returns a fresh token pair.
// Deactivated accounts cannot log in.
func (h *AuthHandler) Login(c echo.Context) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if in.Email == "" || in.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Please provide email and password"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Login failed"})
	}
	if !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Account is deactivated"})
	}
	if !utils.VerifyPassword(u.PasswordHash, in.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid credentials"})
	}

	access, refresh, err := h.issueTokens(ctx, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not issue tokens"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"user":          userProfile(u),
			"token":         access.Token,
			"refresh_token": refresh.Raw,
			"expires_at":    access.Exp,
		},
	})
}

// bindRefresh pulls the refresh token out of the request body.
func bindRefresh(c echo.Context) (string, bool) {
	var in struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&in); err != nil || in.RefreshToken == "" {
		return "", false
	}
	return in.RefreshToken, true
}

// Refresh rotates a refresh token: the presented token is revoked and a
// brand new access/refresh pair is issued.  A reused (already revoked)
// token is rejected, which limits the damage of a stolen token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw, ok := bindRefresh(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Refresh token is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash := utils.HashRefreshRaw(raw)
	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid or expired refresh token"})
	}
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil || !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid or expired refresh token"})
	}

	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not rotate token"})
	}
	access, refresh, err := h.issueTokens(ctx, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not issue tokens"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"token":         access.Token,
			"refresh_token": refresh.Raw,
			"expires_at":    access.Exp,
		},
	})
}

// RefreshAccess issues a new access token without rotating the refresh
// token.  Clients use it to transparently retry a request after an
// access token expires mid-session.
func (h *AuthHandler) RefreshAccess(c echo.Context) error {
	raw, ok := bindRefresh(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Refresh token is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, utils.HashRefreshRaw(raw))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid or expired refresh token"})
	}
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil || !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid or expired refresh token"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not issue token"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"token":      access.Token,
			"expires_at": access.Exp,
		},
	})
}

// Logout revokes the presented refresh token.  The access token simply
// ages out.
func (h *AuthHandler) Logout(c echo.Context) error {
	raw, ok := bindRefresh(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Refresh token is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(raw)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Logout failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Logged out"})
}

// Me returns the authenticated account's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized, token failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Could not load account"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": userProfile(u)})
}
