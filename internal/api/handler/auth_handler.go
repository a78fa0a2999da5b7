package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/employee-api/internal/api/middleware"
	"github.com/staffdesk/employee-api/internal/core/domain"
	"github.com/staffdesk/employee-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	Role        string `json:"role"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      plain
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {string}  string  "User registered successfully"
// @Failure      400   {string}  string  "Missing fields or user exists"
// @Failure      500   {string}  string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid payload")
	}

	_, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			return c.String(http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, domain.ErrUserExists):
			return c.String(http.StatusBadRequest, "User already exists")
		default:
			return c.String(http.StatusInternalServerError, "Error registering user")
		}
	}

	return c.String(http.StatusCreated, "User registered successfully")
}

// Login authenticates a user and returns an access token.
//
// @Summary      Login a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {string}  string  "Unknown user or bad password"
// @Failure      429   {string}  string  "Too many failed attempts"
// @Failure      500   {string}  string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid payload")
	}

	token, role, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return c.String(http.StatusBadRequest, "Cannot find user")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.String(http.StatusBadRequest, "Not Allowed")
		case errors.Is(err, domain.ErrTooManyAttempts):
			return c.String(http.StatusTooManyRequests, "Too many login attempts, try again later")
		default:
			return c.String(http.StatusInternalServerError, "Error logging in")
		}
	}

	return c.JSON(http.StatusOK, loginResponse{AccessToken: token, Role: role})
}

// ChangePassword replaces the authenticated user's password.
//
// @Summary      Change the current user's password
// @Tags         auth
// @Accept       json
// @Produce      plain
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Old and new passwords"
// @Success      200   {string}  string  "Password updated successfully"
// @Failure      400   {string}  string
// @Failure      401   {string}  string
// @Router       /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	identity, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid payload")
	}

	if err := h.authService.ChangePassword(c.Request().Context(), identity, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			return c.String(http.StatusBadRequest, "Old and new passwords are required")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.String(http.StatusBadRequest, "Not Allowed")
		default:
			return c.String(http.StatusInternalServerError, "Error changing password")
		}
	}

	return c.String(http.StatusOK, "Password updated successfully")
}
