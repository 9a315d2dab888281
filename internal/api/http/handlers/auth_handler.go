package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/agencyhub/community-service/internal/api/dto"
	"github.com/agencyhub/community-service/internal/auth"
	"github.com/agencyhub/community-service/internal/service"
	apperrors "github.com/agencyhub/community-service/pkg/util/errorutil"
)

// AuthHandler exposes session endpoints and profile self-service.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, expiresAt, err := h.auth.Register(c.Context(), req.Username, req.Password, req.DisplayName)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token, expiresAt)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, expiresAt, err := h.auth.Login(c.Context(), req.Username, req.Password, req.RememberMe)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token, expiresAt)
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	cookie := c.Cookies(h.auth.Sessions().CookieName())
	if err := h.auth.Logout(c.Context(), user, cookie); err != nil {
		return err
	}

	h.clearSessionCookie(c)
	return c.JSON(fiber.Map{"data": fiber.Map{"loggedOut": true}})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UpdateProfile handles PATCH /api/user/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	updated, err := h.auth.UpdateProfile(c.Context(), user, service.ProfileUpdateInput{
		DisplayName: req.DisplayName,
		Avatar:      req.Avatar,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(updated)})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	sessions := h.auth.Sessions()
	c.Cookie(&fiber.Cookie{
		Name:     sessions.CookieName(),
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   sessions.SecureCookie(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	sessions := h.auth.Sessions()
	c.Cookie(&fiber.Cookie{
		Name:     sessions.CookieName(),
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   sessions.SecureCookie(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
