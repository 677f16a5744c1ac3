package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/config"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/services"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/session"
	"github.com/gofiber/fiber/v2"
)

const tokenCookie = "token"

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return writeError(c, err)
	}

	h.setToken(c, resp.Token)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return writeError(c, err)
	}

	h.setToken(c, resp.Token)
	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
	})
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	resp, err := h.authService.Me(c.UserContext(), session.FromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.UpdateMe(c.UserContext(), session.FromContext(c), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) setToken(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.JWTExpiry.Seconds()),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
