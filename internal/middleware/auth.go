package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/config"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// tokenLookup accepts a bearer header first and falls back to the session
// cookie set at login.
const tokenLookup = "header:Authorization,cookie:token"

// JWTProtected rejects requests without a valid token.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: tokenLookup,
		AuthScheme:  "Bearer",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			message := "Not authorized, token failed"
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				message = "Not authorized, no token"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: message,
			})
		},
	})
}

// OptionalAuth stores the token when one is valid and otherwise lets the
// request through anonymously.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: tokenLookup,
		AuthScheme:  "Bearer",
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Next()
		},
	})
}
