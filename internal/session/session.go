// Package session carries the caller's identity explicitly through a request.
package session

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session identifies who is making a request. The zero value is an
// anonymous caller.
type Session struct {
	UserID uuid.UUID
}

func Anonymous() Session {
	return Session{}
}

func ForUser(id uuid.UUID) Session {
	return Session{UserID: id}
}

func (s Session) Authenticated() bool {
	return s.UserID != uuid.Nil
}

// Owns reports whether the caller is the given owner. Anonymous callers own
// nothing.
func (s Session) Owns(owner uuid.UUID) bool {
	return s.Authenticated() && s.UserID == owner
}

// FromContext builds the session from the token the auth middleware stored
// in Fiber locals. Requests without a valid token yield an anonymous session.
func FromContext(c *fiber.Ctx) Session {
	id, err := UserID(c)
	if err != nil {
		return Anonymous()
	}
	return ForUser(id)
}

// UserID extracts the user UUID from the JWT sub claim in context.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, errors.New("no token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}
