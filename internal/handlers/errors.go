package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var kindStatus = map[services.ErrorKind]int{
	services.KindValidation: fiber.StatusBadRequest,
	services.KindAuth:       fiber.StatusUnauthorized,
	services.KindForbidden:  fiber.StatusForbidden,
	services.KindNotFound:   fiber.StatusNotFound,
	services.KindConflict:   fiber.StatusBadRequest,
}

// writeError answers client-facing service errors directly and hands
// everything else to the app's ErrorHandler.
func writeError(c *fiber.Ctx, err error) error {
	e, ok := services.AsError(err)
	if !ok {
		return err
	}
	status, ok := kindStatus[e.Kind]
	if !ok {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: e.Message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func parseID(c *fiber.Ctx, param, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, message)
	}
	return id, nil
}

// ErrorHandler is the app-wide fallback. Server errors are logged with the
// request id and never exposed to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled server error",
			"request_id", requestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
