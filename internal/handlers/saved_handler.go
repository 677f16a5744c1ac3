package handlers

import (
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/services"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/session"
	"github.com/gofiber/fiber/v2"
)

type SavedHandler struct {
	savedService *services.SavedService
}

func NewSavedHandler(savedService *services.SavedService) *SavedHandler {
	return &SavedHandler{savedService: savedService}
}

func (h *SavedHandler) Save(c *fiber.Ctx) error {
	id, err := parseID(c, "id", invalidRecipeID)
	if err != nil {
		return err
	}
	if err := h.savedService.Save(c.UserContext(), session.FromContext(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Recipe saved"})
}

func (h *SavedHandler) Unsave(c *fiber.Ctx) error {
	id, err := parseID(c, "id", invalidRecipeID)
	if err != nil {
		return err
	}
	if err := h.savedService.Unsave(c.UserContext(), session.FromContext(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Recipe removed from saved"})
}

func (h *SavedHandler) List(c *fiber.Ctx) error {
	resp, err := h.savedService.List(c.UserContext(), session.FromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
