package handlers

import (
	"strconv"
	"strings"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/models"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/services"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const invalidRecipeID = "Invalid recipe id"

type RecipeHandler struct {
	recipeService *services.RecipeService
}

func NewRecipeHandler(recipeService *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.recipeService.Create(c.UserContext(), session.FromContext(c), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List handles GET /recipes?userRecipes=&userId=&search=&tags=&difficulty=&prepTime=&servings=
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	resp, err := h.recipeService.List(c.UserContext(), session.FromContext(c), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id", invalidRecipeID)
	if err != nil {
		return err
	}

	resp, err := h.recipeService.Get(c.UserContext(), session.FromContext(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

func (h *RecipeHandler) Edit(c *fiber.Ctx) error {
	id, err := parseID(c, "id", invalidRecipeID)
	if err != nil {
		return err
	}
	var req dto.UpdateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.recipeService.Edit(c.UserContext(), session.FromContext(c), id, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id", invalidRecipeID)
	if err != nil {
		return err
	}

	if err := h.recipeService.Delete(c.UserContext(), session.FromContext(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Recipe deleted"})
}

func (h *RecipeHandler) ToggleVisibility(c *fiber.Ctx) error {
	id, err := parseID(c, "id", invalidRecipeID)
	if err != nil {
		return err
	}

	resp, err := h.recipeService.ToggleVisibility(c.UserContext(), session.FromContext(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

func (h *RecipeHandler) Rate(c *fiber.Ctx) error {
	id, err := parseID(c, "id", invalidRecipeID)
	if err != nil {
		return err
	}
	var req dto.RateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Rating must be between 1 and 5")
	}

	resp, err := h.recipeService.Rate(c.UserContext(), session.FromContext(c), id, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

func parseFilter(c *fiber.Ctx) (services.RecipeFilter, error) {
	filter := services.RecipeFilter{
		OwnOnly:    c.Query("userRecipes") == "true",
		Search:     c.Query("search"),
		Tags:       services.ParseTags(c.Query("tags")),
		Difficulty: models.Difficulty(strings.ToLower(strings.TrimSpace(c.Query("difficulty")))),
	}

	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
		}
		filter.OwnerID = id
	}

	var err error
	if filter.MaxPrepTime, err = queryInt(c, "prepTime"); err != nil {
		return filter, err
	}
	if filter.Servings, err = queryInt(c, "servings"); err != nil {
		return filter, err
	}
	return filter, nil
}

func queryInt(c *fiber.Ctx, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" must be an integer")
	}
	return &n, nil
}
