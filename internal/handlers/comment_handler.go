package handlers

import (
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/services"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/session"
	"github.com/gofiber/fiber/v2"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Post(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "id", invalidRecipeID)
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Comment content is required")
	}

	resp, err := h.commentService.Post(c.UserContext(), session.FromContext(c), recipeID, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "id", invalidRecipeID)
	if err != nil {
		return err
	}
	commentID, err := parseID(c, "commentId", "Invalid comment id")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.UserContext(), session.FromContext(c), recipeID, commentID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Comment deleted"})
}
