package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/models"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService struct {
	db      *gorm.DB
	recipes *RecipeService
}

func NewCommentService(db *gorm.DB, recipes *RecipeService) *CommentService {
	return &CommentService{db: db, recipes: recipes}
}

// Post adds a comment by the caller to a recipe they can see.
func (s *CommentService) Post(ctx context.Context, sess session.Session, recipeID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}
	if _, err := s.recipes.viewable(ctx, sess, recipeID); err != nil {
		return nil, err
	}

	req.Content = strings.TrimSpace(req.Content)
	if err := dto.Validate(req); err != nil {
		return nil, validationError(err)
	}

	comment := models.Comment{
		ID:       uuid.New(),
		RecipeID: recipeID,
		UserID:   sess.UserID,
		Content:  req.Content,
	}
	db := s.db.WithContext(ctx)
	if err := db.Omit("Author").Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	if err := db.First(&comment.Author, "id = ?", comment.UserID).Error; err != nil {
		return nil, fmt.Errorf("failed to load comment author: %w", err)
	}

	s.recipes.invalidate(ctx, recipeID)
	metrics.RecipeEvent(metrics.EventCommented)
	resp := toCommentResponse(&comment)
	return &resp, nil
}

// Delete removes a comment. Only its author may do so.
func (s *CommentService) Delete(ctx context.Context, sess session.Session, recipeID, commentID uuid.UUID) error {
	db := s.db.WithContext(ctx)

	var comment models.Comment
	if err := db.First(&comment, "id = ? AND recipe_id = ?", commentID, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to load comment: %w", err)
	}
	if err := requireAuthor(&comment, sess); err != nil {
		return err
	}
	if _, err := findRecipe(db, recipeID); err != nil {
		return err
	}

	if err := db.Delete(&comment).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.recipes.invalidate(ctx, recipeID)
	metrics.RecipeEvent(metrics.EventUncommented)
	return nil
}
