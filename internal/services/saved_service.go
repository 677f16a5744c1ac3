package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/models"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SavedService manages each user's set of saved recipes.
type SavedService struct {
	db      *gorm.DB
	recipes *RecipeService
}

func NewSavedService(db *gorm.DB, recipes *RecipeService) *SavedService {
	return &SavedService{db: db, recipes: recipes}
}

// Save is idempotent: saving twice keeps a single entry.
func (s *SavedService) Save(ctx context.Context, sess session.Session, recipeID uuid.UUID) error {
	if err := requireUser(sess); err != nil {
		return err
	}
	if _, err := s.recipes.viewable(ctx, sess, recipeID); err != nil {
		return err
	}

	entry := models.SavedRecipe{UserID: sess.UserID, RecipeID: recipeID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}

	metrics.RecipeEvent(metrics.EventSaved)
	return nil
}

// Unsave only needs the recipe to exist, so entries for recipes that have
// since gone private can still be removed.
func (s *SavedService) Unsave(ctx context.Context, sess session.Session, recipeID uuid.UUID) error {
	if err := requireUser(sess); err != nil {
		return err
	}
	if _, err := findRecipe(s.db.WithContext(ctx), recipeID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", sess.UserID, recipeID).
		Delete(&models.SavedRecipe{}).Error
	if err != nil {
		return fmt.Errorf("failed to unsave recipe: %w", err)
	}

	metrics.RecipeEvent(metrics.EventUnsaved)
	return nil
}

// List resolves the caller's saved recipes, newest saved first. Entries whose
// recipe was deleted or has since gone private are skipped.
func (s *SavedService) List(ctx context.Context, sess session.Session) ([]dto.RecipeResponse, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN saved_recipes ON saved_recipes.recipe_id = recipes.id AND saved_recipes.user_id = ?", sess.UserID).
		Where("recipes.is_public = ? OR recipes.created_by = ?", true, sess.UserID).
		Scopes(withDetails).
		Order("saved_recipes.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	return toRecipeResponses(recipes), nil
}
