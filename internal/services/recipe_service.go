package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/cache"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/models"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/session"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecipeService struct {
	db    *gorm.DB
	cache cache.Store
	ttl   time.Duration
}

func NewRecipeService(db *gorm.DB, store cache.Store, ttl time.Duration) *RecipeService {
	if store == nil {
		store = cache.Noop{}
	}
	return &RecipeService{db: db, cache: store, ttl: ttl}
}

func (s *RecipeService) Create(ctx context.Context, sess session.Session, req *dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Instructions = strings.TrimSpace(req.Instructions)
	req.Ingredients = cleanList(req.Ingredients)
	if err := dto.Validate(req); err != nil {
		return nil, validationError(err)
	}

	recipe := models.Recipe{
		ID:           uuid.New(),
		Title:        req.Title,
		Instructions: req.Instructions,
		Image:        cleanImage(req.Image),
		IsPublic:     true,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   models.Difficulty(req.Difficulty),
		CreatedBy:    sess.UserID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		if err := replaceIngredients(tx, recipe.ID, req.Ingredients); err != nil {
			return err
		}
		return replaceTags(tx, recipe.ID, req.Tags)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecipeEvent(metrics.EventCreated)
	return s.render(ctx, recipe.ID)
}

// List returns the recipes matching f, newest first.
func (s *RecipeService) List(ctx context.Context, sess session.Session, f RecipeFilter) ([]dto.RecipeResponse, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Scopes(f.Scopes(sess)...).
		Scopes(withDetails).
		Order("recipes.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return toRecipeResponses(recipes), nil
}

// Get returns a single recipe. Existence and visibility always come from the
// recipes row; the cache only supplies the rendered body, and a body that
// disagrees with the row is dropped and rendered again.
func (s *RecipeService) Get(ctx context.Context, sess session.Session, id uuid.UUID) (*dto.RecipeResponse, error) {
	recipe, err := s.viewable(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	resp, err := s.cached(ctx, id)
	if err != nil {
		return nil, err
	}
	if stale(resp, recipe) {
		s.invalidate(ctx, id)
		if resp, err = s.cached(ctx, id); err != nil {
			return nil, err
		}
	}
	if !resp.IsPublic && !sess.Owns(resp.CreatedBy.ID) {
		return nil, ErrRecipePrivate
	}
	return resp, nil
}

// stale reports whether a cached body was rendered from an older row, e.g.
// when a fill raced with a mutation's invalidation.
func stale(resp *dto.RecipeResponse, r *models.Recipe) bool {
	return resp.IsPublic != r.IsPublic ||
		resp.CreatedBy.ID != r.CreatedBy ||
		!resp.UpdatedAt.Equal(r.UpdatedAt)
}

func (s *RecipeService) Edit(ctx context.Context, sess session.Session, id uuid.UUID, req *dto.UpdateRecipeRequest) (*dto.RecipeResponse, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := findRecipe(tx, id)
		if err != nil {
			return err
		}
		if err := requireOwner(recipe, sess, actionEdit); err != nil {
			return err
		}

		req.Title = strings.TrimSpace(req.Title)
		req.Instructions = strings.TrimSpace(req.Instructions)
		req.Ingredients = cleanList(req.Ingredients)
		if err := dto.Validate(req); err != nil {
			return validationError(err)
		}
		if err := validatePatch(req); err != nil {
			return err
		}

		updates := map[string]interface{}{"updated_at": time.Now()}
		if req.Title != "" {
			updates["title"] = req.Title
		}
		if req.Instructions != "" {
			updates["instructions"] = req.Instructions
		}
		if req.Difficulty != "" {
			updates["difficulty"] = req.Difficulty
		}
		if req.Image.Set {
			updates["image"] = cleanImage(req.Image.Value)
		}
		if req.PrepTime.Set {
			updates["prep_time"] = req.PrepTime.Value
		}
		if req.CookTime.Set {
			updates["cook_time"] = req.CookTime.Value
		}
		if req.Servings.Set {
			updates["servings"] = req.Servings.Value
		}

		if err := tx.Model(recipe).Omit(clause.Associations).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if len(req.Ingredients) > 0 {
			if err := replaceIngredients(tx, id, req.Ingredients); err != nil {
				return err
			}
		}
		if req.Tags != nil {
			return replaceTags(tx, id, *req.Tags)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	metrics.RecipeEvent(metrics.EventEdited)
	return s.render(ctx, id)
}

// Delete removes the recipe with its ingredients, tags and ratings. Comments
// and saved references are left in place.
func (s *RecipeService) Delete(ctx context.Context, sess session.Session, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := findRecipe(tx, id)
		if err != nil {
			return err
		}
		if err := requireOwner(recipe, sess, actionDelete); err != nil {
			return err
		}

		for _, m := range []interface{}{&models.RecipeIngredient{}, &models.RecipeTag{}, &models.Rating{}} {
			if err := tx.Where("recipe_id = ?", id).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete recipe children: %w", err)
			}
		}
		if err := tx.Delete(recipe).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)
	metrics.RecipeEvent(metrics.EventDeleted)
	return nil
}

func (s *RecipeService) ToggleVisibility(ctx context.Context, sess session.Session, id uuid.UUID) (*dto.VisibilityResponse, error) {
	db := s.db.WithContext(ctx)
	recipe, err := findRecipe(db, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(recipe, sess, actionModify); err != nil {
		return nil, err
	}

	recipe.IsPublic = !recipe.IsPublic
	if err := db.Model(recipe).Update("is_public", recipe.IsPublic).Error; err != nil {
		return nil, fmt.Errorf("failed to update visibility: %w", err)
	}

	s.invalidate(ctx, id)
	metrics.RecipeEvent(metrics.EventVisibility)
	return &dto.VisibilityResponse{IsPublic: recipe.IsPublic}, nil
}

// Rate records the caller's rating, replacing any earlier one.
func (s *RecipeService) Rate(ctx context.Context, sess session.Session, id uuid.UUID, req *dto.RateRecipeRequest) (*dto.RecipeResponse, error) {
	if err := requireUser(sess); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	recipe, err := findRecipe(db, id)
	if err != nil {
		return nil, err
	}
	if err := canView(recipe, sess); err != nil {
		return nil, err
	}
	if err := dto.Validate(req); err != nil {
		return nil, validationError(err)
	}

	rating := models.Rating{RecipeID: id, UserID: sess.UserID, Value: req.Rating}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(&rating).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save rating: %w", err)
	}

	s.invalidate(ctx, id)
	metrics.RecipeEvent(metrics.EventRated)
	return s.render(ctx, id)
}

// viewable loads a recipe the caller is allowed to see.
func (s *RecipeService) viewable(ctx context.Context, sess session.Session, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := findRecipe(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if err := canView(recipe, sess); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) render(ctx context.Context, id uuid.UUID) (*dto.RecipeResponse, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Scopes(withDetails).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	resp := toRecipeResponse(&recipe)
	return &resp, nil
}

func (s *RecipeService) cached(ctx context.Context, id uuid.UUID) (*dto.RecipeResponse, error) {
	key := cacheKey(id)
	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		slog.Warn("recipe cache read failed", "key", key, "error", err)
	} else if ok {
		var resp dto.RecipeResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			metrics.CacheLookup(true)
			return &resp, nil
		}
	}
	metrics.CacheLookup(false)

	resp, err := s.render(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			slog.Warn("recipe cache write failed", "key", key, "error", err)
		}
	}
	return resp, nil
}

func (s *RecipeService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, cacheKey(id)); err != nil {
		slog.Warn("recipe cache invalidation failed", "recipe_id", id, "error", err)
	}
}

func cacheKey(id uuid.UUID) string {
	return "recipe:" + id.String()
}

func findRecipe(db *gorm.DB, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return &recipe, nil
}

func replaceIngredients(tx *gorm.DB, recipeID uuid.UUID, names []string) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return fmt.Errorf("failed to clear ingredients: %w", err)
	}
	if len(names) == 0 {
		return nil
	}
	rows := make([]models.RecipeIngredient, 0, len(names))
	for i, name := range names {
		rows = append(rows, models.RecipeIngredient{RecipeID: recipeID, Position: i, Name: name})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to save ingredients: %w", err)
	}
	return nil
}

func replaceTags(tx *gorm.DB, recipeID uuid.UUID, tags []string) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error; err != nil {
		return fmt.Errorf("failed to clear tags: %w", err)
	}
	tags = normalizeTags(tags)
	if len(tags) == 0 {
		return nil
	}
	rows := make([]models.RecipeTag, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, models.RecipeTag{RecipeID: recipeID, Tag: t})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to save tags: %w", err)
	}
	return nil
}

// validatePatch covers the nullable fields the struct tags cannot reach.
func validatePatch(req *dto.UpdateRecipeRequest) error {
	if v := req.Image.Value; v != nil && len(*v) > 2048 {
		return &Error{Kind: KindValidation, Message: "Image URL is too long"}
	}
	if v := req.PrepTime.Value; v != nil && *v < 0 {
		return &Error{Kind: KindValidation, Message: "Prep time cannot be negative"}
	}
	if v := req.CookTime.Value; v != nil && *v < 0 {
		return &Error{Kind: KindValidation, Message: "Cook time cannot be negative"}
	}
	if v := req.Servings.Value; v != nil && *v < 1 {
		return &Error{Kind: KindValidation, Message: "Servings must be at least 1"}
	}
	return nil
}

func cleanList(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func cleanImage(image *string) *string {
	if image == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*image)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
