package services

import (
	"math"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/models"
	"gorm.io/gorm"
)

// withDetails preloads everything toRecipeResponse reads.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tag") }).
		Preload("Ratings", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Comments.Author")
}

func toRecipeResponse(r *models.Recipe) dto.RecipeResponse {
	resp := dto.RecipeResponse{
		ID:            r.ID,
		Title:         r.Title,
		Ingredients:   make([]string, 0, len(r.Ingredients)),
		Instructions:  r.Instructions,
		Image:         r.Image,
		Tags:          make([]string, 0, len(r.Tags)),
		IsPublic:      r.IsPublic,
		PrepTime:      r.PrepTime,
		CookTime:      r.CookTime,
		Servings:      r.Servings,
		Difficulty:    string(r.Difficulty),
		Comments:      make([]dto.CommentResponse, 0, len(r.Comments)),
		Ratings:       make([]dto.RatingResponse, 0, len(r.Ratings)),
		AverageRating: math.Round(r.AverageRating()*10) / 10,
		CreatedBy:     dto.UserSummary{ID: r.CreatedBy, Username: r.Owner.Username},
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	for _, ing := range r.Ingredients {
		resp.Ingredients = append(resp.Ingredients, ing.Name)
	}
	for _, t := range r.Tags {
		resp.Tags = append(resp.Tags, t.Tag)
	}
	for _, rt := range r.Ratings {
		resp.Ratings = append(resp.Ratings, dto.RatingResponse{UserID: rt.UserID, Rating: rt.Value})
	}
	for i := range r.Comments {
		resp.Comments = append(resp.Comments, toCommentResponse(&r.Comments[i]))
	}
	return resp
}

func toCommentResponse(c *models.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        c.ID,
		RecipeID:  c.RecipeID,
		User:      dto.UserSummary{ID: c.UserID, Username: c.Author.Username},
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func toRecipeResponses(recipes []models.Recipe) []dto.RecipeResponse {
	out := make([]dto.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, toRecipeResponse(&recipes[i]))
	}
	return out
}
