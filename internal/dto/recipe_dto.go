package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRecipeRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1"`
	Instructions string   `json:"instructions" validate:"required"`
	Image        *string  `json:"image" validate:"omitnil,max=2048"`
	Tags         []string `json:"tags" validate:"omitempty,dive,max=50"`
	PrepTime     *int     `json:"prepTime" validate:"omitnil,gte=0"`
	CookTime     *int     `json:"cookTime" validate:"omitnil,gte=0"`
	Servings     *int     `json:"servings" validate:"omitnil,gte=1"`
	Difficulty   string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

func (CreateRecipeRequest) messages() Messages {
	return recipeMessages
}

// UpdateRecipeRequest is a partial edit. Empty title, instructions,
// difficulty and ingredients keep the stored value; Optional fields clear the
// stored value when sent as null.
type UpdateRecipeRequest struct {
	Title        string           `json:"title" validate:"omitempty,max=200"`
	Ingredients  []string         `json:"ingredients"`
	Instructions string           `json:"instructions"`
	Image        Optional[string] `json:"image"`
	Tags         *[]string        `json:"tags" validate:"omitnil,dive,max=50"`
	PrepTime     Optional[int]    `json:"prepTime"`
	CookTime     Optional[int]    `json:"cookTime"`
	Servings     Optional[int]    `json:"servings"`
	Difficulty   string           `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

func (UpdateRecipeRequest) messages() Messages {
	return recipeMessages
}

var recipeMessages = Messages{
	"*.required":       "Title, ingredients, and instructions are required",
	"Ingredients.min":  "Title, ingredients, and instructions are required",
	"Title.max":        "Title must be at most 200 characters",
	"Image.max":        "Image URL is too long",
	"Tags.max":         "Tags must be at most 50 characters",
	"PrepTime.gte":     "Prep time cannot be negative",
	"CookTime.gte":     "Cook time cannot be negative",
	"Servings.gte":     "Servings must be at least 1",
	"Difficulty.oneof": "Difficulty must be one of easy, medium, hard",
}

type RateRecipeRequest struct {
	Rating int `json:"rating" validate:"gte=1,lte=5"`
}

func (RateRecipeRequest) messages() Messages {
	return Messages{"Rating": "Rating must be between 1 and 5"}
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

func (CreateCommentRequest) messages() Messages {
	return Messages{
		"Content.required": "Comment content is required",
		"Content.max":      "Comment must be at most 2000 characters",
	}
}

type VisibilityResponse struct {
	IsPublic bool `json:"isPublic"`
}

type UserSummary struct {
	ID       uuid.UUID `json:"_id"`
	Username string    `json:"username"`
}

type RatingResponse struct {
	UserID uuid.UUID `json:"userId"`
	Rating int       `json:"rating"`
}

type CommentResponse struct {
	ID        uuid.UUID   `json:"_id"`
	RecipeID  uuid.UUID   `json:"recipeId"`
	User      UserSummary `json:"userId"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
}

type RecipeResponse struct {
	ID            uuid.UUID         `json:"_id"`
	Title         string            `json:"title"`
	Ingredients   []string          `json:"ingredients"`
	Instructions  string            `json:"instructions"`
	Image         *string           `json:"image,omitempty"`
	Tags          []string          `json:"tags"`
	IsPublic      bool              `json:"isPublic"`
	PrepTime      *int              `json:"prepTime,omitempty"`
	CookTime      *int              `json:"cookTime,omitempty"`
	Servings      *int              `json:"servings,omitempty"`
	Difficulty    string            `json:"difficulty,omitempty"`
	Comments      []CommentResponse `json:"comments"`
	Ratings       []RatingResponse  `json:"ratings"`
	AverageRating float64           `json:"averageRating"`
	CreatedBy     UserSummary       `json:"createdBy"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
