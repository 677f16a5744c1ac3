package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Recipe is owned by CreatedBy for its whole lifetime.
type Recipe struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"_id"`
	Title        string     `gorm:"size:200;not null" json:"title"`
	Instructions string     `gorm:"type:text;not null" json:"instructions"`
	Image        *string    `gorm:"size:2048" json:"image,omitempty"`
	IsPublic     bool       `gorm:"not null;index" json:"isPublic"`
	PrepTime     *int       `json:"prepTime,omitempty"`
	CookTime     *int       `json:"cookTime,omitempty"`
	Servings     *int       `json:"servings,omitempty"`
	Difficulty   Difficulty `gorm:"size:10;index" json:"difficulty,omitempty"`
	CreatedBy    uuid.UUID  `gorm:"type:uuid;not null;index" json:"createdBy"`
	CreatedAt    time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	Owner       User               `gorm:"foreignKey:CreatedBy" json:"-"`
	Ingredients []RecipeIngredient `json:"-"`
	Tags        []RecipeTag        `json:"-"`
	Ratings     []Rating           `json:"-"`
	Comments    []Comment          `json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// AverageRating is computed on read; it is never stored.
func (r *Recipe) AverageRating() float64 {
	if len(r.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, rt := range r.Ratings {
		sum += rt.Value
	}
	return float64(sum) / float64(len(r.Ratings))
}

// RecipeIngredient keeps the ingredient list ordered by Position.
type RecipeIngredient struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position int       `gorm:"not null" json:"position"`
	Name     string    `gorm:"size:500;not null" json:"name"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

type RecipeTag struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Tag      string    `gorm:"size:50;primaryKey;index" json:"tag"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}

// Rating is unique per (recipe, user).
type Rating struct {
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	Value     int       `gorm:"column:rating;not null;check:chk_recipe_ratings_range,rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Rating) TableName() string {
	return "recipe_ratings"
}
