package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a recipebox account. Saved recipes live in saved_recipes.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Username  string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SavedRecipe is one entry in a user's saved-recipe set.
type SavedRecipe struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"recipeId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (SavedRecipe) TableName() string {
	return "saved_recipes"
}
