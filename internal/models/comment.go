package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment rows are not removed when their recipe is deleted.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"recipeId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	Author User `gorm:"foreignKey:UserID" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
