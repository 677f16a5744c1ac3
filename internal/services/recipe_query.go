package services

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/models"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeFilter is the parsed form of the GET /recipes query string.
type RecipeFilter struct {
	// OwnOnly lists the caller's own recipes, private ones included. It is
	// ignored for anonymous callers.
	OwnOnly     bool
	OwnerID     uuid.UUID
	Search      string
	Tags        []string
	Difficulty  models.Difficulty
	MaxPrepTime *int
	Servings    *int
}

func (f RecipeFilter) validate() error {
	if f.Difficulty != "" && !f.Difficulty.Valid() {
		return &Error{Kind: KindValidation, Message: "Difficulty must be one of easy, medium, hard"}
	}
	return nil
}

// Scopes turns the filter into GORM scopes for the given caller.
func (f RecipeFilter) Scopes(s session.Session) []func(*gorm.DB) *gorm.DB {
	scopes := []func(*gorm.DB) *gorm.DB{visibleTo(s, f.OwnOnly)}

	if f.OwnerID != uuid.Nil {
		scopes = append(scopes, ownedBy(f.OwnerID))
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		scopes = append(scopes, matchingText(term))
	}
	if tags := normalizeTags(f.Tags); len(tags) > 0 {
		scopes = append(scopes, taggedWithAll(tags))
	}
	if f.Difficulty != "" {
		scopes = append(scopes, withDifficulty(f.Difficulty))
	}
	if f.MaxPrepTime != nil {
		scopes = append(scopes, preparedWithin(*f.MaxPrepTime))
	}
	if f.Servings != nil {
		scopes = append(scopes, serving(*f.Servings))
	}
	return scopes
}

// visibleTo limits a listing to public recipes, or to the caller's own
// recipes when they asked for them.
func visibleTo(s session.Session, ownOnly bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if ownOnly && s.Authenticated() {
			return db.Where("recipes.created_by = ?", s.UserID)
		}
		return db.Where("recipes.is_public = ?", true)
	}
}

func ownedBy(owner uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.created_by = ?", owner)
	}
}

// matchingText is a case-insensitive substring match on the title, any
// ingredient or any tag.
func matchingText(term string) func(*gorm.DB) *gorm.DB {
	like := "%" + escapeLike(strings.ToLower(term)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			`(LOWER(recipes.title) LIKE ? ESCAPE '\'`+
				` OR EXISTS (SELECT 1 FROM recipe_ingredients ri WHERE ri.recipe_id = recipes.id AND LOWER(ri.name) LIKE ? ESCAPE '\')`+
				` OR EXISTS (SELECT 1 FROM recipe_tags rt WHERE rt.recipe_id = recipes.id AND LOWER(rt.tag) LIKE ? ESCAPE '\'))`,
			like, like, like,
		)
	}
}

// taggedWithAll keeps recipes carrying every one of tags.
func taggedWithAll(tags []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"recipes.id IN (SELECT recipe_id FROM recipe_tags WHERE tag IN ? GROUP BY recipe_id HAVING COUNT(DISTINCT tag) = ?)",
			tags, len(tags),
		)
	}
}

func withDifficulty(d models.Difficulty) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.difficulty = ?", d)
	}
}

func preparedWithin(minutes int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.prep_time IS NOT NULL AND recipes.prep_time <= ?", minutes)
	}
}

func serving(n int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.servings = ?", n)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// normalizeTags trims tags, drops empties and duplicates, keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ParseTags splits a comma-separated tag list.
func ParseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	return normalizeTags(strings.Split(raw, ","))
}
