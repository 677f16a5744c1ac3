package services

import (
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/models"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/session"
)

const (
	actionEdit   = "edit"
	actionDelete = "delete"
	actionModify = "modify"
)

func requireUser(s session.Session) error {
	if !s.Authenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// requireOwner fails unless the caller created the recipe.
func requireOwner(r *models.Recipe, s session.Session, action string) error {
	if !s.Owns(r.CreatedBy) {
		return forbidden("Not authorized to " + action + " this recipe")
	}
	return nil
}

// canView fails for private recipes unless the caller is the owner.
func canView(r *models.Recipe, s session.Session) error {
	if r.IsPublic || s.Owns(r.CreatedBy) {
		return nil
	}
	return ErrRecipePrivate
}

func requireAuthor(c *models.Comment, s session.Session) error {
	if !s.Owns(c.UserID) {
		return ErrNotCommentAuthor
	}
	return nil
}
