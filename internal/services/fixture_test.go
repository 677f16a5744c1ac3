package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/cache"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/config"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/session"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	cfg      *config.Config
	store    cache.Store
	auth     *AuthService
	recipes  *RecipeService
	comments *CommentService
	saved    *SavedService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithStore(t, cache.NewMemory(time.Minute))
}

func newFixtureWithStore(t *testing.T, store cache.Store) *fixture {
	t.Helper()

	db := dbtest.Open(t)
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: 720 * time.Hour}
	recipes := NewRecipeService(db, store, time.Minute)

	return &fixture{
		db:       db,
		cfg:      cfg,
		store:    store,
		auth:     NewAuthService(db, cfg),
		recipes:  recipes,
		comments: NewCommentService(db, recipes),
		saved:    NewSavedService(db, recipes),
	}
}

// user registers a new account and returns its session.
func (f *fixture) user(t *testing.T, name string) session.Session {
	t.Helper()
	resp, err := f.auth.Register(context.Background(), &dto.RegisterRequest{
		Username: name,
		Email:    name + "@example.com",
		Password: "password1",
	})
	require.NoError(t, err)
	return session.ForUser(resp.User.ID)
}

func (f *fixture) recipe(t *testing.T, owner session.Session, title string, opts ...func(*dto.CreateRecipeRequest)) *dto.RecipeResponse {
	t.Helper()
	req := &dto.CreateRecipeRequest{
		Title:        title,
		Ingredients:  []string{"flour", "water"},
		Instructions: "Mix and bake.",
	}
	for _, opt := range opts {
		opt(req)
	}
	resp, err := f.recipes.Create(context.Background(), owner, req)
	require.NoError(t, err)
	return resp
}

func intPtr(v int) *int {
	return &v
}

// requireKind asserts err is a client-facing error of the given kind.
func requireKind(t *testing.T, err error, kind ErrorKind, msg string) {
	t.Helper()
	require.Error(t, err)
	e, ok := AsError(err)
	require.True(t, ok, "expected *Error, got %v", err)
	require.Equal(t, kind, e.Kind)
	if msg != "" {
		require.Equal(t, msg, e.Message)
	}
}
