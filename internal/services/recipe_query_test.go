package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/models"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(rs []dto.RecipeResponse) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Title)
	}
	return out
}

func seedQueryRecipes(t *testing.T, f *fixture) (alice, bob session.Session) {
	t.Helper()
	alice = f.user(t, "alice")
	bob = f.user(t, "bob")

	f.recipe(t, alice, "Tomato Soup", func(r *dto.CreateRecipeRequest) {
		r.Ingredients = []string{"tomato", "cream"}
		r.Tags = []string{"soup", "vegetarian"}
		r.PrepTime = intPtr(10)
		r.Servings = intPtr(2)
		r.Difficulty = "easy"
	})
	f.recipe(t, alice, "Beef Stew", func(r *dto.CreateRecipeRequest) {
		r.Ingredients = []string{"beef", "carrot"}
		r.Tags = []string{"soup"}
		r.PrepTime = intPtr(40)
		r.Servings = intPtr(4)
		r.Difficulty = "hard"
	})
	hidden := f.recipe(t, alice, "Secret Tomato Pie", func(r *dto.CreateRecipeRequest) {
		r.Ingredients = []string{"tomato", "pastry"}
	})
	_, err := f.recipes.ToggleVisibility(context.Background(), alice, hidden.ID)
	require.NoError(t, err)

	f.recipe(t, bob, "Green Salad", func(r *dto.CreateRecipeRequest) {
		r.Ingredients = []string{"lettuce", "Cherry TOMATO"}
		r.Tags = []string{"vegetarian", "100%_raw"}
		r.Servings = intPtr(2)
	})
	return alice, bob
}

func TestListRecipeFilters(t *testing.T) {
	f := newFixture(t)
	alice, bob := seedQueryRecipes(t, f)
	ctx := context.Background()
	anon := session.Anonymous()

	cases := []struct {
		name   string
		sess   session.Session
		filter RecipeFilter
		want   []string
	}{
		{"public only", anon, RecipeFilter{}, []string{"Green Salad", "Beef Stew", "Tomato Soup"}},
		{"own recipes", alice, RecipeFilter{OwnOnly: true}, []string{"Secret Tomato Pie", "Beef Stew", "Tomato Soup"}},
		{"own ignored when anonymous", anon, RecipeFilter{OwnOnly: true}, []string{"Green Salad", "Beef Stew", "Tomato Soup"}},
		{"by owner stays public", bob, RecipeFilter{OwnerID: alice.UserID}, []string{"Beef Stew", "Tomato Soup"}},
		{"search title", anon, RecipeFilter{Search: "stew"}, []string{"Beef Stew"}},
		{"search ingredient case-insensitive", anon, RecipeFilter{Search: "TOMATO"}, []string{"Green Salad", "Tomato Soup"}},
		{"search tag", anon, RecipeFilter{Search: "vegetar"}, []string{"Green Salad", "Tomato Soup"}},
		{"search escapes wildcards", anon, RecipeFilter{Search: "%_r"}, []string{"Green Salad"}},
		{"search wildcard literal", anon, RecipeFilter{Search: "_"}, []string{"Green Salad"}},
		{"tags all-of", anon, RecipeFilter{Tags: []string{"soup", "vegetarian"}}, []string{"Tomato Soup"}},
		{"tags single", anon, RecipeFilter{Tags: []string{" soup ", ""}}, []string{"Beef Stew", "Tomato Soup"}},
		{"difficulty", anon, RecipeFilter{Difficulty: models.DifficultyHard}, []string{"Beef Stew"}},
		{"prep time ceiling", anon, RecipeFilter{MaxPrepTime: intPtr(20)}, []string{"Tomato Soup"}},
		{"servings exact", anon, RecipeFilter{Servings: intPtr(2)}, []string{"Green Salad", "Tomato Soup"}},
		{"combined", alice, RecipeFilter{OwnOnly: true, Search: "tomato"}, []string{"Secret Tomato Pie", "Tomato Soup"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.recipes.List(ctx, tc.sess, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, titles(got))
		})
	}
}

func TestListRejectsUnknownDifficulty(t *testing.T) {
	f := newFixture(t)
	_, err := f.recipes.List(context.Background(), session.Anonymous(), RecipeFilter{Difficulty: "extreme"})
	requireKind(t, err, KindValidation, "Difficulty must be one of easy, medium, hard")
}

func TestParseTags(t *testing.T) {
	assert.Nil(t, ParseTags(""))
	assert.Equal(t, []string{"a", "b"}, ParseTags(" a, ,b,a"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now \\o/`, escapeLike(`50% off_now \o/`))
}
