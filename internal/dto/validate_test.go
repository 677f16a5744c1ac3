package dto

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegister(t *testing.T) {
	cases := []struct {
		name string
		req  RegisterRequest
		want string
	}{
		{"short username", RegisterRequest{Username: "ab", Email: "x@x.com", Password: "secret1"}, "Username must be at least 3 characters"},
		{"missing email", RegisterRequest{Username: "ab", Password: "secret1"}, "All fields (username, email, password) are required"},
		{"bad email", RegisterRequest{Username: "alice", Email: "nope", Password: "secret1"}, "Invalid email format"},
		{"short password", RegisterRequest{Username: "alice", Email: "a@b.co", Password: "12345"}, "Password must be at least 6 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())
		})
	}

	assert.NoError(t, Validate(RegisterRequest{Username: "alice", Email: "a@b.co", Password: "secret1"}))
}

func TestValidateCreateRecipe(t *testing.T) {
	err := Validate(CreateRecipeRequest{Title: "Toast", Ingredients: []string{}, Instructions: "toast it"})
	require.Error(t, err)
	assert.Equal(t, "Title, ingredients, and instructions are required", err.Error())

	bad := -1
	err = Validate(CreateRecipeRequest{Title: "Toast", Ingredients: []string{"bread"}, Instructions: "toast it", PrepTime: &bad})
	require.Error(t, err)
	assert.Equal(t, "Prep time cannot be negative", err.Error())

	err = Validate(CreateRecipeRequest{Title: "Toast", Ingredients: []string{"bread"}, Instructions: "toast it", Difficulty: "extreme"})
	require.Error(t, err)
	assert.Equal(t, "Difficulty must be one of easy, medium, hard", err.Error())

	zero := 0
	assert.NoError(t, Validate(CreateRecipeRequest{Title: "Toast", Ingredients: []string{"bread"}, Instructions: "toast it", CookTime: &zero}))
}

func TestValidateRating(t *testing.T) {
	for _, r := range []int{0, 6, -2} {
		err := Validate(RateRecipeRequest{Rating: r})
		require.Error(t, err)
		assert.Equal(t, "Rating must be between 1 and 5", err.Error())
	}
	assert.NoError(t, Validate(RateRecipeRequest{Rating: 5}))
}

func TestOptionalDecode(t *testing.T) {
	var req UpdateRecipeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"prepTime": 25, "image": "http://img"}`), &req))

	assert.True(t, req.PrepTime.Set)
	require.NotNil(t, req.PrepTime.Value)
	assert.Equal(t, 25, *req.PrepTime.Value)
	assert.True(t, req.Image.Set)
	assert.False(t, req.Servings.Set)
	assert.Nil(t, req.Tags)
}

func TestOptionalConstructors(t *testing.T) {
	some := Some(3)
	assert.True(t, some.Set)
	assert.Equal(t, 3, *some.Value)

	null := Null[int]()
	assert.True(t, null.Set)
	assert.Nil(t, null.Value)
}
