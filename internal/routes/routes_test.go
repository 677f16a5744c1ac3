package routes

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/cache"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/config"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/services"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db := dbtest.Open(t)
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: 720 * time.Hour, CORSOrigins: "*"}
	recipes := services.NewRecipeService(db, cache.NewMemory(time.Minute), time.Minute)

	app := NewApp(cfg, false)
	Setup(app, cfg,
		handlers.NewAuthHandler(services.NewAuthService(db, cfg), cfg),
		handlers.NewHealthHandler(db),
		handlers.NewRecipeHandler(recipes),
		handlers.NewCommentHandler(services.NewCommentService(db, recipes)),
		handlers.NewSavedHandler(services.NewSavedService(db, recipes)),
	)
	return app
}

type call struct {
	method string
	path   string
	token  string
	cookie string
	body   interface{}
}

func do(t *testing.T, app *fiber.App, c call) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if c.body != nil {
		b, err := json.Marshal(c.body)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", "token="+c.cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func register(t *testing.T, app *fiber.App, name string) dto.AuthResponse {
	t.Helper()
	resp, raw := do(t, app, call{method: "POST", path: "/api/auth/register", body: fiber.Map{
		"username": name, "email": name + "@example.com", "password": "password1",
	}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	return decode[dto.AuthResponse](t, raw)
}

func createRecipe(t *testing.T, app *fiber.App, token, title string) dto.RecipeResponse {
	t.Helper()
	resp, raw := do(t, app, call{method: "POST", path: "/api/recipes", token: token, body: fiber.Map{
		"title": title, "ingredients": []string{"flour", "eggs"}, "instructions": "Whisk and fry.",
		"tags": []string{"breakfast"}, "prepTime": 5, "difficulty": "easy",
	}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	assert.Contains(t, string(raw), `"comments":[]`)
	assert.Contains(t, string(raw), `"ratings":[]`)
	return decode[dto.RecipeResponse](t, raw)
}

func TestRegisterValidationMessage(t *testing.T) {
	app := newTestApp(t)

	resp, raw := do(t, app, call{method: "POST", path: "/api/auth/register", body: fiber.Map{
		"username": "ab", "email": "ab@example.com", "password": "password1",
	}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	got := decode[dto.ErrorResponse](t, raw)
	assert.True(t, got.Error)
	assert.Equal(t, "Username must be at least 3 characters", got.Message)

	register(t, app, "alice")
	resp, raw = do(t, app, call{method: "POST", path: "/api/auth/register", body: fiber.Map{
		"username": "alice2", "email": "alice@example.com", "password": "password1",
	}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User with this email already exists", decode[dto.ErrorResponse](t, raw).Message)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	app := newTestApp(t)

	resp, raw := do(t, app, call{method: "POST", path: "/api/recipes", body: fiber.Map{"title": "x"}})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Not authorized, no token", decode[dto.ErrorResponse](t, raw).Message)

	resp, raw = do(t, app, call{method: "GET", path: "/api/auth/me", token: "not-a-jwt"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Not authorized, token failed", decode[dto.ErrorResponse](t, raw).Message)

	// a bad token on an optional route just means anonymous
	resp, _ = do(t, app, call{method: "GET", path: "/api/recipes", token: "not-a-jwt"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCookieAuth(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice")

	resp, raw := do(t, app, call{method: "POST", path: "/api/auth/login", body: fiber.Map{
		"email": "alice@example.com", "password": "password1",
	}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	var token string
	for _, ck := range resp.Cookies() {
		if ck.Name == "token" {
			token = ck.Value
			assert.True(t, ck.HttpOnly)
			assert.Equal(t, 30*24*60*60, ck.MaxAge)
		}
	}
	require.NotEmpty(t, token)

	resp, raw = do(t, app, call{method: "GET", path: "/api/auth/me", cookie: token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "alice", decode[dto.UserResponse](t, raw).Username)

	resp, raw = do(t, app, call{method: "POST", path: "/api/auth/logout"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Logged out successfully", decode[dto.MessageResponse](t, raw).Message)
	assert.Contains(t, resp.Header.Get("Set-Cookie"), "token=;")
}

func TestPrivateRecipeVisibility(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice")
	bob := register(t, app, "bob")
	r := createRecipe(t, app, alice.Token, "Pancakes")
	assert.True(t, r.IsPublic)

	resp, raw := do(t, app, call{method: "PATCH", path: "/api/recipes/" + r.ID.String() + "/visibility", token: alice.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.False(t, decode[dto.VisibilityResponse](t, raw).IsPublic)

	resp, raw = do(t, app, call{method: "GET", path: "/api/recipes/" + r.ID.String()})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Recipe is private", decode[dto.ErrorResponse](t, raw).Message)

	resp, _ = do(t, app, call{method: "GET", path: "/api/recipes/" + r.ID.String(), token: bob.Token})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, app, call{method: "GET", path: "/api/recipes/" + r.ID.String(), token: alice.Token})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, raw = do(t, app, call{method: "GET", path: "/api/recipes"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.RecipeResponse](t, raw))

	resp, raw = do(t, app, call{method: "GET", path: "/api/recipes?userRecipes=true", token: alice.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.RecipeResponse](t, raw), 1)
}

func TestNonOwnerEditLeavesRecipe(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice")
	bob := register(t, app, "bob")
	r := createRecipe(t, app, alice.Token, "Omelette")
	path := "/api/recipes/" + r.ID.String()

	resp, raw := do(t, app, call{method: "PUT", path: path, token: bob.Token, body: fiber.Map{"title": "Hijacked"}})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Not authorized to edit this recipe", decode[dto.ErrorResponse](t, raw).Message)

	resp, raw = do(t, app, call{method: "DELETE", path: path, token: bob.Token})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Not authorized to delete this recipe", decode[dto.ErrorResponse](t, raw).Message)

	_, raw = do(t, app, call{method: "GET", path: path})
	assert.Equal(t, "Omelette", decode[dto.RecipeResponse](t, raw).Title)

	resp, raw = do(t, app, call{method: "PUT", path: path, token: alice.Token, body: fiber.Map{"title": "French Omelette", "prepTime": nil}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	got := decode[dto.RecipeResponse](t, raw)
	assert.Equal(t, "French Omelette", got.Title)
	assert.Nil(t, got.PrepTime)
	assert.Equal(t, []string{"breakfast"}, got.Tags)

	resp, raw = do(t, app, call{method: "DELETE", path: path, token: alice.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Recipe deleted", decode[dto.MessageResponse](t, raw).Message)

	resp, _ = do(t, app, call{method: "GET", path: path})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRateTwiceKeepsOneRating(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice")
	bob := register(t, app, "bob")
	r := createRecipe(t, app, alice.Token, "Waffles")
	path := "/api/recipes/" + r.ID.String() + "/rate"

	resp, _ := do(t, app, call{method: "POST", path: path, token: bob.Token, body: fiber.Map{"rating": 3}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, raw := do(t, app, call{method: "POST", path: path, token: bob.Token, body: fiber.Map{"rating": 5}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	got := decode[dto.RecipeResponse](t, raw)
	assert.Len(t, got.Ratings, 1)
	assert.Equal(t, 5.0, got.AverageRating)

	resp, raw = do(t, app, call{method: "POST", path: path, token: bob.Token, body: fiber.Map{"rating": 9}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Rating must be between 1 and 5", decode[dto.ErrorResponse](t, raw).Message)
}

func TestComments(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice")
	bob := register(t, app, "bob")
	r := createRecipe(t, app, alice.Token, "Ramen")
	base := "/api/recipes/" + r.ID.String() + "/comments"

	resp, raw := do(t, app, call{method: "POST", path: base, token: bob.Token, body: fiber.Map{"content": ""}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Comment content is required", decode[dto.ErrorResponse](t, raw).Message)

	resp, raw = do(t, app, call{method: "POST", path: base, token: bob.Token, body: fiber.Map{"content": "Great broth"}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	c := decode[dto.CommentResponse](t, raw)
	assert.Equal(t, "bob", c.User.Username)

	resp, _ = do(t, app, call{method: "DELETE", path: base + "/" + c.ID.String(), token: alice.Token})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, raw = do(t, app, call{method: "DELETE", path: base + "/not-an-id", token: bob.Token})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid comment id", decode[dto.ErrorResponse](t, raw).Message)

	resp, raw = do(t, app, call{method: "DELETE", path: base + "/" + c.ID.String(), token: bob.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Comment deleted", decode[dto.MessageResponse](t, raw).Message)
}

func TestSaveIsIdempotent(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice")
	bob := register(t, app, "bob")
	r := createRecipe(t, app, alice.Token, "Focaccia")
	path := "/api/recipes/" + r.ID.String() + "/save"

	for i := 0; i < 2; i++ {
		resp, raw := do(t, app, call{method: "POST", path: path, token: bob.Token})
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
		assert.Equal(t, "Recipe saved", decode[dto.MessageResponse](t, raw).Message)
	}

	resp, raw := do(t, app, call{method: "GET", path: "/api/recipes/users/saved", token: bob.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	saved := decode[[]dto.RecipeResponse](t, raw)
	require.Len(t, saved, 1)
	assert.Equal(t, "Focaccia", saved[0].Title)

	resp, raw = do(t, app, call{method: "DELETE", path: path, token: bob.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Recipe removed from saved", decode[dto.MessageResponse](t, raw).Message)

	_, raw = do(t, app, call{method: "GET", path: "/api/recipes/users/saved", token: bob.Token})
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)))
}

func TestBadRequests(t *testing.T) {
	app := newTestApp(t)

	resp, raw := do(t, app, call{method: "GET", path: "/api/recipes/not-a-uuid"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid recipe id", decode[dto.ErrorResponse](t, raw).Message)

	resp, raw = do(t, app, call{method: "GET", path: "/api/recipes?prepTime=soon"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "prepTime must be an integer", decode[dto.ErrorResponse](t, raw).Message)

	resp, raw = do(t, app, call{method: "GET", path: "/api/recipes?difficulty=legendary"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Difficulty must be one of easy, medium, hard", decode[dto.ErrorResponse](t, raw).Message)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	resp, raw := do(t, app, call{method: "GET", path: "/api/health"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	health := decode[dto.HealthResponse](t, raw)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.DB)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	resp, raw = do(t, app, call{method: "GET", path: "/metrics"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "recipebox_http_requests_total")
}
