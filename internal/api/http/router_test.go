package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/food-delivery-platform/internal/api/http"
	"github.com/spec-kit/food-delivery-platform/internal/api/http/handlers"
	"github.com/spec-kit/food-delivery-platform/internal/auth"
	"github.com/spec-kit/food-delivery-platform/internal/cache"
	"github.com/spec-kit/food-delivery-platform/internal/config"
	"github.com/spec-kit/food-delivery-platform/internal/domain"
	"github.com/spec-kit/food-delivery-platform/internal/observability"
	"github.com/spec-kit/food-delivery-platform/internal/service"
)

const testSecret = "router-test-secret"

type memoryUserRepo struct {
	mu   sync.Mutex
	byID map[string]domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byID: make(map[string]domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	r.byID[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byID {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]domain.User, 0, len(r.byID))
	for _, user := range r.byID {
		users = append(users, user)
	}
	return users, nil
}

type memoryFoodRepo struct {
	mu   sync.Mutex
	byID map[string]domain.Food
}

func newMemoryFoodRepo() *memoryFoodRepo {
	return &memoryFoodRepo{byID: make(map[string]domain.Food)}
}

func (r *memoryFoodRepo) Create(_ context.Context, food *domain.Food) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	food.ID = uuid.NewString()
	r.byID[food.ID] = *food
	return nil
}

func (r *memoryFoodRepo) Update(_ context.Context, food *domain.Food) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[food.ID]
	if !ok || existing.OwnerID != food.OwnerID {
		return pgx.ErrNoRows
	}
	r.byID[food.ID] = *food
	return nil
}

func (r *memoryFoodRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[id]
	if !ok || existing.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryFoodRepo) GetByIDForOwner(_ context.Context, id, ownerID string) (*domain.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	food, ok := r.byID[id]
	if !ok || food.OwnerID != ownerID {
		return nil, pgx.ErrNoRows
	}
	f := food
	return &f, nil
}

func (r *memoryFoodRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var foods []domain.Food
	for _, food := range r.byID {
		if food.OwnerID == ownerID {
			foods = append(foods, food)
		}
	}
	return foods, nil
}

func testConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{
		JWTSecret:    testSecret,
		TokenTTLDays: 1,
		BcryptCost:   bcrypt.MinCost,
	}}
}

func newAuthApp(t *testing.T) *fiber.App {
	return newAuthAppWithMetrics(t, observability.NewMetrics())
}

func newAuthAppWithMetrics(t *testing.T, metrics *observability.Metrics) *fiber.App {
	t.Helper()
	cfg := testConfig()
	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: newMemoryUserRepo()})

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	httptransport.RegisterAuthRoutes(app, httptransport.AuthRouteConfig{
		Health:         handlers.NewHealthHandler("auth-service", "test", nil, nil),
		Users:          handlers.NewUsersHandler(authService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager()),
	})
	return app
}

func newRestaurantApp(t *testing.T) *fiber.App {
	t.Helper()
	foodService := service.NewFoodService(service.FoodDependencies{
		FoodRepo:  newMemoryFoodRepo(),
		ListCache: cache.NewFoodCache(nil),
	})
	tokenManager := auth.NewTokenManager(testSecret, 1)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	httptransport.RegisterRestaurantRoutes(app, httptransport.RestaurantRouteConfig{
		Health:         handlers.NewHealthHandler("restaurant-service", "test", nil, nil),
		Foods:          handlers.NewFoodsHandler(foodService),
		AuthMiddleware: auth.NewMiddleware(tokenManager),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var reqBody string
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = string(raw)
	}

	req := httptest.NewRequest(method, path, strings.NewReader(reqBody))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

func TestRegisterLoginAndRBACFlow(t *testing.T) {
	app := newAuthApp(t)

	registerPayload := map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "a@x.com",
		"password":  "p1",
	}

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", registerPayload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	token1, _ := body["token"].(string)
	require.NotEmpty(t, token1)
	user := body["user"].(map[string]any)
	assert.Equal(t, "customer", user["role"])

	// Duplicate registration is rejected.
	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/register", "", registerPayload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "User already exists", errObj["message"])

	// Login issues a fresh token for the same subject.
	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "a@x.com",
		"password": "p1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token2, _ := body["token"].(string)
	require.NotEmpty(t, token2)
	assert.Equal(t, user["id"], body["user"].(map[string]any)["id"])

	// Wrong password.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "a@x.com",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The customer token cannot reach the admin-only listing.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/auth/", token2, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// But it can read its own profile.
	resp, body = doJSON(t, app, http.MethodGet, "/api/auth/profile", token2, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a@x.com", body["email"])

	// No token at all.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app := newAuthApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"firstName": "Ada",
		"email":     "a@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "All fields are required", errObj["message"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"firstName":   "Ada",
		"lastName":    "Lovelace",
		"email":       "a@x.com",
		"password":    "p1",
		"dateOfBirth": "not-a-date",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFoodRoutesEnforceRole(t *testing.T) {
	app := newRestaurantApp(t)
	tokenManager := auth.NewTokenManager(testSecret, 1)

	ownerToken, _, err := tokenManager.GenerateToken("owner-1", domain.RoleRestaurantOwner)
	require.NoError(t, err)
	customerToken, _, err := tokenManager.GenerateToken("cust-1", domain.RoleCustomer)
	require.NoError(t, err)

	// Customers cannot manage dishes regardless of a valid token.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/foods/", customerToken, map[string]any{
		"name":  "Ramen",
		"price": 12.5,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Reads only need authentication; a customer gets their (empty) list.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/foods/", customerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// No token is unauthenticated, not forbidden.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/foods/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/foods/", ownerToken, map[string]any{
		"name":        "Ramen",
		"description": "Tonkotsu",
		"price":       12.5,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Ramen", body["name"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/foods/", ownerToken, map[string]any{
		"description": "missing name and price",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Mutations by id are owner-only as well.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/foods/some-id", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestErrorStatusesRecordedInMetrics(t *testing.T) {
	metrics := observability.NewMetrics()
	app := newAuthAppWithMetrics(t, metrics)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/auth/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The request logger must observe the mapped status, not a default 200.
	assert.EqualValues(t, 1, metrics.RequestCount("/api/auth/profile", http.MethodGet, http.StatusUnauthorized))
	assert.EqualValues(t, 0, metrics.RequestCount("/api/auth/profile", http.MethodGet, http.StatusOK))
}
