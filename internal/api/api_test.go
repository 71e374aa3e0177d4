package api_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/zenkitchen/backend/internal/api"
	"github.com/pageza/zenkitchen/backend/internal/database"
	"github.com/pageza/zenkitchen/backend/internal/mocks"
	"github.com/pageza/zenkitchen/backend/internal/models"
	"github.com/pageza/zenkitchen/backend/internal/service"
	"github.com/pageza/zenkitchen/backend/internal/testhelpers"
	"github.com/pageza/zenkitchen/backend/internal/types"
)

type testAPI struct {
	router   *gin.Engine
	chain    *mocks.MockCompleter
	uploader *mocks.MockUploader
}

func setupAPI(t *testing.T, withUploader bool) *testAPI {
	gin.SetMode(gin.TestMode)

	store := database.NewGormStore(testhelpers.SetupTestDB(t))
	chain := new(mocks.MockCompleter)
	profile, err := service.NewProfileService(service.NewYAMLSettings(filepath.Join(t.TempDir(), "settings.yaml")))
	require.NoError(t, err)

	env := &testAPI{router: gin.New(), chain: chain}
	svc := api.Services{
		Auth:      service.NewAuthService("test-secret", time.Hour),
		Inventory: service.NewInventoryService(store, nil),
		Recipes:   service.NewRecipeService(store),
		AI:        service.NewAIService(chain, mocks.NewMemoryDraftCache(), nil, time.Second),
		Profile:   profile,
	}
	if withUploader {
		env.uploader = new(mocks.MockUploader)
		svc.Uploader = env.uploader
	}
	api.SetupAPI(env.router, svc)
	return env
}

// session starts an anonymous session and returns its token.
func (e *testAPI) session(t *testing.T) string {
	w := testhelpers.DoJSON(t, e.router, http.MethodPost, "/api/v1/auth/anonymous", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var session types.SessionResponse
	testhelpers.DecodeJSON(t, w, &session)
	require.NotEmpty(t, session.Token)
	return session.Token
}

func multipartBody(t *testing.T, field, filename, contentType string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doMultipart(e *testAPI, path, token string, body *bytes.Buffer, ct string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	env := setupAPI(t, false)

	w := testhelpers.DoJSON(t, env.router, http.MethodGet, "/api/v1/items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testhelpers.DoJSON(t, env.router, http.MethodGet, "/api/v1/items", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := env.session(t)
	w = testhelpers.DoJSON(t, env.router, http.MethodPost, "/api/v1/auth/refresh", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestItemLifecycle(t *testing.T) {
	env := setupAPI(t, false)
	token := env.session(t)

	w := testhelpers.DoJSON(t, env.router, http.MethodPost, "/api/v1/items", token, map[string]interface{}{
		"name": "牛奶", "category": "乳制品", "expires_in": 1, "expires_unit": "day",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var milk models.InventoryItem
	testhelpers.DecodeJSON(t, w, &milk)
	assert.Equal(t, models.StatusActive, milk.Status)
	require.NotNil(t, milk.ExpiryDate)

	w = testhelpers.DoJSON(t, env.router, http.MethodPost, "/api/v1/items", token, map[string]interface{}{
		"name": "大米", "category": "其他",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = testhelpers.DoJSON(t, env.router, http.MethodGet, "/api/v1/items?status=expiring", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view service.InventoryView
	testhelpers.DecodeJSON(t, w, &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "牛奶", view.Items[0].Name)
	assert.Equal(t, "明天过期", view.Items[0].Expiry.Label)
	assert.Equal(t, 2, view.Summary.Active)

	w = testhelpers.DoJSON(t, env.router, http.MethodGet, "/api/v1/items?status=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testhelpers.DoJSON(t, env.router, http.MethodPost, "/api/v1/items/"+milk.ID+"/usage", token, map[string]int{"progress": 100})
	require.Equal(t, http.StatusOK, w.Code)
	testhelpers.DecodeJSON(t, w, &milk)
	assert.Equal(t, models.StatusConsumed, milk.Status)

	w = testhelpers.DoJSON(t, env.router, http.MethodPost, "/api/v1/items/"+milk.ID+"/waste", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = testhelpers.DoJSON(t, env.router, http.MethodGet, "/api/v1/items", token, nil)
	testhelpers.DecodeJSON(t, w, &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "大米", view.Items[0].Name)
	assert.Equal(t, 1, view.Summary.Consumed)

	w = testhelpers.DoJSON(t, env.router, http.MethodDelete, "/api/v1/items/"+milk.ID, token, nil)
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	w = testhelpers.DoJSON(t, env.router, http.MethodDelete, "/api/v1/items/"+milk.ID+"?confirm=true", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = testhelpers.DoJSON(t, env.router, http.MethodGet, "/api/v1/items/"+milk.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItemValidation(t *testing.T) {
	env := setupAPI(t, false)
	token := env.session(t)

	w := testhelpers.DoJSON(t, env.router, http.MethodPost, "/api/v1/items", token, map[string]string{"category": "水果"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testhelpers.DoJSON(t, env.router, http.MethodPost, "/api/v1/items", token, map[string]string{"name": "  "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Field string `json:"field"`
	}
	testhelpers.DecodeJSON(t, w, &resp)
	assert.Equal(t, "name", resp.Field)

	w = testhelpers.DoJSON(t, env.router, http.MethodPost, "/api/v1/items", token, map[string]string{"name": "梨", "expiry_date": "soon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testhelpers.DoJSON(t, env.router, http.MethodGet, "/api/v1/items/categories", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "乳制品")
}

func TestItemsAreScopedToSession(t *testing.T) {
	env := setupAPI(t, false)
	alice := env.session(t)
	bob := env.session(t)

	w := testhelpers.DoJSON(t, env.router, http.MethodPost, "/api/v1/items", alice, map[string]string{"name": "豆腐"})
	require.Equal(t, http.StatusCreated, w.Code)
	var tofu models.InventoryItem
	testhelpers.DecodeJSON(t, w, &tofu)

	w = testhelpers.DoJSON(t, env.router, http.MethodGet, "/api/v1/items/"+tofu.ID, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testhelpers.DoJSON(t, env.router, http.MethodPut, "/api/v1/items/"+tofu.ID, alice, map[string]interface{}{
		"quantity": "2块", "expires_in": 1, "expires_unit": "week",
	})
	require.Equal(t, http.StatusOK, w.Code)
	testhelpers.DecodeJSON(t, w, &tofu)
	assert.Equal(t, "2块", tofu.Quantity)
	assert.NotNil(t, tofu.ExpiryDate)
}

func TestRecipes(t *testing.T) {
	env := setupAPI(t, false)
	token := env.session(t)

	w := testhelpers.DoJSON(t, env.router, http.MethodPost, "/api/v1/recipes", token, types.RecipeRequest{
		Name: "番茄炒蛋", Tags: []string{"家常", "快手菜", "家常"}, Steps: "炒",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var recipe models.Recipe
	testhelpers.DecodeJSON(t, w, &recipe)
	assert.Equal(t, []string{"家常", "快手菜"}, recipe.Tags)

	w = testhelpers.DoJSON(t, env.router, http.MethodPost, "/api/v1/recipes", token, types.RecipeRequest{Name: "凉拌黄瓜", Tags: []string{"凉菜"}})
	require.Equal(t, http.StatusCreated, w.Code)

	w = testhelpers.DoJSON(t, env.router, http.MethodGet, "/api/v1/recipes?tag=快手菜", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Recipes []models.Recipe `json:"recipes"`
	}
	testhelpers.DecodeJSON(t, w, &list)
	require.Len(t, list.Recipes, 1)
	assert.Equal(t, "番茄炒蛋", list.Recipes[0].Name)

	w = testhelpers.DoJSON(t, env.router, http.MethodPut, "/api/v1/recipes/"+recipe.ID, token, types.RecipeRequest{Name: "西红柿炒鸡蛋"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Recipe
	testhelpers.DecodeJSON(t, w, &updated)
	assert.Equal(t, recipe.ID, updated.ID)
	assert.Equal(t, "西红柿炒鸡蛋", updated.Name)

	w = testhelpers.DoJSON(t, env.router, http.MethodPut, "/api/v1/recipes/missing", token, types.RecipeRequest{Name: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testhelpers.DoJSON(t, env.router, http.MethodDelete, "/api/v1/recipes/"+recipe.ID+"?confirm=true", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = testhelpers.DoJSON(t, env.router, http.MethodGet, "/api/v1/recipes", token, nil)
	testhelpers.DecodeJSON(t, w, &list)
	assert.Len(t, list.Recipes, 1)
}

func TestProfile(t *testing.T) {
	env := setupAPI(t, false)
	token := env.session(t)

	w := testhelpers.DoJSON(t, env.router, http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.UserProfile
	testhelpers.DecodeJSON(t, w, &profile)
	assert.Equal(t, service.DefaultProfileName, profile.Name)

	w = testhelpers.DoJSON(t, env.router, http.MethodPut, "/api/v1/profile", token, map[string]interface{}{
		"emails": []string{"not an address"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testhelpers.DoJSON(t, env.router, http.MethodPut, "/api/v1/profile", token, map[string]interface{}{
		"name": "小厨", "emails": []string{"cook@example.com", "COOK@example.com"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	testhelpers.DecodeJSON(t, w, &profile)
	assert.Equal(t, "小厨", profile.Name)
	assert.Equal(t, []string{"cook@example.com"}, profile.Emails)
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUploadDisabled(t *testing.T) {
	env := setupAPI(t, false)
	token := env.session(t)

	body, ct := multipartBody(t, "file", "a.png", "image/png", pngHeader, nil)
	w := doMultipart(env, "/api/v1/uploads", token, body, ct)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUpload(t *testing.T) {
	env := setupAPI(t, true)
	token := env.session(t)

	env.uploader.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return filepath.Ext(key) == ".png"
	}), "image/png", pngHeader).Return("https://cdn.example.com/a.png", nil)

	body, ct := multipartBody(t, "file", "a.png", "image/png", pngHeader, nil)
	w := doMultipart(env, "/api/v1/uploads", token, body, ct)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "https://cdn.example.com/a.png")

	body, ct = multipartBody(t, "file", "notes.txt", "text/plain", []byte("hello"), nil)
	w = doMultipart(env, "/api/v1/uploads", token, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.uploader.AssertNumberOfCalls(t, "Upload", 1)
}

func TestEditFollowsLifecycle(t *testing.T) {
	env := setupAPI(t, false)
	token := env.session(t)

	w := testhelpers.DoJSON(t, env.router, http.MethodPost, "/api/v1/items", token, map[string]string{"name": "面包"})
	require.Equal(t, http.StatusCreated, w.Code)
	var bread models.InventoryItem
	testhelpers.DecodeJSON(t, w, &bread)

	w = testhelpers.DoJSON(t, env.router, http.MethodPut, "/api/v1/items/"+bread.ID, token, map[string]int{"usage_progress": 100})
	require.Equal(t, http.StatusOK, w.Code)
	testhelpers.DecodeJSON(t, w, &bread)
	assert.Equal(t, models.StatusConsumed, bread.Status)
	assert.NotNil(t, bread.ConsumedAt)

	w = testhelpers.DoJSON(t, env.router, http.MethodPut, "/api/v1/items/"+bread.ID, token, map[string]int{"usage_progress": 20})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = testhelpers.DoJSON(t, env.router, http.MethodPut, "/api/v1/items/"+bread.ID, token, map[string]string{"status": "active"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = testhelpers.DoJSON(t, env.router, http.MethodGet, "/api/v1/items/"+bread.ID, token, nil)
	testhelpers.DecodeJSON(t, w, &bread)
	assert.Equal(t, models.StatusConsumed, bread.Status)
	assert.Equal(t, 100, bread.UsageProgress)
}
