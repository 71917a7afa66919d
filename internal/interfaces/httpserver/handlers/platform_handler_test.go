package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apkraft/internal/domain/platform"
	"apkraft/internal/utils/platformerrors"
)

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestPlatformHandler_Create(t *testing.T) {
	s := newTestServices()
	var got platform.CreatePlatform
	s.platforms.CreateFunc = func(ctx context.Context, in platform.CreatePlatform) (*platform.Platform, error) {
		got = in
		return &platform.Platform{ID: 1, Name: in.Name, Code: in.Code}, nil
	}
	router := setupTestRouter(s)

	w := doRequest(router, http.MethodPost, "/api/platforms/", `{"name":"Android","code":0}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, platform.CreatePlatform{Name: "Android", Code: 0}, got)
	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["code"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Android", data["name"])
	assert.NotContains(t, body, "error")
}

func TestPlatformHandler_MalformedJSON(t *testing.T) {
	s := newTestServices()
	s.platforms.CreateFunc = func(ctx context.Context, in platform.CreatePlatform) (*platform.Platform, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}
	router := setupTestRouter(s)

	w := doRequest(router, http.MethodPost, "/api/platforms/", `{"name":`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(http.StatusBadRequest), body["code"])
	assert.Equal(t, "bad request", body["error"])
	assert.NotEmpty(t, body["description"])
}

func TestPlatformHandler_BindingValidation(t *testing.T) {
	router := setupTestRouter(newTestServices())

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "missing name", body: `{"code":1}`, field: "name"},
		{name: "missing code", body: `{"name":"iOS"}`, field: "code"},
		{name: "code out of range", body: `{"name":"iOS","code":70000}`, field: "code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/api/platforms/", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, "validation failed", body["error"])
			assert.Contains(t, body["description"], tt.field)
		})
	}
}

func TestPlatformHandler_DuplicateCode(t *testing.T) {
	s := newTestServices()
	s.platforms.CreateFunc = func(ctx context.Context, in platform.CreatePlatform) (*platform.Platform, error) {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain, "platform with code 1 already exists", "platform-code-duplicate-001")
	}
	router := setupTestRouter(s)

	w := doRequest(router, http.MethodPost, "/api/platforms/", `{"name":"iOS","code":1}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "platform with code 1 already exists", body["error"])
}

func TestPlatformHandler_GetNotFound(t *testing.T) {
	s := newTestServices()
	s.platforms.GetFunc = func(ctx context.Context, id int64) (*platform.Platform, error) {
		return nil, platformerrors.NotFound(ctx, platformerrors.LayerRepository, "platform not found", "platform-find-001")
	}
	router := setupTestRouter(s)

	w := doRequest(router, http.MethodGet, "/api/platforms/42", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(http.StatusNotFound), body["code"])
	assert.Equal(t, "platform not found", body["error"])
}

func TestPlatformHandler_InvalidID(t *testing.T) {
	router := setupTestRouter(newTestServices())

	for _, path := range []string{"/api/platforms/abc", "/api/platforms/0", "/api/platforms/-3"} {
		w := doRequest(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestPlatformHandler_PatchClearsIcon(t *testing.T) {
	s := newTestServices()
	var got platform.Patch
	s.platforms.PatchFunc = func(ctx context.Context, id int64, patch platform.Patch) (*platform.Platform, error) {
		got = patch
		return &platform.Platform{ID: id}, nil
	}
	router := setupTestRouter(s)

	w := doRequest(router, http.MethodPatch, "/api/platforms/3", `{"icon_url":null}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	icon, ok := got.IconURL.Get()
	assert.True(t, ok)
	assert.Nil(t, icon)
	assert.False(t, got.Name.IsSet())
	assert.False(t, got.Code.IsSet())
}

func TestPlatformHandler_Delete(t *testing.T) {
	s := newTestServices()
	var deleted int64
	s.platforms.DeleteFunc = func(ctx context.Context, id int64) error {
		deleted = id
		return nil
	}
	router := setupTestRouter(s)

	w := doRequest(router, http.MethodDelete, "/api/platforms/7", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":0}`, w.Body.String())
	assert.Equal(t, int64(7), deleted)
}

func TestPlatformHandler_ListEmpty(t *testing.T) {
	router := setupTestRouter(newTestServices())

	w := doRequest(router, http.MethodGet, "/api/platforms/", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":0,"data":[]}`, w.Body.String())
}
