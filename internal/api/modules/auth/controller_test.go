package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanbaker/interview/internal/stores/user"
	"github.com/ethanbaker/interview/pkg/sdk"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := user.NewFileStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)
	Init(store)

	engine := gin.New()
	RegisterRoutes(engine.Group("/api"))
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSignup(t *testing.T) {
	t.Run("valid registration", func(t *testing.T) {
		engine := newTestEngine(t)

		w := postJSON(t, engine, "/api/auth/signup", sdk.SignupRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "Abcdef1!",
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var resp sdk.ApiResponse[sdk.UserResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "alice@example.com", resp.Data.Email)
	})

	t.Run("weak password", func(t *testing.T) {
		engine := newTestEngine(t)

		w := postJSON(t, engine, "/api/auth/signup", sdk.SignupRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "abc",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		engine := newTestEngine(t)

		signup := sdk.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "Abcdef1!"}
		w := postJSON(t, engine, "/api/auth/signup", signup)
		require.Equal(t, http.StatusCreated, w.Code)

		w = postJSON(t, engine, "/api/auth/signup", signup)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		engine := newTestEngine(t)

		w := postJSON(t, engine, "/api/auth/signup", map[string]string{"name": "Alice"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	engine := newTestEngine(t)

	w := postJSON(t, engine, "/api/auth/signup", sdk.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "Abcdef1!",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("correct credentials", func(t *testing.T) {
		w := postJSON(t, engine, "/api/auth/login", sdk.LoginRequest{
			Email:    "alice@example.com",
			Password: "Abcdef1!",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp sdk.ApiResponse[sdk.UserResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Alice", resp.Data.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postJSON(t, engine, "/api/auth/login", sdk.LoginRequest{
			Email:    "alice@example.com",
			Password: "Wrongpw1!",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := postJSON(t, engine, "/api/auth/login", sdk.LoginRequest{
			Email:    "nobody@example.com",
			Password: "Abcdef1!",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
