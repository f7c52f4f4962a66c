//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"transcript_api/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestAuth_RegisterLoginFlow tests the complete authentication flow
func TestAuth_RegisterLoginFlow(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup(t)

	router := handler.SetupHandler(env.DB, env.RabbitConn, env.RedisClient, env.Config)

	username := fmt.Sprintf("testuser_%d", time.Now().UnixNano())
	password := "SecurePass123!"

	var accessToken string

	t.Run("SignUp_Success", func(t *testing.T) {
		payload := map[string]string{"username": username, "password": password}
		body, _ := json.Marshal(payload)

		req := httptest.NewRequest("POST", "/sing-up", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "User created successfully", resp["message"])
	})

	t.Run("SignUp_Duplicate", func(t *testing.T) {
		payload := map[string]string{"username": username, "password": password}
		body, _ := json.Marshal(payload)

		req := httptest.NewRequest("POST", "/sing-up", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Username already registered", resp["detail"])
	})

	t.Run("Login_Success", func(t *testing.T) {
		form := url.Values{"username": {username}, "password": {password}}

		req := httptest.NewRequest("POST", "/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "bearer", resp["token_type"])
		require.NotEmpty(t, resp["access_token"])
		accessToken = resp["access_token"].(string)
	})

	t.Run("Login_WrongPassword", func(t *testing.T) {
		form := url.Values{"username": {username}, "password": {"wrong"}}

		req := httptest.NewRequest("POST", "/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Incorrect username or password", resp["detail"])
	})

	t.Run("Login_UnknownUser_SameResponse", func(t *testing.T) {
		form := url.Values{"username": {"nobody-registered-this"}, "password": {"whatever"}}

		req := httptest.NewRequest("POST", "/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Incorrect username or password", resp["detail"])
	})

	t.Run("Protected_WithToken", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/transcripts", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Protected_TruncatedToken", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/transcripts", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken[:len(accessToken)-1])
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Could not validate credentials", resp["detail"])
	})

	t.Run("Protected_NoToken", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/transcripts", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	})
}
