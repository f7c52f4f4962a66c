package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"transcript_api/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserService is a mock implementation of UserServiceInterface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(username, password string) (int, error) {
	args := m.Called(username, password)
	return args.Int(0), args.Error(1)
}

func (m *MockUserService) Authenticate(username, password string) (*User, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(username string) (*User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func setupTestRouter(t *testing.T, service UserServiceInterface) (*gin.Engine, *auth.Codec) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := auth.NewCodec("unit-test-secret", "HS256")
	require.NoError(t, err)

	router := gin.New()
	controller := NewUserController(service, codec)
	router.POST("/token", controller.Login)
	router.POST("/sing-up", controller.Register)

	return router, codec
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	mockService := new(MockUserService)
	router, codec := setupTestRouter(t, mockService)

	mockService.On("Authenticate", "bob", "pw123").Return(&User{
		ID:        1,
		Username:  "bob",
		CreatedAt: time.Now(),
	}, nil)

	w := postForm(router, "/token", url.Values{
		"username": {"bob"},
		"password": {"pw123"},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp["token_type"])
	require.NotEmpty(t, resp["access_token"])

	// The issued token names the authenticated user
	claims, err := codec.Decode(resp["access_token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Subject)

	mockService.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mockService := new(MockUserService)
	router, _ := setupTestRouter(t, mockService)

	mockService.On("Authenticate", "bob", "wrong").Return(nil, ErrInvalidCredentials)

	w := postForm(router, "/token", url.Values{
		"username": {"bob"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Incorrect username or password", resp["detail"])
}

func TestLogin_MissingFields(t *testing.T) {
	mockService := new(MockUserService)
	router, _ := setupTestRouter(t, mockService)

	// No credentials at all gets the same generic rejection
	w := postForm(router, "/token", url.Values{})

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Incorrect username or password", resp["detail"])

	mockService.AssertNotCalled(t, "Authenticate")
}

func TestRegister_Success(t *testing.T) {
	mockService := new(MockUserService)
	router, _ := setupTestRouter(t, mockService)

	mockService.On("Register", "bob", "pw123").Return(1, nil)

	body := `{"username":"bob","password":"pw123"}`
	req := httptest.NewRequest("POST", "/sing-up", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "User created successfully", resp["message"])

	mockService.AssertExpectations(t)
}

func TestRegister_UsernameTaken(t *testing.T) {
	mockService := new(MockUserService)
	router, _ := setupTestRouter(t, mockService)

	mockService.On("Register", "bob", "pw123").Return(0, ErrUsernameTaken)

	body := `{"username":"bob","password":"pw123"}`
	req := httptest.NewRequest("POST", "/sing-up", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Username already registered", resp["detail"])
}

func TestRegister_InvalidBody(t *testing.T) {
	mockService := new(MockUserService)
	router, _ := setupTestRouter(t, mockService)

	req := httptest.NewRequest("POST", "/sing-up", strings.NewReader(`{"username":"bob"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Register")
}
