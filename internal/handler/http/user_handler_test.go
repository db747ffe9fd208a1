package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handler "github.com/mikiasgoitom/airhost/internal/handler/http"
	dto "github.com/mikiasgoitom/airhost/internal/handler/http/dto"
	"github.com/mikiasgoitom/airhost/internal/handler/http/middleware"
	mocks "github.com/mikiasgoitom/airhost/internal/handler/http/mocks"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.RegisterCustomValidators()
	os.Exit(m.Run())
}

var testCookie = middleware.CookieOptions{TTL: time.Hour}

func setupRouter(h handler.UserHandlerInterface, auth middleware.Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(middleware.LoadSession(auth, false))
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/users/:id", h.GetUser)
	r.GET("/me", middleware.RequireAuth(), h.GetCurrentUser)
	r.PUT("/me", middleware.RequireAuth(), h.UpdateCurrentUser)
	return r
}

func doJSON(r http.Handler, method, path string, payload interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	r := setupRouter(handler.NewUserHandler(mockUsecase, testCookie), mockUsecase)

	w := doJSON(r, http.MethodPost, "/register", dto.RegisterRequest{
		Username: "newhost",
		Email:    "new@example.com",
		Password: "secret1",
		Phone:    "9876543210",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "newhost")
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, "mock_session_token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestRegister_Fail(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	r := setupRouter(handler.NewUserHandler(mockUsecase, testCookie), mockUsecase)

	w := doJSON(r, http.MethodPost, "/register", dto.RegisterRequest{Username: "ab", Email: "nope", Password: "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Field validation for 'Username' failed on the 'min' tag")
	assert.Contains(t, w.Body.String(), "Field validation for 'Email' failed on the 'email' tag")
	assert.Contains(t, w.Body.String(), "Field validation for 'Password' failed on the 'min' tag")

	w = doJSON(r, http.MethodPost, "/register", dto.RegisterRequest{Username: "abc", Email: "a@b.co", Password: "123456", Phone: "12ab"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'phone' tag")

	mockUsecase.ShouldFailRegister = true
	w = doJSON(r, http.MethodPost, "/register", dto.RegisterRequest{Username: "abc", Email: "a@b.co", Password: "123456"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	r := setupRouter(handler.NewUserHandler(mockUsecase, testCookie), mockUsecase)

	w := doJSON(r, http.MethodPost, "/login", dto.LoginRequest{Username: "testuser", Password: "secret1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mock_session_token")
	assert.NotNil(t, sessionCookie(w))
}

func TestLogin_Fail(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	r := setupRouter(handler.NewUserHandler(mockUsecase, testCookie), mockUsecase)

	mockUsecase.ShouldFailLogin = true
	w := doJSON(r, http.MethodPost, "/login", dto.LoginRequest{Username: "testuser", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid username or password")
	assert.Nil(t, sessionCookie(w))

	mockUsecase.ShouldFailLogin = false
	mockUsecase.ShouldBlock = true
	w = doJSON(r, http.MethodPost, "/login", dto.LoginRequest{Username: "testuser", Password: "secret1"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPost, "/login", map[string]string{"username": "testuser"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	r := setupRouter(handler.NewUserHandler(mockUsecase, testCookie), mockUsecase)

	w := doJSON(r, http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestGetUser(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	r := setupRouter(handler.NewUserHandler(mockUsecase, testCookie), mockUsecase)

	w := doJSON(r, http.MethodGet, "/users/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "testuser")
	assert.Contains(t, w.Body.String(), `"listings":[]`)
}

func TestGetUser_Fail(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	mockUsecase.ShouldFailGetByID = true
	r := setupRouter(handler.NewUserHandler(mockUsecase, testCookie), mockUsecase)

	w := doJSON(r, http.MethodGet, "/users/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestCurrentUser(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	r := setupRouter(handler.NewUserHandler(mockUsecase, testCookie), mockUsecase)
	session := &http.Cookie{Name: middleware.SessionCookie, Value: "mock_session_token"}

	w := doJSON(r, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/me", nil, session)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mock-user-id")

	w = doJSON(r, http.MethodGet, "/me", nil, &http.Cookie{Name: middleware.SessionCookie, Value: "forged"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	mockUsecase.ShouldBlock = true
	w = doJSON(r, http.MethodGet, "/me", nil, session)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "blocked users are signed out")
}

func TestUpdateCurrentUser(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()
	r := setupRouter(handler.NewUserHandler(mockUsecase, testCookie), mockUsecase)
	session := &http.Cookie{Name: middleware.SessionCookie, Value: "mock_session_token"}

	w := doJSON(r, http.MethodPut, "/me", map[string]interface{}{"phone": "9876543210", "role": "admin"}, session)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"phone": "9876543210"}, mockUsecase.LastUpdates)

	mockUsecase.ShouldFailUpdateUser = true
	w = doJSON(r, http.MethodPut, "/me", map[string]interface{}{"location": "Goa"}, session)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}
