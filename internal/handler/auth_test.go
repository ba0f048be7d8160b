package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blogbackend/internal/models"
	"blogbackend/internal/service"
)

// fakeAuthService implements service.AuthService for testing.
type fakeAuthService struct {
	registerUser *models.User
	registerErr  error
	loginToken   string
	loginErr     error
	currentUser  *models.User
	currentErr   error
}

func (f *fakeAuthService) Register(email, password string) (*models.User, error) {
	return f.registerUser, f.registerErr
}

func (f *fakeAuthService) Login(email, password string) (string, time.Time, error) {
	if f.loginErr != nil {
		return "", time.Time{}, f.loginErr
	}
	return f.loginToken, time.Now().Add(time.Hour), nil
}

func (f *fakeAuthService) CurrentUser(id int64) (*models.User, error) {
	return f.currentUser, f.currentErr
}

func setupAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(svc, zap.NewNop())
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeAuthService
		expectedCode int
	}{
		{
			name:         "invalid JSON",
			body:         `not a json`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing password",
			body:         `{"email":"alice@example.com"}`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid email",
			body:         `{"email":"not-an-email","password":"password123"}`,
			service:      &fakeAuthService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "duplicate",
			body:         `{"email":"alice@example.com","password":"password123"}`,
			service:      &fakeAuthService{registerErr: service.ErrUserAlreadyExists},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "success",
			body:         `{"email":"alice@example.com","password":"password123"}`,
			service:      &fakeAuthService{registerUser: &models.User{ID: 1, Email: "alice@example.com", Role: models.RoleUser}},
			expectedCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupAuthRouter(tt.service)
			w := postJSON(r, "/api/auth/register", tt.body)
			if w.Code != tt.expectedCode {
				t.Fatalf("expected %d, got %d (body %s)", tt.expectedCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	r := setupAuthRouter(&fakeAuthService{loginToken: "signed.jwt.token"})

	w := postJSON(r, "/api/auth/login", `{"email":"alice@example.com","password":"password123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"token":"signed.jwt.token"`) {
		t.Errorf("expected token in response, got %s", w.Body.String())
	}
}

// The response for a wrong password must be byte-identical to the response
// for an unknown email.
func TestAuthHandler_Login_GenericUnauthorized(t *testing.T) {
	r := setupAuthRouter(&fakeAuthService{loginErr: service.ErrInvalidCredentials})

	wrongPassword := postJSON(r, "/api/auth/login", `{"email":"alice@example.com","password":"wrong"}`)
	unknownEmail := postJSON(r, "/api/auth/login", `{"email":"ghost@example.com","password":"password123"}`)

	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Errorf("error shapes differ: %s vs %s", wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}
