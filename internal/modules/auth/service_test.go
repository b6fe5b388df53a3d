package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hostel/internal/domain"
	"hostel/internal/middleware"
	"hostel/internal/pkg/jwt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 42
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func newService(users *mockUserRepo) (*Service, *jwt.Service) {
	tokens := jwt.New("test-secret", time.Hour)
	svc := NewService(users, tokens)
	svc.cost = bcrypt.MinCost
	return svc, tokens
}

func TestService_Register_Success(t *testing.T) {
	users := new(mockUserRepo)
	svc, _ := newService(users)

	users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	u, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "New Guest",
		Email:    " New@Example.com ",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), u.ID)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")))
	users.AssertExpectations(t)
}

func TestService_Register_EmailExists(t *testing.T) {
	users := new(mockUserRepo)
	svc, _ := newService(users)

	users.On("GetByEmail", mock.Anything, "taken@example.com").Return(&domain.User{ID: 1}, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "X Y", Email: "taken@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Login(t *testing.T) {
	users := new(mockUserRepo)
	svc, tokens := newService(users)

	user := &domain.User{ID: 7, Email: "manager@example.com", Role: domain.RoleManager, PasswordHash: hashed(t, "s3cret-pass")}
	users.On("GetByEmail", mock.Anything, "manager@example.com").Return(user, nil)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	res, err := svc.Login(context.Background(), LoginRequest{Email: "Manager@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	claims, err := tokens.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "MANAGER", claims.Role)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "manager@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestHandler_LoginSetsCookieAndMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	users := new(mockUserRepo)
	svc, tokens := newService(users)

	user := &domain.User{ID: 3, Email: "staff@example.com", Name: "Staff", Role: domain.RoleStaff, PasswordHash: hashed(t, "s3cret-pass")}
	users.On("GetByEmail", mock.Anything, "staff@example.com").Return(user, nil)
	users.On("GetByID", mock.Anything, int64(3)).Return(user, nil)

	h := NewHandler(svc, CookieConfig{Name: "token", TTL: time.Hour}, true)
	r := gin.New()
	v1 := r.Group("/api/v1")
	h.RegisterPublicRoutes(v1)
	protected := v1.Group("", middleware.JWTAuth(tokens, "token"))
	h.RegisterProtectedRoutes(protected)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"staff@example.com","password":"s3cret-pass"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "PasswordHash")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			User UserPublic `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "STAFF", resp.Data.User.Role)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"staff@example.com","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
}
