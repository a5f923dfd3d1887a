package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmartsolutions/bookstore-api/models"
	"github.com/cmartsolutions/bookstore-api/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserService is a mock implementation of services.UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, input services.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) ListUnverified(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) VerifyUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserService) UpdateRoles(ctx context.Context, id uuid.UUID, roles []string) error {
	args := m.Called(ctx, id, roles)
	return args.Error(0)
}

func userRouter(h *UserHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/User/register", h.Register)
	r.Get("/User", h.List)
	r.Get("/User/unverified", h.ListUnverified)
	r.Get("/User/{id}", h.Get)
	r.Put("/User/{id}/verify", h.Verify)
	r.Put("/User/{id}/roles", h.UpdateRoles)
	return r
}

func serveUsers(h *UserHandler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	userRouter(h).ServeHTTP(w, req)
	return w
}

func TestUserHandlerRegister(t *testing.T) {
	logger := zap.NewNop()

	t.Run("valid registration returns 201 without the password hash", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(svc, logger)

		input := services.RegisterInput{Username: "newuser", Email: "new@example.com", Password: "secret1"}
		user := models.NewUser(input.Username, input.Email, "$2a$10$hash")
		svc.On("Register", mock.Anything, input).Return(user, nil)

		w := serveUsers(h, http.MethodPost, "/User/register",
			`{"username":"newuser","email":"new@example.com","password":"secret1"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "$2a$10$hash")

		var got models.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "newuser", got.Username)
		assert.False(t, got.IsVerified)
		assert.Equal(t, []string{models.RoleReadOnly}, got.Roles)
	})

	t.Run("duplicate username maps to 409", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(svc, logger)

		svc.On("Register", mock.Anything, mock.Anything).Return(nil, services.ErrUsernameTaken)

		w := serveUsers(h, http.MethodPost, "/User/register",
			`{"username":"taken","password":"secret1"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Username already taken.", strings.TrimSpace(w.Body.String()))
	})

	t.Run("missing fields return 400 without touching the service", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(svc, logger)

		for _, body := range []string{`{"username":"x"}`, `{"password":"secret1"}`, `{}`} {
			w := serveUsers(h, http.MethodPost, "/User/register", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		}
		svc.AssertNotCalled(t, "Register")
	})
}

func TestUserHandlerList(t *testing.T) {
	logger := zap.NewNop()

	svc := new(MockUserService)
	h := NewUserHandler(svc, logger)

	users := []models.User{
		*models.NewUser("User1", "", "hash1"),
		*models.NewUser("User2", "", "hash2"),
	}
	svc.On("ListUsers", mock.Anything).Return(users, nil)

	w := serveUsers(h, http.MethodGet, "/User", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var got []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestUserHandlerListUnverified(t *testing.T) {
	logger := zap.NewNop()

	svc := new(MockUserService)
	h := NewUserHandler(svc, logger)

	users := []models.User{*models.NewUser("pending", "", "hash")}
	svc.On("ListUnverified", mock.Anything).Return(users, nil)

	w := serveUsers(h, http.MethodGet, "/User/unverified", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var got []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.False(t, got[0].IsVerified)
}

func TestUserHandlerGet(t *testing.T) {
	logger := zap.NewNop()

	t.Run("unknown ID returns 404", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(svc, logger)

		id := uuid.New()
		svc.On("GetUser", mock.Anything, id).Return(nil, services.ErrUserNotFound)

		w := serveUsers(h, http.MethodGet, "/User/"+id.String(), "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found.", strings.TrimSpace(w.Body.String()))
	})

	t.Run("non-UUID ID returns 400", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(svc, logger)

		w := serveUsers(h, http.MethodGet, "/User/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid user ID.", strings.TrimSpace(w.Body.String()))
	})
}

func TestUserHandlerVerify(t *testing.T) {
	logger := zap.NewNop()

	svc := new(MockUserService)
	h := NewUserHandler(svc, logger)

	id := uuid.New()
	svc.On("VerifyUser", mock.Anything, id).Return(nil)

	w := serveUsers(h, http.MethodPut, "/User/"+id.String()+"/verify", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"User verified."}`, w.Body.String())
}

func TestUserHandlerUpdateRoles(t *testing.T) {
	logger := zap.NewNop()

	t.Run("valid role set returns 200", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(svc, logger)

		id := uuid.New()
		svc.On("UpdateRoles", mock.Anything, id, []string{"Admin", "Moderator"}).Return(nil)

		w := serveUsers(h, http.MethodPut, "/User/"+id.String()+"/roles",
			`{"roles":["Admin","Moderator"]}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Roles updated."}`, w.Body.String())
	})

	t.Run("empty role set maps to 400", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(svc, logger)

		id := uuid.New()
		svc.On("UpdateRoles", mock.Anything, id, mock.Anything).Return(services.ErrNoRoles)

		w := serveUsers(h, http.MethodPut, "/User/"+id.String()+"/roles", `{"roles":[]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "At least one role is required.", strings.TrimSpace(w.Body.String()))
	})
}
