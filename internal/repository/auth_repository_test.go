package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarteval/smarteval-go/internal/api"
	"github.com/smarteval/smarteval-go/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(api.Options{BaseURL: server.URL + "/api"})
}

func TestLoginSuccess(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "amara@example.edu", req.Email)

		json.NewEncoder(w).Encode(models.LoginResponse{
			Token: "tok-123",
			User:  models.User{ID: "u-1", Email: req.Email, Role: models.RoleStudent},
		})
	}))
	repo := NewAuthRepository(client, nil)

	got := collect(t, repo.Login(context.Background(), models.LoginRequest{
		Email:    "amara@example.edu",
		Password: "hunter22",
	}))

	require.Len(t, got, 2)
	assert.True(t, got[0].IsLoading())
	require.True(t, got[1].IsSuccess())
	assert.Equal(t, "tok-123", got[1].Value().Token)
	assert.Equal(t, "u-1", got[1].Value().User.ID)
}

func TestLoginServerMessageSurfaces(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	repo := NewAuthRepository(client, nil)

	got := collect(t, repo.Login(context.Background(), models.LoginRequest{
		Email:    "amara@example.edu",
		Password: "wrong",
	}))

	require.Len(t, got, 2)
	require.True(t, got[1].IsError())
	assert.Equal(t, "Invalid credentials", got[1].Message())
}

func TestLoginFallbackWhenBodyUnusable(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>gateway exploded</html>"))
	}))
	repo := NewAuthRepository(client, nil)

	got := collect(t, repo.Login(context.Background(), models.LoginRequest{
		Email:    "amara@example.edu",
		Password: "hunter22",
	}))

	require.Len(t, got, 2)
	require.True(t, got[1].IsError())
	assert.Equal(t, "Login failed", got[1].Message())
}

func TestLoginValidationBlocksNetwork(t *testing.T) {
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	repo := NewAuthRepository(client, nil)

	got := collect(t, repo.Login(context.Background(), models.LoginRequest{
		Email:    "not-an-email",
		Password: "hunter22",
	}))

	require.Len(t, got, 2)
	require.True(t, got[1].IsError())
	assert.Equal(t, "email must be a valid email address", got[1].Message())
	assert.False(t, called, "invalid request must not reach the server")
}

func TestRegisterValidationMessages(t *testing.T) {
	repo := NewAuthRepository(newTestClient(t, http.NotFoundHandler()), nil)

	tests := []struct {
		name string
		req  models.RegisterRequest
		want string
	}{
		{
			name: "missing username",
			req:  models.RegisterRequest{Email: "a@b.co", Password: "secret1", Role: "STUDENT"},
			want: "username is required",
		},
		{
			name: "short password",
			req:  models.RegisterRequest{Username: "amara", Email: "a@b.co", Password: "abc", Role: "STUDENT"},
			want: "password is too short",
		},
		{
			name: "unknown role",
			req:  models.RegisterRequest{Username: "amara", Email: "a@b.co", Password: "secret1", Role: "WIZARD"},
			want: "role has an unsupported value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, repo.Register(context.Background(), tt.req))
			require.Len(t, got, 2)
			require.True(t, got[1].IsError())
			assert.Equal(t, tt.want, got[1].Message())
		})
	}
}

func TestNetworkFailureUsesFallback(t *testing.T) {
	// Point at a closed server so the dial fails.
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()
	client := api.NewClient(api.Options{BaseURL: base + "/api"})
	repo := NewAuthRepository(client, nil)

	got := collect(t, repo.Login(context.Background(), models.LoginRequest{
		Email:    "amara@example.edu",
		Password: "hunter22",
	}))

	require.Len(t, got, 2)
	require.True(t, got[1].IsError())
	assert.Equal(t, "Login failed", got[1].Message())
}
