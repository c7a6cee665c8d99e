// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAdapter creates an httpAccountsAdapter pointed at serverURL.
func newTestAdapter(t *testing.T, serverURL string) *httpAccountsAdapter {
	t.Helper()

	a, err := NewHTTPAccountsAdapter(config.Client{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpAccountsAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── construction ────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: " https://accounts.example.com/ ", want: "https://accounts.example.com"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPAccountsAdapter_StoresConfiguredToken(t *testing.T) {
	a, err := NewHTTPAccountsAdapter(config.Client{HTTPAddress: "localhost:1", Token: "  saved  "}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "saved", a.Token())
}

// ── Register ────────────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@x.com", req.Email)
		assert.Equal(t, "http://front", req.ReturnURLBase)

		writeJSON(t, w, http.StatusCreated, models.User{UserID: 7, Email: req.Email, FirstName: req.FirstName})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Register(context.Background(), models.RegisterRequest{
		Email: "a@x.com", Password: "pw", FirstName: "Ann", ReturnURLBase: "http://front",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
	assert.False(t, got.IsVerified)
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, models.ErrorResponse{Error: "email already exists"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.RegisterRequest{Email: "a@x.com"})

	require.ErrorIs(t, err, ErrConflict)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "email already exists", apiErr.Message)
}

func TestRegister_ValidationFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, models.ErrorResponse{
			Error:  "invalid data provided",
			Fields: map[string]string{"email": "email must be a valid email address"},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.RegisterRequest{})

	require.ErrorIs(t, err, ErrBadRequest)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "email must be a valid email address", apiErr.Fields["email"])
}

// ── Login ───────────────────────────────────────────────────────────────────

func TestLogin_StoresTokenFromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/login", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.LoginResponse{User: models.User{UserID: 1}, Token: "body-token"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	user, err := a.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.UserID)
	assert.Equal(t, "body-token", a.Token())
}

func TestLogin_FallsBackToHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Bearer header-token")
		writeJSON(t, w, http.StatusOK, models.LoginResponse{User: models.User{UserID: 1}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "header-token", a.Token())
}

func TestLogin_NoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.LoginResponse{})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{})

	require.ErrorIs(t, err, ErrNoToken)
	assert.Empty(t, a.Token())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "bad"})

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.Token())
}

// ── code flows ──────────────────────────────────────────────────────────────

func TestVerifyEmail_EscapesCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/verify/ab%2Fcd", r.URL.EscapedPath())
		writeJSON(t, w, http.StatusOK, models.User{UserID: 1, IsVerified: true})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	user, err := a.VerifyEmail(context.Background(), "ab/cd")

	require.NoError(t, err)
	assert.True(t, user.IsVerified)
}

func TestResetPassword_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/reset_password/c0de", r.URL.Path)

		var req models.NewPasswordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "new-pw", req.Password)

		writeJSON(t, w, http.StatusNotFound, models.ErrorResponse{Error: "verification code was not found"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.ResetPassword(context.Background(), "c0de", models.NewPasswordRequest{Password: "new-pw"})

	require.ErrorIs(t, err, ErrNotFound)
}

// ── authenticated calls ─────────────────────────────────────────────────────

func TestAuthenticatedCalls_SendBearerAndTraceID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "trace-1", r.Header.Get("X-Trace-ID"))

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/users/me":
			writeJSON(t, w, http.StatusOK, models.User{UserID: 3})
		case r.Method == http.MethodGet && r.URL.Path == "/users":
			writeJSON(t, w, http.StatusOK, []models.User{{UserID: 1}, {UserID: 3}})
		case r.Method == http.MethodGet && r.URL.Path == "/users/3":
			writeJSON(t, w, http.StatusOK, models.User{UserID: 3})
		case r.Method == http.MethodPut && r.URL.Path == "/users/3":
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"firstName":"Zed"}`, string(body))
			writeJSON(t, w, http.StatusOK, models.User{UserID: 3, FirstName: "Zed"})
		case r.Method == http.MethodDelete && r.URL.Path == "/users/3":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")
	ctx := utils.WithTraceID(context.Background(), "trace-1")

	me, err := a.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), me.UserID)

	users, err := a.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	user, err := a.GetUser(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.UserID)

	name := "Zed"
	updated, err := a.UpdateUser(ctx, 3, models.UserUpdate{FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Zed", updated.FirstName)

	require.NoError(t, a.DeleteUser(ctx, 3))
}

func TestGetUser_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetUser(context.Background(), 1)

	require.ErrorIs(t, err, ErrUnexpectedStatus)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream down", apiErr.Message)
}

// ── server info ─────────────────────────────────────────────────────────────

func TestVersionAndHealth(t *testing.T) {
	var unhealthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/version":
			writeJSON(t, w, http.StatusOK, models.AppBuildInfo{BuildVersion: "v1.2.3"})
		case "/healthz":
			if !unhealthy.Load() {
				writeJSON(t, w, http.StatusOK, map[string]string{"status": "ok"})
				return
			}
			writeJSON(t, w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	info, err := a.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", info.BuildVersion)

	require.NoError(t, a.Health(context.Background()))

	unhealthy.Store(true)
	require.ErrorIs(t, a.Health(context.Background()), ErrServiceUnavailable)
}

func TestRequest_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, url)
	_, err := a.Version(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "version request")
}
