// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────

// fakeAccountService implements service.AccountService. A nil function
// field fails the test when called.
type fakeAccountService struct {
	t *testing.T

	registerFn             func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	verifyEmailFn          func(ctx context.Context, code string) (models.User, error)
	loginFn                func(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)
	requestPasswordResetFn func(ctx context.Context, req models.PasswordResetRequest) (models.User, error)
	consumePasswordResetFn func(ctx context.Context, code string, req models.NewPasswordRequest) (models.User, error)
	listUsersFn            func(ctx context.Context) ([]models.User, error)
	getUserFn              func(ctx context.Context, userID int64) (models.User, error)
	updateUserFn           func(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)
	deleteUserFn           func(ctx context.Context, userID int64) error
}

func (f *fakeAccountService) unexpected(name string) {
	f.t.Helper()
	f.t.Fatalf("unexpected call to AccountService.%s", name)
}

func (f *fakeAccountService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if f.registerFn == nil {
		f.unexpected("Register")
	}
	return f.registerFn(ctx, req)
}

func (f *fakeAccountService) VerifyEmail(ctx context.Context, code string) (models.User, error) {
	if f.verifyEmailFn == nil {
		f.unexpected("VerifyEmail")
	}
	return f.verifyEmailFn(ctx, code)
}

func (f *fakeAccountService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	if f.loginFn == nil {
		f.unexpected("Login")
	}
	return f.loginFn(ctx, req)
}

func (f *fakeAccountService) RequestPasswordReset(ctx context.Context, req models.PasswordResetRequest) (models.User, error) {
	if f.requestPasswordResetFn == nil {
		f.unexpected("RequestPasswordReset")
	}
	return f.requestPasswordResetFn(ctx, req)
}

func (f *fakeAccountService) ConsumePasswordReset(ctx context.Context, code string, req models.NewPasswordRequest) (models.User, error) {
	if f.consumePasswordResetFn == nil {
		f.unexpected("ConsumePasswordReset")
	}
	return f.consumePasswordResetFn(ctx, code, req)
}

func (f *fakeAccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	if f.listUsersFn == nil {
		f.unexpected("ListUsers")
	}
	return f.listUsersFn(ctx)
}

func (f *fakeAccountService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	if f.getUserFn == nil {
		f.unexpected("GetUser")
	}
	return f.getUserFn(ctx, userID)
}

func (f *fakeAccountService) UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
	if f.updateUserFn == nil {
		f.unexpected("UpdateUser")
	}
	return f.updateUserFn(ctx, userID, update)
}

func (f *fakeAccountService) DeleteUser(ctx context.Context, userID int64) error {
	if f.deleteUserFn == nil {
		f.unexpected("DeleteUser")
	}
	return f.deleteUserFn(ctx, userID)
}

// fakeAuthService accepts "valid-token" for user 1 and "token-<n>" for user n
// when tokens is set. Everything else is rejected.
type fakeAuthService struct {
	tokens map[string]int64
}

func (f *fakeAuthService) CreateToken(_ context.Context, user models.User) (models.Token, error) {
	return models.Token{SignedString: "signed-token", UserID: user.UserID}, nil
}

func (f *fakeAuthService) ParseToken(_ context.Context, tokenString string) (models.Token, error) {
	if userID, ok := f.tokens[tokenString]; ok {
		return models.Token{SignedString: tokenString, UserID: userID}, nil
	}
	return models.Token{}, service.ErrTokenIsExpiredOrInvalid
}

type fakeAppInfoService struct{}

func (fakeAppInfoService) GetAppBuildInfo(_ context.Context) models.AppBuildInfo {
	return models.AppBuildInfo{BuildVersion: "v1.0.0", BuildDate: "2026-03-01", BuildCommit: "abc1234"}
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(_ context.Context) error {
	return f.err
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const validToken = "valid-token"

func newTestHandler(t *testing.T, accounts *fakeAccountService) *Handler {
	t.Helper()
	if accounts == nil {
		accounts = &fakeAccountService{}
	}
	accounts.t = t

	services := &service.Services{
		AccountService: accounts,
		AuthService:    &fakeAuthService{tokens: map[string]int64{validToken: 1, "token-2": 2}},
		AppInfoService: fakeAppInfoService{},
	}
	return NewHandler(services, fakePinger{}, config.Server{RequestTimeout: 5 * time.Second}, logger.Nop())
}

// doRequest sends a request through the full router. token is added as a
// bearer token when not empty.
func doRequest(t *testing.T, h *Handler, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func decodeErrorResponse(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}
