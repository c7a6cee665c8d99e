// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/go-resty/resty/v2"
)

type httpAccountsAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAccountsAdapter constructs an HTTP/REST implementation of
// [AccountsAdapter]. It normalises and validates the base URL from
// cfg.HTTPAddress and configures the underlying resty client with the
// resolved base URL and request timeout. A token from cfg is stored right
// away.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPAccountsAdapter(cfg config.Client, logger *logger.Logger) (AccountsAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	a := &httpAccountsAdapter{client: client, logger: logger}
	client.OnAfterResponse(a.logResponse)
	a.SetToken(cfg.Token)
	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [AccountsAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpAccountsAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [AccountsAdapter].
func (h *httpAccountsAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [AccountsAdapter]. It POSTs req to POST /users.
func (h *httpAccountsAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var user models.User

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&user).
		Post("/users")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// VerifyEmail implements [AccountsAdapter]. It GETs /users/verify/{code}.
func (h *httpAccountsAdapter) VerifyEmail(ctx context.Context, code string) (models.User, error) {
	var user models.User

	resp, err := h.request(ctx).
		SetPathParam("code", code).
		SetResult(&user).
		Get("/users/verify/{code}")
	if err != nil {
		return models.User{}, fmt.Errorf("verify email request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login implements [AccountsAdapter]. It POSTs the credentials to
// POST /users/login. The token is read from the response body and, when
// missing there, from the Authorization response header.
func (h *httpAccountsAdapter) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	var loginResp models.LoginResponse

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&loginResp).
		Post("/users/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token := loginResp.Token
	if token == "" {
		token, err = utils.ParseBearerToken(resp.Header().Get("Authorization"))
		if err != nil {
			return models.User{}, fmt.Errorf("login parse bearer token: %w", ErrNoToken)
		}
	}

	h.SetToken(token)
	return loginResp.User, nil
}

// RequestPasswordReset implements [AccountsAdapter]. It POSTs req to
// POST /users/reset_password.
func (h *httpAccountsAdapter) RequestPasswordReset(ctx context.Context, req models.PasswordResetRequest) (models.User, error) {
	var user models.User

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&user).
		Post("/users/reset_password")
	if err != nil {
		return models.User{}, fmt.Errorf("password reset request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// ResetPassword implements [AccountsAdapter]. It POSTs the new password to
// POST /users/reset_password/{code}.
func (h *httpAccountsAdapter) ResetPassword(ctx context.Context, code string, req models.NewPasswordRequest) (models.User, error) {
	var user models.User

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("code", code).
		SetBody(req).
		SetResult(&user).
		Post("/users/reset_password/{code}")
	if err != nil {
		return models.User{}, fmt.Errorf("reset password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Me implements [AccountsAdapter]. Requires a bearer token.
func (h *httpAccountsAdapter) Me(ctx context.Context) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetResult(&user).
		Get("/users/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// ListUsers implements [AccountsAdapter]. Requires a bearer token.
func (h *httpAccountsAdapter) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User

	resp, err := h.authedRequest(ctx).
		SetResult(&users).
		Get("/users")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return users, nil
}

// GetUser implements [AccountsAdapter]. Requires a bearer token.
func (h *httpAccountsAdapter) GetUser(ctx context.Context, userID int64) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(userID, 10)).
		SetResult(&user).
		Get("/users/{id}")
	if err != nil {
		return models.User{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// UpdateUser implements [AccountsAdapter]. Only the non-nil fields of update
// are sent. Requires a bearer token.
func (h *httpAccountsAdapter) UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", strconv.FormatInt(userID, 10)).
		SetBody(update).
		SetResult(&user).
		Put("/users/{id}")
	if err != nil {
		return models.User{}, fmt.Errorf("update user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// DeleteUser implements [AccountsAdapter]. Requires a bearer token.
func (h *httpAccountsAdapter) DeleteUser(ctx context.Context, userID int64) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(userID, 10)).
		Delete("/users/{id}")
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}

	return mapHTTPError(resp)
}

// Version implements [AccountsAdapter].
func (h *httpAccountsAdapter) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var info models.AppBuildInfo

	resp, err := h.request(ctx).
		SetResult(&info).
		Get("/version")
	if err != nil {
		return models.AppBuildInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppBuildInfo{}, err
	}

	return info, nil
}

// Health implements [AccountsAdapter].
func (h *httpAccountsAdapter) Health(ctx context.Context) error {
	resp, err := h.request(ctx).
		Get("/healthz")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}

	return mapHTTPError(resp)
}

// request forwards the trace id of ctx, if any, so client and server log
// entries can be correlated.
func (h *httpAccountsAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if traceID := utils.GetTraceIDFromContext(ctx); traceID != "" {
		req.SetHeader("X-Trace-ID", traceID)
	}
	return req
}

func (h *httpAccountsAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.request(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func (h *httpAccountsAdapter) logResponse(_ *resty.Client, resp *resty.Response) error {
	h.logger.Debug().
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("server response")
	return nil
}
