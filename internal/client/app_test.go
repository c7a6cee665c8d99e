// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/MKhiriev/go-accounts/internal/adapter"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/mock"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestApp(t *testing.T, stdin string) (*App, *mock.MockAccountsAdapter, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountsAdapter(ctrl)

	var out bytes.Buffer
	return NewApp(accounts, strings.NewReader(stdin), &out, logger.Nop()), accounts, &out
}

func TestRun_NoCommand(t *testing.T) {
	app, _, _ := newTestApp(t, "")
	require.ErrorIs(t, app.Run(context.Background(), nil), ErrNoCommand)
}

func TestRun_UnknownCommand(t *testing.T) {
	app, _, _ := newTestApp(t, "")
	err := app.Run(context.Background(), []string{"frobnicate"})
	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestRegister_PasswordFromStdin(t *testing.T) {
	app, accounts, out := newTestApp(t, "s3cret\n")

	accounts.EXPECT().
		Register(gomock.Any(), models.RegisterRequest{
			Email: "a@x.com", Password: "s3cret", FirstName: "Ann", ReturnURLBase: "http://front",
		}).
		Return(models.User{UserID: 1, Email: "a@x.com", FirstName: "Ann"}, nil)

	err := app.Run(context.Background(), []string{
		"register", "-email", "a@x.com", "-first-name", "Ann", "-return-url", "http://front",
	})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, json.Unmarshal(out.Bytes(), &user))
	assert.Equal(t, int64(1), user.UserID)
}

func TestRegister_MissingPassword(t *testing.T) {
	app, _, _ := newTestApp(t, "")

	err := app.Run(context.Background(), []string{"register", "-email", "a@x.com"})
	require.ErrorIs(t, err, ErrMissingArgument)
}

func TestLogin_PrintsToken(t *testing.T) {
	app, accounts, out := newTestApp(t, "")

	gomock.InOrder(
		accounts.EXPECT().
			Login(gomock.Any(), models.LoginRequest{Email: "a@x.com", Password: "pw"}).
			Return(models.User{UserID: 1}, nil),
		accounts.EXPECT().Token().Return("jwt-1"),
	)

	require.NoError(t, app.Run(context.Background(), []string{"login", "-email", "a@x.com", "-password", "pw"}))

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "jwt-1", resp.Token)
	assert.Equal(t, int64(1), resp.User.UserID)
}

func TestVerify(t *testing.T) {
	app, accounts, _ := newTestApp(t, "")

	accounts.EXPECT().VerifyEmail(gomock.Any(), "c0de").Return(models.User{IsVerified: true}, nil)
	require.NoError(t, app.Run(context.Background(), []string{"verify", "c0de"}))

	require.ErrorIs(t, app.Run(context.Background(), []string{"verify"}), ErrMissingArgument)
}

func TestReset_CodeThenFlags(t *testing.T) {
	app, accounts, _ := newTestApp(t, "")

	accounts.EXPECT().
		ResetPassword(gomock.Any(), "r3set", models.NewPasswordRequest{Password: "new-pw"}).
		Return(models.User{UserID: 1}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"reset", "r3set", "-password", "new-pw"}))
}

func TestResetRequest(t *testing.T) {
	app, accounts, _ := newTestApp(t, "")

	accounts.EXPECT().
		RequestPasswordReset(gomock.Any(), models.PasswordResetRequest{Email: "a@x.com", ReturnURLBase: "http://front"}).
		Return(models.User{UserID: 1}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"reset-request", "-email", "a@x.com", "-return-url", "http://front"}))
}

func TestUpdate_SendsOnlyGivenFlags(t *testing.T) {
	app, accounts, _ := newTestApp(t, "")

	accounts.EXPECT().
		UpdateUser(gomock.Any(), int64(4), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, update models.UserUpdate) (models.User, error) {
			require.NotNil(t, update.LastName)
			assert.Empty(t, *update.LastName)
			require.NotNil(t, update.Country)
			assert.Equal(t, "NO", *update.Country)
			assert.Nil(t, update.FirstName)
			assert.Nil(t, update.Image)
			return models.User{UserID: 4}, nil
		})

	require.NoError(t, app.Run(context.Background(), []string{"update", "4", "-last-name", "", "-country", "NO"}))
}

func TestUpdate_NothingToUpdate(t *testing.T) {
	app, _, _ := newTestApp(t, "")
	require.ErrorIs(t, app.Run(context.Background(), []string{"update", "4"}), ErrNothingToUpdate)
}

func TestUserIDOperand(t *testing.T) {
	app, _, _ := newTestApp(t, "")

	for _, arg := range []string{"abc", "0", "1.5"} {
		err := app.Run(context.Background(), []string{"get", arg})
		require.ErrorIs(t, err, ErrInvalidUserID, arg)
	}
	require.ErrorIs(t, app.Run(context.Background(), []string{"delete"}), ErrMissingArgument)
}

func TestList_EmptyPrintsArray(t *testing.T) {
	app, accounts, out := newTestApp(t, "")

	accounts.EXPECT().ListUsers(gomock.Any()).Return(nil, nil)
	require.NoError(t, app.Run(context.Background(), []string{"list"}))
	assert.JSONEq(t, `[]`, out.String())
}

func TestDelete_PropagatesAPIError(t *testing.T) {
	app, accounts, out := newTestApp(t, "")

	accounts.EXPECT().DeleteUser(gomock.Any(), int64(9)).Return(fmt.Errorf("wrapped: %w", adapter.ErrNotFound))

	err := app.Run(context.Background(), []string{"delete", "9"})
	require.ErrorIs(t, err, adapter.ErrNotFound)
	assert.Empty(t, out.String())
}

func TestMeVersionHealth(t *testing.T) {
	app, accounts, out := newTestApp(t, "")

	accounts.EXPECT().Me(gomock.Any()).Return(models.User{UserID: 2}, nil)
	accounts.EXPECT().Version(gomock.Any()).Return(models.AppBuildInfo{BuildVersion: "v1"}, nil)
	accounts.EXPECT().Health(gomock.Any()).Return(nil)

	require.NoError(t, app.Run(context.Background(), []string{"me"}))
	require.NoError(t, app.Run(context.Background(), []string{"version"}))
	require.NoError(t, app.Run(context.Background(), []string{"health"}))

	assert.Contains(t, out.String(), `"build_version": "v1"`)
	assert.True(t, strings.HasSuffix(out.String(), "ok\n"))
}

func TestDescribeError_ListsFields(t *testing.T) {
	err := &adapter.APIError{
		StatusCode: 400,
		Message:    "invalid data provided",
		Fields:     map[string]string{"password": "password is required", "email": "email is required"},
	}

	got := DescribeError(fmt.Errorf("register: %w", err))
	assert.Equal(t, "register: http 400: invalid data provided\n  email: email is required\n  password: password is required", got)
}

func TestUsage_ListsEveryCommand(t *testing.T) {
	app, _, _ := newTestApp(t, "")

	var buf bytes.Buffer
	app.Usage(&buf)
	for name := range app.commands {
		assert.Contains(t, buf.String(), "  "+name)
	}
}
