// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-accounts/internal/adapter"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

type App struct {
	adapter adapter.AccountsAdapter

	in  *bufio.Reader
	out io.Writer

	commands map[string]command

	logger *logger.Logger
}

func NewApp(accounts adapter.AccountsAdapter, in io.Reader, out io.Writer, logger *logger.Logger) *App {
	a := &App{
		adapter: accounts,
		in:      bufio.NewReader(in),
		out:     out,
		logger:  logger,
	}

	a.commands = map[string]command{
		"register":      {"register -email E -first-name N -return-url URL [-password P] [-last-name L] [-country C] [-image URL]", a.register},
		"verify":        {"verify CODE", a.verify},
		"login":         {"login -email E [-password P]", a.login},
		"reset-request": {"reset-request -email E -return-url URL", a.requestPasswordReset},
		"reset":         {"reset CODE [-password P]", a.resetPassword},
		"me":            {"me", a.me},
		"list":          {"list", a.list},
		"get":           {"get ID", a.get},
		"update":        {"update ID [-first-name N] [-last-name L] [-country C] [-image URL]", a.update},
		"delete":        {"delete ID", a.delete},
		"version":       {"version", a.version},
		"health":        {"health", a.health},
	}

	return a
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrNoCommand
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, args[0])
	}

	a.logger.Debug().Str("command", args[0]).Msg("running command")
	return cmd.run(ctx, args[1:])
}

// Usage writes the list of commands to w.
func (a *App) Usage(w io.Writer) {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Commands:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", a.commands[name].usage)
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	var req models.RegisterRequest
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Password, "password", "", "account password (read from stdin when empty)")
	fs.StringVar(&req.FirstName, "first-name", "", "first name")
	fs.StringVar(&req.LastName, "last-name", "", "last name")
	fs.StringVar(&req.Country, "country", "", "country")
	fs.StringVar(&req.Image, "image", "", "avatar URL")
	fs.StringVar(&req.ReturnURLBase, "return-url", "", "frontend base URL for the verification link")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if req.Password, err = a.password(req.Password); err != nil {
		return err
	}

	user, err := a.adapter.Register(ctx, req)
	if err != nil {
		return err
	}
	return a.print(user)
}

func (a *App) verify(ctx context.Context, args []string) error {
	code, err := operand(args, "code")
	if err != nil {
		return err
	}

	user, err := a.adapter.VerifyEmail(ctx, code)
	if err != nil {
		return err
	}
	return a.print(user)
}

// login prints the token so it can be exported as ACCOUNTS_TOKEN.
func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	var req models.LoginRequest
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Password, "password", "", "account password (read from stdin when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if req.Password, err = a.password(req.Password); err != nil {
		return err
	}

	user, err := a.adapter.Login(ctx, req)
	if err != nil {
		return err
	}
	return a.print(models.LoginResponse{User: user, Token: a.adapter.Token()})
}

func (a *App) requestPasswordReset(ctx context.Context, args []string) error {
	fs := newFlagSet("reset-request")
	var req models.PasswordResetRequest
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.ReturnURLBase, "return-url", "", "frontend base URL for the reset link")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.adapter.RequestPasswordReset(ctx, req)
	if err != nil {
		return err
	}
	return a.print(user)
}

func (a *App) resetPassword(ctx context.Context, args []string) error {
	code, err := operand(args, "code")
	if err != nil {
		return err
	}

	fs := newFlagSet("reset")
	var req models.NewPasswordRequest
	fs.StringVar(&req.Password, "password", "", "new password (read from stdin when empty)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	if req.Password, err = a.password(req.Password); err != nil {
		return err
	}

	user, err := a.adapter.ResetPassword(ctx, code, req)
	if err != nil {
		return err
	}
	return a.print(user)
}

func (a *App) me(ctx context.Context, _ []string) error {
	user, err := a.adapter.Me(ctx)
	if err != nil {
		return err
	}
	return a.print(user)
}

func (a *App) list(ctx context.Context, _ []string) error {
	users, err := a.adapter.ListUsers(ctx)
	if err != nil {
		return err
	}
	if users == nil {
		users = []models.User{}
	}
	return a.print(users)
}

func (a *App) get(ctx context.Context, args []string) error {
	userID, err := userIDOperand(args)
	if err != nil {
		return err
	}

	user, err := a.adapter.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	return a.print(user)
}

// update sends only the flags given on the command line, so an omitted
// flag leaves the field unchanged while -last-name "" clears it.
func (a *App) update(ctx context.Context, args []string) error {
	userID, err := userIDOperand(args)
	if err != nil {
		return err
	}

	fs := newFlagSet("update")
	fs.String("first-name", "", "first name")
	fs.String("last-name", "", "last name")
	fs.String("country", "", "country")
	fs.String("image", "", "avatar URL")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	var update models.UserUpdate
	fs.Visit(func(f *flag.Flag) {
		value := f.Value.String()
		switch f.Name {
		case "first-name":
			update.FirstName = &value
		case "last-name":
			update.LastName = &value
		case "country":
			update.Country = &value
		case "image":
			update.Image = &value
		}
	})
	if update.IsEmpty() {
		return ErrNothingToUpdate
	}

	user, err := a.adapter.UpdateUser(ctx, userID, update)
	if err != nil {
		return err
	}
	return a.print(user)
}

func (a *App) delete(ctx context.Context, args []string) error {
	userID, err := userIDOperand(args)
	if err != nil {
		return err
	}

	if err := a.adapter.DeleteUser(ctx, userID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "user %d deleted\n", userID)
	return nil
}

func (a *App) version(ctx context.Context, _ []string) error {
	info, err := a.adapter.Version(ctx)
	if err != nil {
		return err
	}
	return a.print(info)
}

func (a *App) health(ctx context.Context, _ []string) error {
	if err := a.adapter.Health(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// password returns flagValue, or the first line of stdin when it is empty.
func (a *App) password(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading password: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("%w: password", ErrMissingArgument)
	}
	return password, nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func operand(args []string, name string) (string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, name)
	}
	return args[0], nil
}

func userIDOperand(args []string) (int64, error) {
	raw, err := operand(args, "id")
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUserID, raw)
	}
	return userID, nil
}

// DescribeError renders err for the terminal, including per-field
// validation messages returned by the server.
func DescribeError(err error) string {
	var b strings.Builder
	b.WriteString(err.Error())

	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		fields := make([]string, 0, len(apiErr.Fields))
		for field := range apiErr.Fields {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		for _, field := range fields {
			fmt.Fprintf(&b, "\n  %s: %s", field, apiErr.Fields[field])
		}
	}

	return b.String()
}
