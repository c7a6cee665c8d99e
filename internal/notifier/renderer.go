// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-accounts/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	SubjectVerification  = "Account verification"
	SubjectPasswordReset = "Password reset"

	verifyEmailPath   = "/verify_email/"
	resetPasswordPath = "/reset_password/"
)

type templateData struct {
	Subject string
	Name    string
	Link    string
}

// Renderer turns users and codes into ready-to-send emails.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the embedded templates. Each email kind is its own
// template set sharing the common layout.
func NewRenderer() (*Renderer, error) {
	templates := make(map[string]*template.Template, 2)

	for name, file := range map[string]string{
		SubjectVerification:  "templates/verification.html",
		SubjectPasswordReset: "templates/password_reset.html",
	} {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("error parsing email template %s: %w", file, err)
		}
		templates[name] = t
	}

	return &Renderer{templates: templates}, nil
}

// VerificationEmail renders the email sent after registration.
func (r *Renderer) VerificationEmail(user models.User, returnURLBase, code string) (models.Email, error) {
	return r.render(SubjectVerification, user, buildLink(returnURLBase, verifyEmailPath, code))
}

// PasswordResetEmail renders the email sent by a password reset request.
func (r *Renderer) PasswordResetEmail(user models.User, returnURLBase, code string) (models.Email, error) {
	return r.render(SubjectPasswordReset, user, buildLink(returnURLBase, resetPasswordPath, code))
}

func (r *Renderer) render(subject string, user models.User, link string) (models.Email, error) {
	t, ok := r.templates[subject]
	if !ok {
		return models.Email{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, subject)
	}

	var body bytes.Buffer
	err := t.ExecuteTemplate(&body, "layout", templateData{
		Subject: subject,
		Name:    strings.ToUpper(user.FirstName),
		Link:    link,
	})
	if err != nil {
		return models.Email{}, fmt.Errorf("error rendering %q email: %w", subject, err)
	}

	return models.Email{
		To:       user.Email,
		Subject:  subject,
		HTMLBody: body.String(),
	}, nil
}

func buildLink(base, path, code string) string {
	return strings.TrimRight(base, "/") + path + url.PathEscape(code)
}
