// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/notifier"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/models"
)

type Services struct {
	AccountService AccountService
	AuthService    AuthService
	AppInfoService AppInfoService
}

// NewServices wires the business layer. The account service is returned
// wrapped in request validation.
func NewServices(
	repositories *store.Repositories,
	emailNotifier notifier.Notifier,
	cfg config.StructuredConfig,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) (*Services, error) {
	renderer, err := notifier.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %w", err)
	}

	authService := NewAuthService(cfg.App, logger)

	accountService, err := NewAccountService(repositories, authService, emailNotifier, renderer, cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating account service: %w", err)
	}

	return &Services{
		AccountService: NewAccountValidationService().Wrap(accountService),
		AuthService:    authService,
		AppInfoService: NewAppInfoService(buildInfo, logger),
	}, nil
}
