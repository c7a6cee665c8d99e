// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

const notAvailable = "N/A"

type appInfoService struct {
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService returns a service reporting buildInfo. Empty values are
// reported as "N/A".
func NewAppInfoService(buildInfo models.AppBuildInfo, logger *logger.Logger) AppInfoService {
	return &appInfoService{
		buildInfo: models.AppBuildInfo{
			BuildVersion: orNotAvailable(buildInfo.BuildVersion),
			BuildDate:    orNotAvailable(buildInfo.BuildDate),
			BuildCommit:  orNotAvailable(buildInfo.BuildCommit),
		},
		logger: logger,
	}
}

func (s *appInfoService) GetAppBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.buildInfo
}

func orNotAvailable(value string) string {
	if value == "" {
		return notAvailable
	}
	return value
}
