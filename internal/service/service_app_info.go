package service

import (
	"context"

	"github.com/MKhiriev/go-contacts/internal/config"
	"github.com/MKhiriev/go-contacts/models"
)

type appInfoService struct {
	build models.AppBuildInfo
}

// NewAppInfoService prefers the configured version over the one stamped at
// build time. One of them must be set.
func NewAppInfoService(cfg config.App, build models.AppBuildInfo) (AppInfoService, error) {
	version := cfg.Version
	if version == "" {
		version = build.BuildVersion()
	}
	if version == "" || version == "N/A" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		build: models.NewAppBuildInfo(version, build.BuildDate(), build.BuildCommit()),
	}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.build.BuildVersion()
}

func (s *appInfoService) GetBuildInfo(context.Context) models.BuildInfoResponse {
	return s.build.Response()
}
