package service

import (
	"github.com/MKhiriev/go-contacts/internal/adapter"
	"github.com/MKhiriev/go-contacts/internal/config"
	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/MKhiriev/go-contacts/internal/mail"
	"github.com/MKhiriev/go-contacts/internal/store"
	"github.com/MKhiriev/go-contacts/models"
)

type Services struct {
	ContactService ContactService
	AuthService    AuthService
	UserService    UserService
	AppInfoService AppInfoService
}

// Dependencies are the outbound collaborators of the services.
type Dependencies struct {
	Avatars adapter.AvatarResolver
	Mailer  mail.Sender
	Build   models.AppBuildInfo
}

func NewServices(storages *store.Storages, deps Dependencies, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, deps.Build)
	if err != nil {
		return nil, err
	}

	contacts := NewContactValidationService().Wrap(NewContactService(storages.ContactRepository, logger))

	return &Services{
		ContactService: contacts,
		AuthService:    NewAuthService(storages.UserRepository, storages.UserCache, deps.Avatars, deps.Mailer, cfg.App, logger),
		UserService:    NewUserService(storages.UserRepository, storages.UserCache, storages.AvatarStorage, logger),
		AppInfoService: appInfo,
	}, nil
}
