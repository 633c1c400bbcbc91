package service

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/MKhiriev/go-contacts/internal/store"
	"github.com/MKhiriev/go-contacts/models"
)

type userService struct {
	users   store.UserRepository
	cache   store.UserCache
	avatars store.AvatarStorage
	logger  *logger.Logger
}

func NewUserService(users store.UserRepository, cache store.UserCache, avatars store.AvatarStorage, logger *logger.Logger) UserService {
	return &userService{
		users:   users,
		cache:   cache,
		avatars: avatars,
		logger:  logger,
	}
}

// UpdateAvatar uploads file as the user's avatar and stores its URL.
func (s *userService) UpdateAvatar(ctx context.Context, user models.User, file io.Reader, size int64, contentType string) (models.User, error) {
	log := logger.FromContext(ctx)

	url, err := s.avatars.UploadAvatar(ctx, user.Username, file, size, contentType)
	if err != nil {
		log.Err(err).Int64("id", user.ID).Msg("avatar upload failed")
		return models.User{}, fmt.Errorf("upload avatar: %w", err)
	}

	updated, err := s.users.UpdateAvatar(ctx, user.Email, url)
	if err != nil {
		return models.User{}, fmt.Errorf("update avatar: %w", err)
	}

	if err = s.cache.Delete(ctx, user.Email); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate cached user")
	}

	return updated, nil
}
