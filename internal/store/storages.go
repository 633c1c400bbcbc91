package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-contacts/internal/config"
	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Storages groups every persistence backend the services depend on.
type Storages struct {
	ContactRepository ContactRepository
	UserRepository    UserRepository
	UserCache         UserCache
	AvatarStorage     AvatarStorage

	// Pinger is nil for the in-memory store.
	Pinger Pinger

	// Redis is nil when no Redis address is configured.
	Redis *redis.Client

	closers []func() error
}

// NewStorages opens the backends described by cfg. The "memory" DSN selects
// the in-process repositories; any other DSN connects to PostgreSQL and
// applies pending migrations. Redis and avatar storage are optional.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	s := &Storages{}

	if cfg.DB.IsInMemory() {
		log.Info().Msg("using in-memory storage")
		s.ContactRepository = NewMemoryContactRepository()
		s.UserRepository = NewMemoryUserRepository()
	} else {
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("error connecting to postgres: %w", err)
		}
		s.closers = append(s.closers, db.Close)

		if err = db.Migrate(); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("error applying migrations: %w", err)
		}

		s.ContactRepository = NewContactRepository(db, log)
		s.UserRepository = NewUserRepository(db, log)
		s.Pinger = db
	}

	if cfg.Redis.Address != "" {
		client, err := ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("error connecting to redis: %w", err)
		}
		s.Redis = client
		s.closers = append(s.closers, client.Close)
	} else {
		log.Info().Msg("redis is not configured, user cache and rate limiting are disabled")
	}
	s.UserCache = NewUserCache(s.Redis)

	avatars, err := NewAvatarStorage(ctx, cfg.Avatars, log)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.AvatarStorage = avatars

	return s, nil
}

// Close releases every opened backend.
func (s *Storages) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil

	return errors.Join(errs...)
}
