package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-contacts/internal/adapter"
	"github.com/MKhiriev/go-contacts/internal/config"
	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/MKhiriev/go-contacts/internal/mail"
	"github.com/MKhiriev/go-contacts/internal/store"
	"github.com/MKhiriev/go-contacts/internal/utils"
	"github.com/MKhiriev/go-contacts/internal/validators"
	"github.com/MKhiriev/go-contacts/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles sign-up, credential verification, e-mail confirmation and the
// JWT token lifecycle.
type authService struct {
	// users is the data-access layer used to create and look up users.
	users store.UserRepository

	// cache holds users resolved from access tokens.
	cache store.UserCache

	avatars adapter.AvatarResolver
	mailer  mail.Sender

	validator validators.Validator

	// hashKey is the HMAC pepper applied to passwords before bcrypt.
	// Must match the value used at registration time.
	hashKey string

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
	emailTokenDuration   time.Duration

	// publicURL is the base of confirmation links.
	publicURL string

	bcryptCost int

	// async runs fire-and-forget work such as mail delivery.
	async func(func())

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService populated with security
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(users store.UserRepository, cache store.UserCache, avatars adapter.AvatarResolver, mailer mail.Sender, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:                users,
		cache:                cache,
		avatars:              avatars,
		mailer:               mailer,
		validator:            validators.NewStructValidator(),
		hashKey:              cfg.PasswordHashKey,
		tokenSignKey:         cfg.TokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		accessTokenDuration:  cfg.AccessTokenDuration,
		refreshTokenDuration: cfg.RefreshTokenDuration,
		emailTokenDuration:   cfg.EmailTokenDuration,
		publicURL:            cfg.PublicURL,
		bcryptCost:           bcrypt.DefaultCost,
		async:                func(f func()) { go f() },
		logger:               logger,
	}
}

// Signup registers a new account and mails a confirmation link.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided if the payload fails validation.
//   - store.ErrUserAlreadyExists if the username or e-mail is taken.
func (a *authService) Signup(ctx context.Context, signup models.UserSignup) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, signup); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := a.hashPassword(signup.Password)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.users.CreateUser(ctx, models.User{
		Username:     signup.Username,
		Email:        signup.Email,
		PasswordHash: hash,
		Avatar:       a.avatars.AvatarURL(ctx, signup.Email),
	})
	if err != nil {
		log.Err(err).Str("email", signup.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	a.sendConfirmation(ctx, user)

	return user, nil
}

// Login checks the credentials of a confirmed account and issues a new
// token pair. The refresh token is stored on the account.
func (a *authService) Login(ctx context.Context, login models.UserLogin) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, login); err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.users.FindUserByEmail(ctx, login.Username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.TokenPair{}, ErrInvalidEmail
	}
	if err != nil {
		log.Err(err).Str("email", login.Username).Msg("user search by email failed")
		return models.TokenPair{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !user.Confirmed {
		return models.TokenPair{}, ErrEmailNotConfirmed
	}
	if !a.checkPassword(user.PasswordHash, login.Password) {
		log.Warn().Int64("id", user.ID).Msg("wrong password")
		return models.TokenPair{}, ErrWrongPassword
	}

	return a.issueTokenPair(ctx, user)
}

// Refresh exchanges the stored refresh token for a new pair. Presenting any
// other refresh token of the account revokes the stored one.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	token, err := a.parseToken(refreshToken, models.ScopeRefreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	user, err := a.users.FindUserByEmail(ctx, token.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
	}
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		log.Warn().Int64("id", user.ID).Msg("refresh token mismatch, revoking stored token")
		if err = a.users.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
			log.Err(err).Int64("id", user.ID).Msg("failed to revoke refresh token")
		}
		return models.TokenPair{}, ErrInvalidRefreshToken
	}

	return a.issueTokenPair(ctx, user)
}

func (a *authService) ConfirmEmail(ctx context.Context, emailToken string) (bool, error) {
	token, err := a.parseToken(emailToken, models.ScopeEmailToken)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("invalid email token")
		return false, ErrVerificationError
	}

	user, err := a.users.FindUserByEmail(ctx, token.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return false, ErrVerificationError
	}
	if err != nil {
		return false, fmt.Errorf("user search by email failed: %w", err)
	}
	if user.Confirmed {
		return true, nil
	}

	if err = a.users.ConfirmEmail(ctx, user.Email); err != nil {
		return false, fmt.Errorf("confirm email: %w", err)
	}
	a.forget(ctx, user.Email)

	logger.FromContext(ctx).Info().Int64("id", user.ID).Msg("email confirmed")
	return false, nil
}

func (a *authService) RequestEmail(ctx context.Context, email string) (bool, error) {
	if err := a.validator.Validate(ctx, models.RequestEmail{Email: email}); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.users.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("user search by email failed: %w", err)
	}
	if user.Confirmed {
		return true, nil
	}

	a.sendConfirmation(ctx, user)
	return false, nil
}

// CurrentUser resolves the account named by an access token, preferring the
// user cache.
func (a *authService) CurrentUser(ctx context.Context, accessToken string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := a.parseToken(accessToken, models.ScopeAccessToken)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.cache.Get(ctx, token.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrCacheMiss) {
		log.Warn().Err(err).Msg("user cache lookup failed")
	}

	user, err = a.users.FindUserByEmail(ctx, token.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = a.cache.Set(ctx, user); err != nil {
		log.Warn().Err(err).Msg("failed to cache user")
	}

	return user, nil
}

func (a *authService) issueTokenPair(ctx context.Context, user models.User) (models.TokenPair, error) {
	access, err := utils.GenerateJWTToken(a.tokenIssuer, user.Email, models.ScopeAccessToken, a.accessTokenDuration, a.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	refresh, err := utils.GenerateJWTToken(a.tokenIssuer, user.Email, models.ScopeRefreshToken, a.refreshTokenDuration, a.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	if err = a.users.UpdateRefreshToken(ctx, user.ID, &refresh.SignedString); err != nil {
		return models.TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}
	a.forget(ctx, user.Email)

	return models.NewTokenPair(access, refresh), nil
}

// parseToken normalises every validation failure (expired, wrong issuer,
// wrong scope, malformed) to ErrTokenIsExpiredOrInvalid.
func (a *authService) parseToken(tokenString string, scope models.TokenScope) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, scope)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// sendConfirmation mails an e-mail token in the background. Failures are
// only logged.
func (a *authService) sendConfirmation(ctx context.Context, user models.User) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Email, models.ScopeEmailToken, a.emailTokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Int64("id", user.ID).Msg("failed to create email token")
		return
	}

	mailCtx := context.WithoutCancel(ctx)
	a.async(func() {
		if err := a.mailer.SendConfirmation(mailCtx, user.Email, user.Username, a.publicURL, token.SignedString); err != nil {
			log.Err(err).Int64("id", user.ID).Msg("failed to send confirmation email")
		}
	})
}

func (a *authService) forget(ctx context.Context, email string) {
	if err := a.cache.Delete(ctx, email); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("failed to invalidate cached user")
	}
}

// hashPassword peppers password with HMAC-SHA256 and bcrypts the result.
// The hex digest stays below bcrypt's 72-byte input limit.
func (a *authService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(utils.HashString(password, a.hashKey)), a.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPasswordHashing, err)
	}

	return string(hash), nil
}

func (a *authService) checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(utils.HashString(password, a.hashKey))) == nil
}
