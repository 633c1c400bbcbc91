package adapter

import (
	"context"
	"crypto/md5" //nolint:gosec
	"encoding/hex"
	"strings"
	"time"

	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/MKhiriev/go-contacts/internal/utils"
)

const (
	// GravatarBaseURL is the public Gravatar host.
	GravatarBaseURL = "https://www.gravatar.com"

	gravatarTimeout = 3 * time.Second
)

type gravatar struct {
	client  *utils.HTTPClient
	baseURL string
}

// NewGravatar returns an [AvatarResolver] backed by the Gravatar service at
// baseURL (normally [GravatarBaseURL]).
func NewGravatar(baseURL string) AvatarResolver {
	baseURL = strings.TrimRight(baseURL, "/")
	return &gravatar{
		client:  utils.NewHTTPClient(baseURL, gravatarTimeout),
		baseURL: baseURL,
	}
}

// gravatarPath is "/avatar/<md5 of the trimmed, lower-cased address>".
func gravatarPath(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email)))) //nolint:gosec
	return "/avatar/" + hex.EncodeToString(sum[:])
}

// AvatarURL probes Gravatar with d=404 so that addresses without an image
// yield no URL instead of the generic placeholder.
func (g *gravatar) AvatarURL(ctx context.Context, email string) string {
	log := logger.FromContext(ctx)
	path := gravatarPath(email)

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("d", "404").
		Head(path)
	if err != nil {
		log.Warn().Err(err).Str("func", "gravatar.AvatarURL").Msg("gravatar is unreachable")
		return ""
	}
	if err = mapHTTPError(resp); err != nil {
		log.Debug().Err(err).Str("func", "gravatar.AvatarURL").Msg("no gravatar for address")
		return ""
	}

	return g.baseURL + path
}
