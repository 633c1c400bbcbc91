// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-contacts/internal/config"
	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const avatarKeyPrefix = "avatars/"

// objectPutter is the subset of [s3.Client] used for uploads.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3AvatarStorage keeps one avatar per username in an S3-compatible bucket.
// Uploading again overwrites the previous image.
type s3AvatarStorage struct {
	client    objectPutter
	bucket    string
	publicURL string
}

// disabledAvatarStorage rejects every upload with [ErrAvatarStorageDisabled].
type disabledAvatarStorage struct{}

func (disabledAvatarStorage) UploadAvatar(context.Context, string, io.Reader, int64, string) (string, error) {
	return "", ErrAvatarStorageDisabled
}

// NewAvatarStorage builds the [AvatarStorage] described by cfg. With no
// bucket configured uploads are disabled.
func NewAvatarStorage(ctx context.Context, cfg config.Avatars, log *logger.Logger) (AvatarStorage, error) {
	if cfg.Bucket == "" {
		log.Info().Msg("avatar storage is not configured, uploads are disabled")
		return disabledAvatarStorage{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = cfg.Endpoint
	}

	log.Info().Str("bucket", cfg.Bucket).Msg("avatar storage configured")
	return newS3AvatarStorage(client, cfg.Bucket, publicURL), nil
}

func newS3AvatarStorage(client objectPutter, bucket, publicURL string) *s3AvatarStorage {
	return &s3AvatarStorage{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// UploadAvatar stores body under "avatars/<username>" and returns the
// object's public URL.
func (s *s3AvatarStorage) UploadAvatar(ctx context.Context, username string, body io.Reader, size int64, contentType string) (string, error) {
	key := avatarKeyPrefix + username

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*s3AvatarStorage.UploadAvatar").
			Str("key", key).
			Msg("failed to upload avatar")
		return "", fmt.Errorf("uploading avatar: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), nil
}
