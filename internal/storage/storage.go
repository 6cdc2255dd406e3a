package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/config"
)

// ImageStore persists uploaded product images and returns their public
// URL.
type ImageStore interface {
	// PutImage stores the image under a collision-free key derived
	// from filename and returns the URL to serve it from.
	PutImage(ctx context.Context, filename string, body io.Reader) (string, error)
}

// New selects the backing store: S3 when enabled, the local uploads
// directory otherwise.
func New(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) (ImageStore, error) {
	if cfg.Enabled {
		return NewS3Store(ctx, cfg, logger)
	}
	return NewLocalStore("uploads", logger), nil
}

// objectKey builds a unique storage key, keeping the original extension
// so content type stays inferable.
func objectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return prefix + uuid.New().String() + ext
}

func imageContentType(key string) string {
	switch path.Ext(key) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// s3Store implements ImageStore on AWS S3.
type s3Store struct {
	client *s3.Client
	bucket string
	region string
	prefix string
	logger zerolog.Logger
}

// NewS3Store creates an S3-backed image store.
func NewS3Store(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) (ImageStore, error) {
	logger = logger.With().Str("component", "s3-image-store").Logger()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", cfg.Bucket).
		Str("region", cfg.Region).
		Msg("S3 image store initialised")

	return &s3Store{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		region: cfg.Region,
		prefix: cfg.Prefix,
		logger: logger,
	}, nil
}

func (s *s3Store) PutImage(ctx context.Context, filename string, body io.Reader) (string, error) {
	key := objectKey(s.prefix, filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(imageContentType(key)),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to upload image to S3")
		return "", fmt.Errorf("failed to upload image to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", key).
		Msg("image uploaded to S3")

	return url, nil
}

// localStore implements ImageStore on the local file system, used in
// development and tests where no bucket is available.
type localStore struct {
	dir    string
	logger zerolog.Logger
}

// NewLocalStore creates a file-system image store rooted at dir.
func NewLocalStore(dir string, logger zerolog.Logger) ImageStore {
	return &localStore{
		dir:    dir,
		logger: logger.With().Str("component", "local-image-store").Logger(),
	}
}

func (s *localStore) PutImage(_ context.Context, filename string, body io.Reader) (string, error) {
	key := objectKey("", filename)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	dst := filepath.Join(s.dir, key)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	s.logger.Info().
		Str("path", dst).
		Msg("image stored locally")

	return "/uploads/" + key, nil
}
