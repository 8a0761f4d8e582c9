package catalog

import (
	"context"
	"fmt"

	"mini-shop/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// ObjectGetter is the subset of the S3 client used by the S3 source.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Source implements Source over a gzipped JSON snapshot stored in S3.
type s3Source struct {
	client ObjectGetter
	bucket string
	key    string
	logger zerolog.Logger
}

// NewS3Source creates an S3-backed Source using the default AWS credential chain.
func NewS3Source(ctx context.Context, bucket, region, key string, logger zerolog.Logger) (Source, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("key", key).
		Msg("S3 catalog source initialised")

	return NewS3SourceWithClient(s3.NewFromConfig(cfg), bucket, key, logger), nil
}

// NewS3SourceWithClient creates an S3-backed Source from an existing client.
func NewS3SourceWithClient(client ObjectGetter, bucket, key string, logger zerolog.Logger) Source {
	return &s3Source{
		client: client,
		bucket: bucket,
		key:    key,
		logger: logger.With().Str("component", "catalog-s3").Logger(),
	}
}

// Fetch downloads and decodes the snapshot object.
func (s *s3Source) Fetch(ctx context.Context) ([]model.Product, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", s.key).
			Msg("failed to get catalog object from S3")
		return nil, networkError(fmt.Errorf("get object (bucket=%s, key=%s): %w", s.bucket, s.key, err))
	}
	defer result.Body.Close()

	products, err := decodeSnapshot(result.Body, s.logger)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", s.key).
			Msg("failed to read catalog object from S3")
		return nil, networkError(err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", s.key).
		Int("products_loaded", len(products)).
		Msg("catalog snapshot loaded from S3")

	return products, nil
}
