package archive

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds configuration for S3-compatible object storage (AWS S3,
// Cloudflare R2, MinIO).
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
	PublicURL string
}

// S3Store implements Store against an S3-compatible service.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Store creates an S3-compatible archive store.
// Parameters:
//   - cfg: endpoint, credentials, and bucket settings.
//
// Returns:
//   - *S3Store: initialized store.
//   - error: non-nil if the AWS config cannot be built.
func NewS3Store(cfg *S3Config) (*S3Store, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	endpoint := normalizeEndpoint(cfg.Endpoint)

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(scheme + "://" + endpoint)
		// Path-style keeps bucket addressing working on non-AWS services
		o.UsePathStyle = true
	})

	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// Put uploads one object.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - key: object key.
//   - body: object content.
//   - contentType: MIME type of the content.
//
// Returns:
//   - error: non-nil if the upload fails.
func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// URL returns the public URL for an object when a public endpoint is
// configured.
func (s *S3Store) URL(key string) string {
	if s.publicURL == "" {
		return ""
	}
	return s.publicURL + "/" + key
}

// normalizeEndpoint strips any scheme prefix and trailing slashes from a
// configured endpoint.
func normalizeEndpoint(endpoint string) string {
	e := strings.TrimSpace(endpoint)
	e = strings.TrimPrefix(e, "https://")
	e = strings.TrimPrefix(e, "http://")
	return strings.TrimSuffix(e, "/")
}
