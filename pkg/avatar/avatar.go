// Package avatar stores profile images in S3-compatible object storage.
//
// The service never proxies image bytes: clients upload and download
// directly against presigned URLs, and the registry only records the
// object key.
package avatar

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config contains S3 connection settings for avatar storage.
type Config struct {
	// Enabled toggles avatar endpoints. Default: false.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is an optional S3-compatible endpoint (MinIO, localstack).
	// Empty uses AWS.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Region is the S3 region.
	Region string `mapstructure:"region" yaml:"region"`

	// Bucket is the bucket avatars are stored in. Must already exist.
	Bucket string `mapstructure:"bucket" yaml:"bucket" validate:"required_with=Enabled"`

	// AccessKeyID and SecretAccessKey are static credentials. Empty values
	// fall back to the default AWS credential chain.
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key"`

	// ForcePathStyle enables path-style addressing, required by most
	// S3-compatible servers.
	ForcePathStyle bool `mapstructure:"force_path_style" yaml:"force_path_style"`

	// URLTTL is the presigned URL lifetime. Default: 15m.
	URLTTL time.Duration `mapstructure:"url_ttl" yaml:"url_ttl"`
}

// ApplyDefaults fills in missing configuration with default values.
func (c *Config) ApplyDefaults() {
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	if c.URLTTL == 0 {
		c.URLTTL = 15 * time.Minute
	}
}

// Service issues presigned upload and download URLs for avatar objects.
type Service struct {
	presigner *s3.PresignClient
	config    Config
}

// New creates an avatar service from configuration.
func New(ctx context.Context, config Config) (*Service, error) {
	config.ApplyDefaults()

	if config.Bucket == "" {
		return nil, fmt.Errorf("avatar bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(config.Region),
	}
	if config.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"", // session token (empty for static credentials)
			)))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = &config.Endpoint
		}
		o.UsePathStyle = config.ForcePathStyle
	})

	return &Service{
		presigner: s3.NewPresignClient(client),
		config:    config,
	}, nil
}

// Key returns the object key for a user's avatar.
func Key(userID uint) string {
	return fmt.Sprintf("avatars/%d", userID)
}

// PresignedURL is a time-limited URL for a direct S3 operation.
type PresignedURL struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PresignUpload returns a URL the client can PUT the avatar image to.
func (s *Service) PresignUpload(ctx context.Context, key string) (*PresignedURL, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.config.URLTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &PresignedURL{
		URL:       req.URL,
		Method:    req.Method,
		ExpiresAt: time.Now().Add(s.config.URLTTL),
	}, nil
}

// PresignDownload returns a URL the client can GET the avatar image from.
func (s *Service) PresignDownload(ctx context.Context, key string) (*PresignedURL, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.config.URLTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to presign download: %w", err)
	}

	return &PresignedURL{
		URL:       req.URL,
		Method:    req.Method,
		ExpiresAt: time.Now().Add(s.config.URLTTL),
	}, nil
}
