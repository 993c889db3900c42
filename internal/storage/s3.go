package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresetContentType is the content type stored with R1 presets
const PresetContentType = "application/xml"

// PresetStore handles R1 preset storage operations
type PresetStore interface {
	PutPreset(ctx context.Context, key string, xml string) error
	GetPreset(ctx context.Context, key string) (string, error)
	GenerateDownloadURL(ctx context.Context, key string) (string, error)
	DeletePreset(ctx context.Context, key string) error
}

type s3Store struct {
	client    *s3.Client
	bucket    string
	urlExpiry time.Duration
}

// S3Config holds configuration for the S3 preset store
type S3Config struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// PresetKey returns the object key of one output of a conversion
func PresetKey(conversionID, name string) string {
	return fmt.Sprintf("presets/%s/%s.rcp", conversionID, name)
}

// NewS3Store creates a new S3 (or MinIO) preset store
func NewS3Store(ctx context.Context, cfg S3Config) (PresetStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}

	region := cfg.Region
	if cfg.Endpoint != "" {
		region = "us-east-1" // MinIO doesn't care about region
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "http://" + endpoint
		}
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = &endpoint
			o.UsePathStyle = true // MinIO requires path-style URLs
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	return &s3Store{
		client:    client,
		bucket:    cfg.Bucket,
		urlExpiry: 24 * time.Hour,
	}, nil
}

// PutPreset uploads a preset
func (s *s3Store) PutPreset(ctx context.Context, key string, xml string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(xml),
		ContentType: aws.String(PresetContentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload preset: %w", err)
	}
	return nil
}

// GetPreset downloads a preset
func (s *s3Store) GetPreset(ctx context.Context, key string) (string, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to download preset: %w", err)
	}
	defer result.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, result.Body); err != nil {
		return "", fmt.Errorf("failed to read preset: %w", err)
	}
	return buf.String(), nil
}

// GenerateDownloadURL generates a pre-signed URL for downloading a preset
func (s *s3Store) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	presignClient := s3.NewPresignClient(s.client)

	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.urlExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate download URL: %w", err)
	}

	return request.URL, nil
}

// DeletePreset deletes a preset
func (s *s3Store) DeletePreset(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	return nil
}
