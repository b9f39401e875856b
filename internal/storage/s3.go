package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds object-storage connection settings
type S3Config struct {
	Region    string
	Bucket    string
	Endpoint  string // base endpoint, also usable with MinIO
	AccessKey string
	SecretKey string
}

// S3Storage stores résumés in an S3-compatible bucket
type S3Storage struct {
	client *s3.Client
	bucket string
	// publicURL is the prefix objects resolve under, endpoint/bucket
	publicURL string
}

// NewS3Storage builds an S3 client from static credentials
func NewS3Storage(ctx context.Context, cfg *S3Config) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket,
	}, nil
}

// Store uploads the résumé and returns its object URL
func (s *S3Storage) Store(ctx context.Context, upload *Upload) (string, error) {
	body, key, err := prepare(upload)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(pdfContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload resume: %w", err)
	}
	return s.publicURL + "/" + key, nil
}

// Remove deletes the object behind a URL previously returned by Store
func (s *S3Storage) Remove(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, s.publicURL+"/") {
		return nil
	}
	key := strings.TrimPrefix(url, s.publicURL+"/")
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
