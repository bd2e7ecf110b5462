package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string

	// Endpoint overrides the AWS endpoint for S3-compatible stores
	// (MinIO, DigitalOcean Spaces). Empty means real S3.
	Endpoint string

	// PublicBaseURL is the prefix of the returned object URLs. Empty
	// falls back to the virtual-hosted AWS URL.
	PublicBaseURL string
}

// Uploader stores public-read objects in a single bucket. Nil disables
// uploads.
type Uploader struct {
	client *s3.Client
	cfg    Config
}

func NewUploader(cfg Config) *Uploader {
	if cfg.Bucket == "" || cfg.AccessKey == "" {
		return nil
	}

	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &Uploader{
		client: s3.New(opts),
		cfg:    cfg,
	}
}

func (u *Uploader) Enabled() bool {
	return u != nil
}

// Upload writes the object and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", err
	}

	if u.cfg.PublicBaseURL != "" {
		return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key), nil
}
