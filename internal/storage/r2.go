package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Config addresses an S3-compatible bucket (Cloudflare R2, MinIO, S3)
type R2Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

func (c R2Config) validate() error {
	if c.Endpoint == "" || c.Bucket == "" {
		return errors.New("r2 endpoint and bucket are required")
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return errors.New("r2 access key and secret key are required")
	}
	return nil
}

type R2Client struct {
	client *s3.Client
	bucket string
}

func NewR2Client(ctx context.Context, rc R2Config) (*R2Client, error) {
	if err := rc.validate(); err != nil {
		return nil, err
	}

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				rc.AccessKey,
				rc.SecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(rc.Endpoint)
		o.UsePathStyle = true
	})

	return &R2Client{
		client: client,
		bucket: rc.Bucket,
	}, nil
}

// Download reads a whole object, e.g. a catalog snapshot
func (r *R2Client) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", r.bucket, key, err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

// Upload stores data under key
func (r *R2Client) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", r.bucket, key, err)
	}
	return nil
}
