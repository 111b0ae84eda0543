// Package imagestore keeps product pictures in an S3-compatible bucket
// (MinIO in development) and hands out short-lived download URLs.
package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PresignTTL is the lifetime of a presigned download URL.
const PresignTTL = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		_, err := c.PutObject(ctx, in)
		return err
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Config holds the bucket coordinates. An empty Bucket disables the store.
type Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

type Store struct {
	cfg Config
	now func() time.Time
}

func New(cfg Config) *Store {
	return &Store{cfg: cfg, now: time.Now}
}

// Enabled reports whether images should be offloaded. A nil store is
// disabled.
func (s *Store) Enabled() bool {
	return s != nil && s.cfg.Bucket != ""
}

// NewKey returns products/YYYY/M/D/<uuid> for the given day.
func NewKey(d time.Time) string {
	return fmt.Sprintf("products/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *Store) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Put decodes a data URL and uploads its bytes, returning the object key.
func (s *Store) Put(ctx context.Context, dataURL string) (string, error) {
	img, err := ParseDataURL(dataURL)
	if err != nil {
		return "", err
	}

	c, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	key := NewKey(s.now())
	err = putObject(c, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(img.Data),
		ContentType:   aws.String(img.ContentType),
		ContentLength: aws.Int64(int64(len(img.Data))),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return key, nil
}

// PresignGet returns a download URL for key valid for PresignTTL.
func (s *Store) PresignGet(ctx context.Context, key string) (string, error) {
	c, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(s3.NewPresignClient(c), ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(PresignTTL))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
