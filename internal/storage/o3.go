package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/gordon0907/ark-tribe-log/internal/config"
)

const defaultRegion = "us-east-1"

var (
	// ErrNotConfigured is returned by methods called on a nil client.
	ErrNotConfigured = errors.New("o3 client not configured")
	// ErrObjectNotFound wraps NoSuchKey and 404 responses.
	ErrObjectNotFound = errors.New("object not found")
)

// O3Client talks to one bucket on Akave O3 or any other S3-compatible store.
// A nil *O3Client is valid and reports ErrNotConfigured.
type O3Client struct {
	s3     *s3.Client
	bucket string
}

// NewO3Client returns nil, nil when cfg lacks an endpoint or bucket.
func NewO3Client(cfg *config.O3Config) (*O3Client, error) {
	if cfg == nil || cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, nil
	}
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}
	awsCfg := aws.Config{
		Region:      region,
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})
	return &O3Client{s3: client, bucket: cfg.Bucket}, nil
}

func (c *O3Client) Bucket() string {
	if c == nil {
		return ""
	}
	return c.bucket
}

// EnsureBucket creates the bucket unless HeadBucket finds it.
func (c *O3Client) EnsureBucket(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if _, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucket)}); err == nil {
		return nil
	}
	_, err := c.s3.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(c.bucket)})
	if err != nil && !hasErrorCode(err, "BucketAlreadyOwnedByYou", "BucketAlreadyExists") {
		return fmt.Errorf("create bucket %s: %w", c.bucket, err)
	}
	return nil
}

// GetObject downloads key in full.
func (c *O3Client) GetObject(ctx context.Context, key string) ([]byte, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if hasErrorCode(err, "NoSuchKey", "NotFound") {
			return nil, fmt.Errorf("%w: %s/%s", ErrObjectNotFound, c.bucket, key)
		}
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (c *O3Client) putObject(ctx context.Context, key string, body []byte, contentType string) error {
	if c == nil {
		return ErrNotConfigured
	}
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	return err
}

func hasErrorCode(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.ErrorCode() == code {
			return true
		}
	}
	return false
}
