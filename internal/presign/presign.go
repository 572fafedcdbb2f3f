// Package presign turns s3://bucket/key document references into
// short-lived HTTP download links.
package presign

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	Scheme         = "s3://"
	DefaultExpires = 15 * time.Minute
)

var ErrNotS3Ref = errors.New("not an s3:// reference")

// Test seams.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Config describes the S3-compatible storage holding uploaded documents.
// An empty Endpoint means AWS itself.
type Config struct {
	Region   string
	Endpoint string
	User     string
	Password string
	Expires  time.Duration
}

// Resolver presigns GET requests for stored documents.
type Resolver struct {
	cfg Config
}

func NewResolver(cfg Config) *Resolver {
	if cfg.Expires <= 0 {
		cfg.Expires = DefaultExpires
	}
	return &Resolver{cfg: cfg}
}

// IsS3Ref reports whether ref uses the s3:// scheme.
func IsS3Ref(ref string) bool {
	return strings.HasPrefix(strings.TrimSpace(ref), Scheme)
}

// ParseRef splits s3://bucket/key. Both parts must be non-empty.
func ParseRef(ref string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(ref), Scheme)
	if !ok {
		return "", "", ErrNotS3Ref
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%q: bucket and key are required: %w", ref, ErrNotS3Ref)
	}
	return bucket, key, nil
}

func (r *Resolver) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(r.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			r.cfg.User,
			r.cfg.Password,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if r.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(r.cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

// Resolve returns a presigned download URL for ref.
func (r *Resolver) Resolve(ctx context.Context, ref string) (string, error) {
	bucket, key, err := ParseRef(ref)
	if err != nil {
		return "", err
	}

	pc, err := r.presignClient(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 client: %w", err)
	}

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(r.cfg.Expires))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", ref, err)
	}

	return req.URL, nil
}
