package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// s3API is the part of *s3.Client the store uses.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Config points at an S3 compatible bucket. Endpoint is only needed for
// non-AWS services such as MinIO, which also need path-style addressing.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string

	// PublicURL, when set, prefixes object keys in returned references,
	// e.g. a CDN in front of the bucket.
	PublicURL string
}

// S3Store uploads profile pictures as objects.
type S3Store struct {
	client s3API
	cfg    S3Config
	now    func() time.Time
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("assets: S3 bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("assets: load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, cfg: cfg, now: time.Now}, nil
}

// StorageKey places an object under profiles/YYYY/MM/DD/<uuid><ext>.
func StorageKey(t time.Time, ext string) string {
	t = t.UTC()
	return fmt.Sprintf("profiles/%04d/%02d/%02d/%s%s", t.Year(), t.Month(), t.Day(), uuid.NewString(), strings.ToLower(ext))
}

// Put uploads body under a fresh key; only the extension of name is kept.
func (s *S3Store) Put(ctx context.Context, name string, body io.Reader, contentType string) (string, error) {
	key := StorageKey(s.now(), filepath.Ext(name))

	// Request signing needs a seekable body.
	rs, ok := body.(io.ReadSeeker)
	if !ok {
		buf, err := io.ReadAll(body)
		if err != nil {
			return "", fmt.Errorf("assets: read upload: %w", err)
		}
		rs = bytes.NewReader(buf)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        rs,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("assets: put object: %w", err)
	}
	return s.objectURL(key), nil
}

// Delete removes the object behind ref. Only references this store handed
// out are accepted.
func (s *S3Store) Delete(ctx context.Context, ref string) error {
	i := strings.LastIndex(ref, "profiles/")
	if i < 0 || s.objectURL(ref[i:]) != ref {
		return ErrInvalidName
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(ref[i:]),
	})
	if err != nil {
		return fmt.Errorf("assets: delete object: %w", err)
	}
	return nil
}

// Ping checks the bucket exists and is reachable with our credentials.
func (s *S3Store) Ping(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.cfg.Bucket)}); err != nil {
		return fmt.Errorf("assets: head bucket: %w", err)
	}
	return nil
}

func (s *S3Store) objectURL(key string) string {
	switch {
	case s.cfg.PublicURL != "":
		return strings.TrimRight(s.cfg.PublicURL, "/") + "/" + key
	case s.cfg.Endpoint != "":
		u, err := url.JoinPath(s.cfg.Endpoint, s.cfg.Bucket, key)
		if err == nil {
			return u
		}
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
