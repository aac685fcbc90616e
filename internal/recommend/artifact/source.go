// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tomtom215/hybridrank/internal/recommend/recerr"
)

// Source reads raw artifact bytes by name. Read failures of any kind are
// reported as ArtifactNotFound.
type Source interface {
	Read(ctx context.Context, name string) ([]byte, error)
	String() string
}

// FileSource reads artifacts from the local filesystem. Relative names are
// resolved against Root.
type FileSource struct {
	Root string
}

// Read returns the contents of the named file.
func (s FileSource) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := name
	if s.Root != "" && !filepath.IsAbs(name) {
		p = filepath.Join(s.Root, name)
	}
	data, err := os.ReadFile(p) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, recerr.Wrap(recerr.KindArtifactNotFound, err, "read %s", p)
	}
	return data, nil
}

func (s FileSource) String() string { return "file" }

// S3API is the subset of the S3 client used by S3Source.
type S3API interface {
	manager.DownloadAPIClient
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Config configures an S3 client. Endpoint switches to path-style
// addressing for S3-compatible servers.
type S3Config struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// S3Source reads artifacts from an S3 bucket using the multipart downloader.
type S3Source struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Source builds an S3 client from the default AWS credential chain,
// overridden by static keys when given.
func NewS3Source(ctx context.Context, cfg S3Config) (*S3Source, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		creds := aws.Credentials{AccessKeyID: cfg.AccessKey, SecretAccessKey: cfg.SecretKey, Source: "hybridrank"}
		opts = append(opts, awsconfig.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) { return creds, nil },
		)))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3SourceWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewS3SourceWithClient wraps an existing client.
func NewS3SourceWithClient(client S3API, bucket, prefix string) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

// Read downloads the object into memory.
func (s *S3Source) Read(ctx context.Context, name string) ([]byte, error) {
	key := path.Join(s.prefix, name)

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, recerr.Wrap(recerr.KindArtifactNotFound, s3NotFound(err), "head s3://%s/%s", s.bucket, key)
	}

	size := aws.ToInt64(head.ContentLength)
	buf := manager.NewWriteAtBuffer(make([]byte, 0, size))
	downloader := manager.NewDownloader(s.client)
	if _, err := downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return nil, recerr.Wrap(recerr.KindArtifactNotFound, s3NotFound(err), "download s3://%s/%s", s.bucket, key)
	}
	return buf.Bytes(), nil
}

func (s *S3Source) String() string { return "s3://" + s.bucket }

// s3NotFound normalizes missing-object errors to os.ErrNotExist.
func s3NotFound(err error) error {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return fmt.Errorf("%w: %v", os.ErrNotExist, err)
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %v", os.ErrNotExist, err)
	}
	return err
}

// MinioConfig configures a MinIO client.
type MinioConfig struct {
	Endpoint  string
	Bucket    string
	Prefix    string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// MinioSource reads artifacts from MinIO or another S3-compatible server.
type MinioSource struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinioSource creates a MinIO client with static credentials.
func NewMinioSource(cfg MinioConfig) (*MinioSource, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinioSource{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Read fetches the whole object.
func (s *MinioSource) Read(ctx context.Context, name string) ([]byte, error) {
	key := path.Join(s.prefix, name)

	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		code := minio.ToErrorResponse(err).Code
		if code == "NoSuchKey" || code == "NotFound" || code == "NoSuchBucket" {
			err = fmt.Errorf("%w: %v", os.ErrNotExist, err)
		}
		return nil, recerr.Wrap(recerr.KindArtifactNotFound, err, "stat %s/%s", s.bucket, key)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, recerr.Wrap(recerr.KindArtifactNotFound, err, "get %s/%s", s.bucket, key)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, recerr.Wrap(recerr.KindArtifactNotFound, err, "read %s/%s", s.bucket, key)
	}
	return data, nil
}

func (s *MinioSource) String() string { return "minio://" + s.bucket }
