// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

//go:build integration

package testinfra

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultMinioImage is the MinIO server image used for tests.
	DefaultMinioImage = "minio/minio:RELEASE.2024-10-13T13-34-11Z"

	// DefaultMinioPort is the S3 API port inside the container.
	DefaultMinioPort = "9000"

	// DefaultMinioAccessKey and DefaultMinioSecretKey are the root credentials.
	DefaultMinioAccessKey = "hybridrank"
	DefaultMinioSecretKey = "hybridrank-secret"

	// DefaultMinioRegion is the region the server reports.
	DefaultMinioRegion = "us-east-1"

	minioPort = DefaultMinioPort + "/tcp"
)

// MinioContainer is a running MinIO server.
type MinioContainer struct {
	testcontainers.Container

	// Endpoint is host:port without a scheme, as minio-go expects.
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string

	client *minio.Client
}

// MinioOption configures the MinIO container.
type MinioOption func(*minioConfig)

type minioConfig struct {
	image        string
	startTimeout time.Duration
}

// WithMinioImage sets a custom MinIO image.
func WithMinioImage(image string) MinioOption {
	return func(c *minioConfig) {
		c.image = image
	}
}

// WithMinioStartTimeout sets how long to wait for the health endpoint.
func WithMinioStartTimeout(timeout time.Duration) MinioOption {
	return func(c *minioConfig) {
		c.startTimeout = timeout
	}
}

// NewMinioContainer starts MinIO and waits for its liveness endpoint.
func NewMinioContainer(ctx context.Context, opts ...MinioOption) (*MinioContainer, error) {
	cfg := &minioConfig{
		image:        DefaultMinioImage,
		startTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{minioPort},
		Cmd:          []string{"server", "/data"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     DefaultMinioAccessKey,
			"MINIO_ROOT_PASSWORD": DefaultMinioSecretKey,
			"MINIO_REGION":        DefaultMinioRegion,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(minioPort),
			wait.ForHTTP("/minio/health/live").WithPort(minioPort),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio container: %w", err)
	}

	endpoint, err := container.PortEndpoint(ctx, minioPort, "")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("get minio endpoint: %w", err)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(DefaultMinioAccessKey, DefaultMinioSecretKey, ""),
		Region: DefaultMinioRegion,
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinioContainer{
		Container: container,
		Endpoint:  endpoint,
		AccessKey: DefaultMinioAccessKey,
		SecretKey: DefaultMinioSecretKey,
		Region:    DefaultMinioRegion,
		client:    client,
	}, nil
}

// URL returns the endpoint with an http scheme, as the AWS SDK expects.
func (m *MinioContainer) URL() string {
	return "http://" + m.Endpoint
}

// Client returns an admin client for the server.
func (m *MinioContainer) Client() *minio.Client {
	return m.client
}

// PutObject uploads data, creating bucket if needed.
func (m *MinioContainer) PutObject(ctx context.Context, bucket, key string, data []byte) error {
	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: m.Region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}

	_, err = m.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	return nil
}
