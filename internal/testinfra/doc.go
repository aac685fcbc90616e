// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

// Package testinfra provides container-backed infrastructure for
// integration tests.
//
// Everything here is behind the integration build tag and uses
// testcontainers-go, so plain `go test ./...` never needs Docker:
//
//	go test -tags integration ./internal/testinfra/...
//
// # MinIO Container
//
// MinioContainer runs a single-node MinIO server that both the MinIO and
// the AWS SDK artifact sources can read from:
//
//	minioC, err := testinfra.NewMinioContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(ctx, t, minioC.Container)
//
//	if err := minioC.PutObject(ctx, "models", "model.hrm", data); err != nil {
//	    t.Fatal(err)
//	}
//
// Tests skip when Docker is unavailable. The first run pulls the image.
package testinfra
