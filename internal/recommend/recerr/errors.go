// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

// Package recerr defines the error kinds shared by the scoring core and the
// HTTP layer.
//
// Every failure that crosses a package boundary is an *Error carrying a Kind.
// Callers branch on kinds with errors.Is against the sentinel values:
//
//	if errors.Is(err, recerr.ErrInvalidRequest) { ... }
//
// or extract the kind directly with KindOf.
package recerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers and for the wire format.
type Kind string

const (
	// KindInvalidRequest is a malformed request (bad top_n, missing identifiers).
	KindInvalidRequest Kind = "InvalidRequest"

	// KindArtifactNotFound means the model artifact could not be read.
	KindArtifactNotFound Kind = "ArtifactNotFound"

	// KindArtifactCorrupt means the artifact failed structural validation.
	KindArtifactCorrupt Kind = "ArtifactCorrupt"

	// KindNotFound is an unknown entity in a lookup-style request.
	KindNotFound Kind = "NotFound"

	// KindModelUnavailable means no model is loaded.
	KindModelUnavailable Kind = "ModelUnavailable"

	// KindInternal is anything not otherwise classified.
	KindInternal Kind = "Internal"
)

// Error is a classified error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Sentinels for errors.Is comparisons. They match any *Error of the same kind.
var (
	ErrInvalidRequest   = &Error{Kind: KindInvalidRequest}
	ErrArtifactNotFound = &Error{Kind: KindArtifactNotFound}
	ErrArtifactCorrupt  = &Error{Kind: KindArtifactCorrupt}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrModelUnavailable = &Error{Kind: KindModelUnavailable}
)

func (e *Error) Error() string {
	switch {
	case e.Message == "" && e.Err == nil:
		return string(e.Kind)
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Message == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// New creates a classified error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err, keeping it as the cause. A nil err yields nil.
// An err that already carries a kind keeps its original kind.
func Wrap(kind Kind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		kind = existing.Kind
	}
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or KindInternal when err is unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Invalid is shorthand for New(KindInvalidRequest, ...).
func Invalid(format string, args ...any) *Error {
	return New(KindInvalidRequest, format, args...)
}

// Corrupt is shorthand for New(KindArtifactCorrupt, ...).
func Corrupt(format string, args ...any) *Error {
	return New(KindArtifactCorrupt, format, args...)
}
