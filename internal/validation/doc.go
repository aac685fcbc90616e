// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

/*
Package validation provides struct validation using go-playground/validator v10.

A single validator instance is shared by all callers; it caches struct
metadata and is safe for concurrent use. Field names in errors follow the
json tag, so a failure on UserID is reported as "user_id".

Custom tags:
  - entity_id: non-empty, at most 256 bytes, no control characters

Example:

	type recommendRequest struct {
	    UserID string `json:"user_id" validate:"entity_id"`
	    Count  int    `json:"count" validate:"gte=0,lte=1000"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    respondError(w, r, recerr.Invalid(verr.Error()), verr.Details())
	    return
	}
*/
package validation
