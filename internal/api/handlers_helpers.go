// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/hybridrank/internal/recommend/embedding"
	"github.com/tomtom215/hybridrank/internal/recommend/recerr"
	"github.com/tomtom215/hybridrank/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// validateRequest validates v. On failure it writes an InvalidRequest
// response with per-field details and returns false.
func validateRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return true
	}
	respondError(w, r, recerr.Invalid("%s", verr.Error()), verr.Details())
	return false
}

// getIntParam parses an integer query parameter. A missing parameter
// yields defaultValue; a malformed one is an InvalidRequest.
func getIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, recerr.Invalid("%s must be an integer, got %q", key, value)
	}
	return n, nil
}

// getBoolParam parses an optional boolean query parameter. Nil means absent.
func getBoolParam(r *http.Request, key string) (*bool, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, recerr.Invalid("%s must be a boolean, got %q", key, value)
	}
	return &b, nil
}

// parseCommaSeparated parses a comma-separated string into a slice
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// parseFeatures parses "id:weight,id2:weight2". A missing weight is 1.
func parseFeatures(value string) ([]embedding.Feature, error) {
	parts := parseCommaSeparated(value)
	if len(parts) == 0 {
		return nil, nil
	}
	if len(parts) > MaxUserFeatures {
		return nil, recerr.Invalid("features must list at most %d entries", MaxUserFeatures)
	}
	features := make([]embedding.Feature, 0, len(parts))
	for _, p := range parts {
		id, weightStr, hasWeight := strings.Cut(p, ":")
		id = strings.TrimSpace(id)
		if !validation.IsEntityID(id) {
			return nil, recerr.Invalid("features contains a malformed identifier %q", sanitizeLogValue(id))
		}
		weight := 1.0
		if hasWeight {
			w, err := strconv.ParseFloat(strings.TrimSpace(weightStr), 64)
			if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, recerr.Invalid("feature %q has a malformed weight %q", id, sanitizeLogValue(weightStr))
			}
			weight = w
		}
		features = append(features, embedding.Feature{ID: id, Weight: weight})
	}
	return features, nil
}
