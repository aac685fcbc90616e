// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/hybridrank/internal/recommend"
	"github.com/tomtom215/hybridrank/internal/recommend/recerr"
)

// GetRecommendations handles GET /api/v1/recommendations
//
// Query parameters: user_id (required), count, mine_only, candidates and
// exclude (comma-separated ids), features ("id:weight,...").
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		respondError(w, r, ErrNoEngine, nil)
		return
	}

	q := r.URL.Query()
	count, err := getIntParam(r, "count", h.defaultCount())
	if err != nil {
		respondError(w, r, err, nil)
		return
	}
	mineOnly, err := getBoolParam(r, "mine_only")
	if err != nil {
		respondError(w, r, err, nil)
		return
	}
	features, err := parseFeatures(q.Get("features"))
	if err != nil {
		respondError(w, r, err, nil)
		return
	}

	query := RecommendQuery{
		UserID:     strings.TrimSpace(q.Get("user_id")),
		Count:      count,
		Candidates: parseCommaSeparated(q.Get("candidates")),
		Exclude:    parseCommaSeparated(q.Get("exclude")),
	}
	if !validateRequest(w, r, &query) {
		return
	}

	h.serveRecommendations(w, r, recommend.Request{
		UserID:       query.UserID,
		CandidateIDs: query.Candidates,
		TopN:         query.Count,
		ExcludeSeen:  query.Exclude,
		UserFeatures: features,
		MineOnly:     mineOnly,
	})
}

// PostRecommendations handles POST /api/v1/recommendations with a JSON body.
func (h *Handler) PostRecommendations(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		respondError(w, r, ErrNoEngine, nil)
		return
	}

	var body RecommendRequestBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			respondError(w, r, recerr.Invalid("request body exceeds %d bytes", MaxBodyBytes), nil)
		case errors.Is(err, io.EOF):
			respondError(w, r, recerr.Invalid("request body is empty"), nil)
		default:
			respondError(w, r, recerr.Invalid("malformed JSON body: %s", sanitizeLogValue(err.Error())), nil)
		}
		return
	}
	body.UserID = strings.TrimSpace(body.UserID)
	if !validateRequest(w, r, &body) {
		return
	}

	h.serveRecommendations(w, r, body.toRequest(h.defaultCount()))
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (h *Handler) serveRecommendations(w http.ResponseWriter, r *http.Request, req recommend.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, req)
	if err != nil {
		respondError(w, r, err, nil)
		return
	}
	rw.Success(resp)
}

// Users handles GET /api/v1/users?limit=&offset=
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		respondError(w, r, ErrNoEngine, nil)
		return
	}
	query, ok := h.listQuery(w, r)
	if !ok {
		return
	}

	rw := NewResponseWriter(w, r)
	page := h.engine.Users(query.Offset, query.Limit)
	rw.SuccessWithPagination(page, NewPagination(page.Total, len(page.Users), query.Offset, query.Limit))
}

// Items handles GET /api/v1/items?source=&limit=&offset=
func (h *Handler) Items(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		respondError(w, r, ErrNoEngine, nil)
		return
	}
	query, ok := h.listQuery(w, r)
	if !ok {
		return
	}

	rw := NewResponseWriter(w, r)
	page := h.engine.Items(query.Source, query.Offset, query.Limit)
	rw.SuccessWithPagination(page, NewPagination(page.Total, len(page.Items), query.Offset, query.Limit))
}

func (h *Handler) listQuery(w http.ResponseWriter, r *http.Request) (ListQuery, bool) {
	limit, err := getIntParam(r, "limit", DefaultListLimit)
	if err != nil {
		respondError(w, r, err, nil)
		return ListQuery{}, false
	}
	offset, err := getIntParam(r, "offset", 0)
	if err != nil {
		respondError(w, r, err, nil)
		return ListQuery{}, false
	}
	query := ListQuery{
		Limit:  limit,
		Offset: offset,
		Source: strings.TrimSpace(r.URL.Query().Get("source")),
	}
	if !validateRequest(w, r, &query) {
		return ListQuery{}, false
	}
	return query, true
}

// SimilarItems handles GET /api/v1/items/{id}/similar?count=
func (h *Handler) SimilarItems(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		respondError(w, r, ErrNoEngine, nil)
		return
	}
	count, err := getIntParam(r, "count", h.defaultCount())
	if err != nil {
		respondError(w, r, err, nil)
		return
	}
	query := SimilarQuery{
		ItemID: strings.TrimSpace(chi.URLParam(r, "id")),
		Count:  count,
	}
	if !validateRequest(w, r, &query) {
		return
	}

	rw := NewResponseWriter(w, r)
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	resp, err := h.engine.SimilarItems(ctx, query.ItemID, query.Count)
	if err != nil {
		respondError(w, r, err, nil)
		return
	}
	rw.Success(resp)
}
