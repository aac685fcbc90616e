// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package recommend

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrank/internal/cache"
	"github.com/tomtom215/hybridrank/internal/logging"
	"github.com/tomtom215/hybridrank/internal/metrics"
	"github.com/tomtom215/hybridrank/internal/recommend/artifact"
	"github.com/tomtom215/hybridrank/internal/recommend/catalog"
	"github.com/tomtom215/hybridrank/internal/recommend/embedding"
	"github.com/tomtom215/hybridrank/internal/recommend/encoder"
	"github.com/tomtom215/hybridrank/internal/recommend/ranking"
	"github.com/tomtom215/hybridrank/internal/recommend/recerr"
	"github.com/tomtom215/hybridrank/internal/recommend/scoring"
)

// CacheName labels the response cache in metrics.
const CacheName = "recommendations"

// MaxIDLength bounds user and item identifiers accepted in requests.
const MaxIDLength = 256

// Engine serves recommendations from one loaded model.
//
// Everything reachable from the engine except the response cache and the
// counters is immutable after NewEngine, so Recommend needs no locks.
type Engine struct {
	config *Config
	logger zerolog.Logger

	model   *artifact.Model
	store   *embedding.Store
	catalog *catalog.Catalog
	encoder *encoder.Encoder
	ranker  *ranking.Ranker
	cache   *cache.LRU[*Response]

	// users holds user ids in natural order for listing.
	users     []string
	startedAt time.Time

	requestCount   atomic.Int64
	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
	coldStartUsers atomic.Int64
	errorCount     atomic.Int64
}

// NewEngine creates an engine over a loaded model. When cat is nil the
// catalog is built from the items and interactions embedded in the model.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, model *artifact.Model, cat *catalog.Catalog, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if model == nil || model.Store == nil {
		return nil, recerr.New(recerr.KindModelUnavailable, "no model loaded")
	}
	if cfg.Seed == 0 {
		cfg = cfg.Clone()
		cfg.Seed = DefaultSeed
	}

	store := model.Store
	if cat == nil {
		cat = catalog.New(store.Items(), CatalogRows(model.Items), model.Interactions, catalog.Options{})
	}

	e := &Engine{
		config:    cfg,
		logger:    logger.With().Str("component", "recommend").Logger(),
		model:     model,
		store:     store,
		catalog:   cat,
		encoder:   encoder.New(store),
		ranker:    ranking.New(scoring.New(store)),
		users:     naturalSort(store.Users().IDs()),
		startedAt: time.Now(),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[*Response](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	e.logger.Info().
		Int("users", store.Users().Len()).
		Int("items", store.Items().Len()).
		Int("mine_items", cat.MineCount()).
		Int("dim", store.Dim()).
		Bool("cache", cfg.Cache.Enabled).
		Msg("recommendation engine ready")

	return e, nil
}

// CatalogRows converts artifact item records to catalog rows.
func CatalogRows(items []artifact.ItemRecord) []catalog.Item {
	if len(items) == 0 {
		return nil
	}
	rows := make([]catalog.Item, len(items))
	for i := range items {
		r := &items[i]
		rows[i] = catalog.Item{
			ID:       r.ID,
			Title:    r.Title,
			Category: r.Category,
			Price:    r.Price,
			Level:    r.Level,
			Language: r.Language,
			Source:   strings.ToLower(strings.TrimSpace(r.Source)),
		}
	}
	return rows
}

// Recommend generates recommendations for a user.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if err := ctx.Err(); err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(metrics.OutcomeError, time.Since(start), 0)
		return nil, err
	}

	req, err := e.prepareRequest(ctx, req)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(metrics.OutcomeInvalid, time.Since(start), 0)
		return nil, err
	}
	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	if resp := e.tryGetCachedResponse(req, start, logger); resp != nil {
		metrics.RecordRecommendation(metrics.OutcomeCached, time.Since(start), 0)
		return resp, nil
	}

	user := e.encoder.EncodeUser(req.UserID, req.UserFeatures)
	if user.Cold() {
		e.coldStartUsers.Add(1)
		metrics.RecordColdStart("user", 1)
	}

	candidates, coldItems := e.buildCandidates(req)
	metrics.RecordColdStart("item", coldItems)

	result, err := e.ranker.Rank(user, candidates, req.TopN, toSet(req.ExcludeSeen))
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(metrics.OutcomeError, time.Since(start), 0)
		return nil, fmt.Errorf("rank candidates: %w", err)
	}

	resp := e.buildResponse(req, user, result, start)
	e.cacheResponse(req, resp)

	outcome := metrics.OutcomeOK
	if resp.Count == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecordRecommendation(outcome, time.Since(start), result.Scored)

	logger.Debug().
		Int("candidates", len(candidates)).
		Int("scored", result.Scored).
		Int("returned", resp.Count).
		Bool("cold_start", resp.ColdStart).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest validates the request, applies defaults and clamps top_n.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(ctx context.Context, req Request) (Request, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		return req, recerr.Invalid("user_id is required")
	}
	if err := checkID("user_id", req.UserID); err != nil {
		return req, err
	}
	if req.TopN <= 0 {
		return req, recerr.Invalid("top_n must be positive, got %d", req.TopN)
	}
	if req.TopN > e.config.Limits.MaxCount {
		req.TopN = e.config.Limits.MaxCount
	}
	for _, id := range req.CandidateIDs {
		if err := checkID("candidate_ids", id); err != nil {
			return req, err
		}
	}
	for _, id := range req.ExcludeSeen {
		if err := checkID("exclude_seen", id); err != nil {
			return req, err
		}
	}
	if req.MineOnly == nil {
		v := e.config.Candidates.MineOnlyDefault
		req.MineOnly = &v
	}
	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(ctx)
	}
	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}
	return req, nil
}

// checkID rejects empty, oversized and control-character identifiers.
func checkID(field, id string) error {
	if id == "" {
		return recerr.Invalid("%s contains an empty identifier", field)
	}
	if len(id) > MaxIDLength {
		return recerr.Invalid("%s identifier exceeds %d bytes", field, MaxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return recerr.Invalid("%s identifier contains control characters", field)
		}
	}
	return nil
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Int("top_n", req.TopN).
		Bool("mine_only", *req.MineOnly).
		Logger()
}

// cacheable reports whether a request depends only on user, count and scope.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cacheable(req Request) bool {
	return e.cache != nil &&
		len(req.CandidateIDs) == 0 &&
		len(req.ExcludeSeen) == 0 &&
		len(req.UserFeatures) == 0
}

// cacheKey generates a cache key for a request.
//
//nolint:gocritic // hugeParam: req passed by value for simplicity
func (e *Engine) cacheKey(req Request) string {
	return fmt.Sprintf("rec:%s:%d:%t", req.UserID, req.TopN, *req.MineOnly)
}

// tryGetCachedResponse returns a copy of a cached response, or nil.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(req Request, start time.Time, logger zerolog.Logger) *Response {
	if !e.cacheable(req) {
		return nil
	}

	cached, ok := e.cache.Get(e.cacheKey(req))
	metrics.RecordCacheLookup(CacheName, ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	resp := copyResponse(cached)
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	logger.Debug().Msg("cache hit")
	return resp
}

// cacheResponse stores a copy of the response if the request is cacheable.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cacheResponse(req Request, resp *Response) {
	if e.cacheable(req) {
		e.cache.Add(e.cacheKey(req), copyResponse(resp))
		metrics.UpdateCacheEntries(CacheName, e.cache.Len())
	}
}

// copyResponse copies the response and its recommendation slice. Price
// pointers are shared; they point into the immutable catalog.
func copyResponse(resp *Response) *Response {
	c := *resp
	c.Recommendations = make([]Recommendation, len(resp.Recommendations))
	copy(c.Recommendations, resp.Recommendations)
	return &c
}

// buildResponse enriches ranked items with ratings and catalog metadata.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponse(req Request, user encoder.Entity, result ranking.Result, start time.Time) *Response {
	recs := e.enrich(result)
	return &Response{
		UserID:          req.UserID,
		Count:           len(recs),
		MineOnly:        *req.MineOnly,
		ColdStart:       user.Cold(),
		Recommendations: recs,
		TotalCandidates: result.Scored,
		Metadata: ResponseMetadata{
			RequestID: req.RequestID,
			LatencyMS: time.Since(start).Milliseconds(),
			ModelName: e.model.Metadata["model_name"],
			Timestamp: time.Now().UTC(),
		},
	}
}

// enrich converts ranked items into recommendations.
func (e *Engine) enrich(result ranking.Result) []Recommendation {
	recs := make([]Recommendation, len(result.Items))
	for i, it := range result.Items {
		rec := Recommendation{
			ItemID: it.ID,
			Score:  it.Score,
			Rating: Rating(it.Score, result.MinScore, result.MaxScore),
		}
		if row, ok := e.catalog.Item(it.ID); ok {
			rec.Title = row.DisplayTitle()
			rec.Category = row.Category
			rec.Price = row.Price
			rec.Level = row.Level
			rec.Language = row.Language
		}
		recs[i] = rec
	}
	return recs
}

// Rating maps a score onto 1..5 given the score range of a request.
func Rating(score, lo, hi float64) float64 {
	return 1 + 4*(score-lo)/(hi-lo+1e-9)
}

// SimilarItems returns the topN items closest to itemID by cosine
// similarity of their latent vectors.
func (e *Engine) SimilarItems(ctx context.Context, itemID string, topN int) (*SimilarResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	itemID = strings.TrimSpace(itemID)
	if err := checkID("item_id", itemID); err != nil {
		return nil, err
	}
	if topN <= 0 {
		return nil, recerr.Invalid("count must be positive, got %d", topN)
	}
	if topN > e.config.Limits.MaxCount {
		topN = e.config.Limits.MaxCount
	}

	idx, ok := e.store.Items().Lookup(itemID)
	if !ok {
		return nil, recerr.New(recerr.KindNotFound, "item %q not found", itemID)
	}
	result, err := e.ranker.Similar(idx, topN)
	if err != nil {
		return nil, err
	}

	items := e.enrich(result)
	return &SimilarResponse{ItemID: itemID, Count: len(items), Items: items}, nil
}

// Users returns a page of known user ids in natural order.
func (e *Engine) Users(offset, limit int) UserList {
	total := len(e.users)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return UserList{Users: []string{}, Total: total}
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return UserList{Users: slices.Clone(e.users[offset:end]), Total: total}
}

// Items returns a page of catalog items, optionally filtered by source.
func (e *Engine) Items(source string, offset, limit int) ItemList {
	if offset < 0 {
		offset = 0
	}
	source = strings.ToLower(strings.TrimSpace(source))
	items, total := e.catalog.List(source, offset, limit)
	return ItemList{Items: items, Total: total, Source: source}
}

// Status reports the model, cache and engine counters.
func (e *Engine) Status() Status {
	feats := 0
	if f := e.store.Features(); f != nil {
		feats = f.Len()
	}
	st := Status{
		ModelLoaded:    true,
		UsersCount:     e.store.Users().Len(),
		ItemsCount:     e.store.Items().Len(),
		MineItemsCount: e.catalog.MineCount(),
		FeaturesCount:  feats,
		CatalogItems:   e.catalog.Len(),
		HistoryUsers:   e.catalog.HistoryUsers(),
		Dim:            e.store.Dim(),
		ModelInfo: ModelInfo{
			Info:       e.model.Info,
			Metadata:   e.model.Metadata,
			Normalized: e.store.HasNormalizedItems(),
			MemoryMB:   float64(e.store.SizeBytes()) / (1 << 20),
		},
		Metrics: e.GetMetrics(),
		Uptime:  time.Since(e.startedAt),
	}
	if e.cache != nil {
		st.Cache = CacheStatus{Enabled: true, Stats: e.cache.Stats()}
	}
	return st
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:   e.requestCount.Load(),
		CacheHits:      e.cacheHits.Load(),
		CacheMisses:    e.cacheMisses.Load(),
		ColdStartUsers: e.coldStartUsers.Load(),
		ErrorCount:     e.errorCount.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// Cache returns the response cache, or nil when caching is disabled.
func (e *Engine) Cache() *cache.LRU[*Response] {
	return e.cache
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// naturalSort orders numeric ids numerically before other ids, which are
// ordered lexicographically.
func naturalSort(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.SliceStable(out, func(i, j int) bool {
		a, aerr := strconv.ParseInt(out[i], 10, 64)
		b, berr := strconv.ParseInt(out[j], 10, 64)
		switch {
		case aerr == nil && berr == nil:
			if a != b {
				return a < b
			}
			return out[i] < out[j]
		case aerr == nil:
			return true
		case berr == nil:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}

func toSet(ids []string) map[string]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
