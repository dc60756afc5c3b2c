package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/oss-pulse/pulse/schema"
)

// currentCacheVersion defines the version of the cached report payload.
// Bump it whenever the report shape or scoring semantics change.
const currentCacheVersion = 1

// cacheMaxAge bounds how long a cached report stays valid.
const cacheMaxAge = 7 * 24 * time.Hour

// cachedAnalyzeProject serves a project report from the result cache when a
// fresh entry exists, computing and storing it otherwise. With no store
// configured it falls through to direct computation.
func cachedAnalyzeProject(ctx context.Context, src contract.GraphSource, cfg *contract.Config, mgr contract.CacheManager, project string) (*schema.ProjectReport, error) {
	store := mgr.GetResultStore()
	if store == nil {
		return AnalyzeProject(ctx, src, cfg, project)
	}

	key, err := generateCacheKey(ctx, src, cfg, project)
	if err != nil {
		return AnalyzeProject(ctx, src, cfg, project)
	}

	if report := checkCacheHit(store, key); report != nil {
		return report, nil
	}

	return computeAndStore(ctx, src, cfg, store, key, project)
}

// checkCacheHit attempts to retrieve and validate a cached report.
func checkCacheHit(store contract.CacheStore, key string) *schema.ProjectReport {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= cacheMaxAge {
			var report schema.ProjectReport
			if err := json.Unmarshal(data, &report); err == nil {
				return &report // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// computeAndStore computes the report and stores it in cache.
func computeAndStore(ctx context.Context, src contract.GraphSource, cfg *contract.Config, store contract.CacheStore, key, project string) (*schema.ProjectReport, error) {
	report, err := AnalyzeProject(ctx, src, cfg, project)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(report); err == nil {
		_ = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}

	return report, nil
}

// generateCacheKey derives a unique key from everything that determines the
// report: the project, the set of available months, and the full scoring
// configuration. A new snapshot month or a config change invalidates the
// entry by changing the key.
func generateCacheKey(ctx context.Context, src contract.GraphSource, cfg *contract.Config, project string) (string, error) {
	months, err := src.Months(ctx, project)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(months))
	for _, m := range months {
		if cfg.InMonthRange(m) {
			parts = append(parts, string(m))
		}
	}

	scoring, err := json.Marshal(cfg.Scoring)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s:%s:%s", project, strings.Join(parts, ","), scoring)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key))), nil
}
