// Package iocache is for durable storage: cached analysis results and
// longitudinal analysis tracking.
package iocache

import (
	"sync"

	"github.com/oss-pulse/pulse/internal/contract"
)

// CacheStoreManager manages multiple store instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	result       contract.CacheStore
	analysis     contract.AnalysisStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetResultStore returns the analysis-result CacheStore.
func (mgr *CacheStoreManager) GetResultStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.result
}

// GetAnalysisStore returns the analysis AnalysisStore.
func (mgr *CacheStoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
