package common

import "time"

const (
	// RedisKeyAnalysisRunLock is the advisory lock key guaranteeing that at
	// most one analysis run executes its replace phase at a time.
	RedisKeyAnalysisRunLock = "insights.analysis_run.lock"

	// AnalysisRunLockTTL bounds lock staleness if a process dies mid-run.
	AnalysisRunLockTTL = 30 * time.Minute

	// CacheKeyClusters is the go-cache key for the cluster listing.
	CacheKeyClusters = "insights.clusters.all"
)
