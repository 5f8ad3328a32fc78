package sqlgen

import "sync/atomic"

// BuildStats counts compilations. One instance may be shared by several
// Builders; all methods are safe for concurrent use.
type BuildStats struct {
	builds    atomic.Int64
	failures  atomic.Int64
	cacheHits atomic.Int64
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Builds    int64
	Failures  int64
	CacheHits int64
}

// Snapshot returns the current counter values.
func (s *BuildStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Builds:    s.builds.Load(),
		Failures:  s.failures.Load(),
		CacheHits: s.cacheHits.Load(),
	}
}

// Reset zeroes all counters.
func (s *BuildStats) Reset() {
	s.builds.Store(0)
	s.failures.Store(0)
	s.cacheHits.Store(0)
}

func (s *BuildStats) record(hit bool, err error) {
	s.builds.Add(1)
	if err != nil {
		s.failures.Add(1)
	}
	if hit {
		s.cacheHits.Add(1)
	}
}
