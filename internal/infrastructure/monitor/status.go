package monitor

import "time"

type Status struct {
	Upstream       bool      `json:"upstream"`
	CachePopulated bool      `json:"cache_populated"`
	CachedAt       time.Time `json:"cached_at,omitzero"`
	LastCheck      time.Time `json:"last_check"`
}
