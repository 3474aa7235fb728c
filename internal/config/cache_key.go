package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RateLimitKey returns the counter key for a client in a fixed window.
func (r *CacheKeyStruct) RateLimitKey(scope, clientIP string, window int64) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", scope, clientIP, window)
}

// SearchStatsKey returns the hash holding live search counters for an exam type.
func (r *CacheKeyStruct) SearchStatsKey(examType string) string {
	return fmt.Sprintf("search:stats:%s", examType)
}

var CacheKey = NewCacheKeyStruct()
