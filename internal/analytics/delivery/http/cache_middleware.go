package http

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lagerkern/replenish/pkg/logger"
)

// CacheConfig holds response cache configuration
type CacheConfig struct {
	DefaultTTL        time.Duration // Default cache TTL
	CacheableMethods  []string      // HTTP methods to cache
	CacheableStatus   []int         // HTTP status codes to cache
	CacheablePrefixes []string      // Path prefixes eligible for caching
}

// DefaultCacheConfig returns default cache configuration. Only report paths
// are cached; health and metrics endpoints must stay live.
func DefaultCacheConfig(ttl time.Duration) CacheConfig {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return CacheConfig{
		DefaultTTL:        ttl,
		CacheableMethods:  []string{"GET", "HEAD"},
		CacheableStatus:   []int{200, 203, 204, 206},
		CacheablePrefixes: []string{"/api/"},
	}
}

// cachingResponseWriter buffers the body so a cacheable response can be
// stored after it has been sent.
type cachingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (crw *cachingResponseWriter) WriteHeader(code int) {
	crw.statusCode = code
	crw.ResponseWriter.WriteHeader(code)
}

func (crw *cachingResponseWriter) Write(p []byte) (int, error) {
	crw.body.Write(p)
	return crw.ResponseWriter.Write(p)
}

// CacheMiddleware implements response caching with Redis. Report endpoints
// are read-heavy and tolerate a few minutes of staleness; writes bypass the
// cache entirely. A nil client disables caching.
func CacheMiddleware(redisClient *redis.Client, config CacheConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if redisClient == nil || !isMethodCacheable(r.Method, config.CacheableMethods) || !isPathCacheable(r.URL.Path, config.CacheablePrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			cacheKey := generateCacheKey(r)
			ctx := r.Context()

			cachedResponse, err := redisClient.Get(ctx, cacheKey).Bytes()
			if err == nil && len(cachedResponse) > 0 {
				// Cache hit
				logger.Logger.Debug().
					Str("path", r.URL.Path).
					Str("cache_key", cacheKey).
					Msg("Cache hit")

				w.Header().Set("X-Cache", "HIT")
				w.Header().Set("Content-Type", "application/json")
				w.Write(cachedResponse)
				return
			}

			// Cache miss - execute request
			logger.Logger.Debug().
				Str("path", r.URL.Path).
				Str("cache_key", cacheKey).
				Msg("Cache miss")

			crw := &cachingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			crw.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(crw, r)

			if !isStatusCacheable(crw.statusCode, config.CacheableStatus) {
				return
			}

			ttl := config.DefaultTTL
			if err := redisClient.Set(ctx, cacheKey, crw.body.Bytes(), ttl).Err(); err != nil {
				logger.Logger.Warn().
					Err(err).
					Str("cache_key", cacheKey).
					Msg("Failed to cache response")
				return
			}

			logger.Logger.Debug().
				Str("path", r.URL.Path).
				Str("cache_key", cacheKey).
				Dur("ttl", ttl).
				Int("size", crw.body.Len()).
				Msg("Response cached")
		})
	}
}

// InvalidateCache invalidates cache for a specific pattern. The restock run
// and the weekly aggregation call this so report endpoints never serve data
// from before the write.
func InvalidateCache(redisClient *redis.Client, pattern string) error {
	if redisClient == nil {
		return nil
	}
	ctx := context.Background()

	iter := redisClient.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := redisClient.Del(ctx, keys...).Err(); err != nil {
			return err
		}

		logger.Logger.Info().
			Int("count", len(keys)).
			Str("pattern", pattern).
			Msg("Cache invalidated")
	}

	return nil
}

// generateCacheKey generates a unique cache key for the request
func generateCacheKey(r *http.Request) string {
	keyComponents := fmt.Sprintf("%s:%s:%s",
		r.Method,
		r.URL.Path,
		r.URL.RawQuery,
	)

	hash := sha256.Sum256([]byte(keyComponents))
	return fmt.Sprintf("cache:%s", hex.EncodeToString(hash[:]))
}

// isMethodCacheable checks if HTTP method is cacheable
func isMethodCacheable(method string, cacheableMethods []string) bool {
	for _, m := range cacheableMethods {
		if m == method {
			return true
		}
	}
	return false
}

// isPathCacheable checks if the request path is eligible for caching
func isPathCacheable(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// isStatusCacheable checks if status code is cacheable
func isStatusCacheable(status int, cacheableStatus []int) bool {
	for _, s := range cacheableStatus {
		if s == status {
			return true
		}
	}
	return false
}
