package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const (
	ChannelsCacheTTL = 15 * time.Minute
	SummaryCacheTTL  = 5 * time.Minute
)

// Hit/miss counters live next to the cache they observe. A disabled cache
// counts neither.
var (
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "channelpulse_cache_hits_total",
		Help: "Total Redis cache hits.",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "channelpulse_cache_misses_total",
		Help: "Total Redis cache misses.",
	})
)

func init() {
	prometheus.MustRegister(cacheHits, cacheMisses)
}

// CacheService provides a Redis cache-aside layer for channel and summary
// lookups.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or connection
// fails, it returns a CacheService with a nil client (cache operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetChannels retrieves a user's cached channel list. Returns nil if not
// cached or cache is disabled.
func (c *CacheService) GetChannels(ctx context.Context, userID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, channelsKey(userID)).Bytes()
	if err == redis.Nil {
		cacheMisses.Inc()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cacheHits.Inc()
	return data, nil
}

// SetChannels stores a user's channel list in cache.
func (c *CacheService) SetChannels(ctx context.Context, userID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, channelsKey(userID), b, ChannelsCacheTTL).Err()
}

// GetSummary retrieves a cached summary for one user and range expression.
func (c *CacheService) GetSummary(ctx context.Context, userID, rangeExpr string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, summaryKey(userID, rangeExpr)).Bytes()
	if err == redis.Nil {
		cacheMisses.Inc()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cacheHits.Inc()
	return data, nil
}

// SetSummary stores a summary response in cache. Summaries get a shorter TTL
// than the channel list because every range expression is a separate key.
func (c *CacheService) SetSummary(ctx context.Context, userID, rangeExpr string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, summaryKey(userID, rangeExpr), b, SummaryCacheTTL).Err()
}

// InvalidateUser removes every cached entry for a user (called after uploads
// and deletes). Summary keys vary by range expression, so they are found by
// scan rather than tracked individually.
func (c *CacheService) InvalidateUser(ctx context.Context, userID string) error {
	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, channelsKey(userID)).Err(); err != nil {
		return err
	}

	iter := c.rdb.Scan(ctx, 0, summaryKey(userID, "*"), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func channelsKey(userID string) string {
	return fmt.Sprintf("channels:%s", userID)
}

func summaryKey(userID, rangeExpr string) string {
	return fmt.Sprintf("summary:%s:%s", userID, rangeExpr)
}
