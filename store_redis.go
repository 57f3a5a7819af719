package historyhooks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ──────────────────────────────────────────────
// Redis History Store
// ──────────────────────────────────────────────

// RedisHistoryConfig configures the Redis-backed store.
type RedisHistoryConfig struct {
	Prefix string        // key prefix, default "hist"
	TTL    time.Duration // session expiry, refreshed on Append, 0 = no expiry
}

// RedisHistoryStore implements HistoryStore on one Redis list per
// session, keyed "{prefix}:{session_id}". Any go-redis Cmdable works:
// Client, ClusterClient, and Ring.
type RedisHistoryStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	ctx    context.Context
}

// NewRedisHistoryStore creates a HistoryStore backed by Redis.
func NewRedisHistoryStore(client redis.Cmdable, config ...RedisHistoryConfig) *RedisHistoryStore {
	cfg := RedisHistoryConfig{Prefix: "hist"}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "hist"
	}
	return &RedisHistoryStore{
		client: client,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
		ctx:    context.Background(),
	}
}

func (r *RedisHistoryStore) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, sessionID)
}

func (r *RedisHistoryStore) Append(sessionID string, entry interface{}) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	k := r.key(sessionID)
	if err := r.client.RPush(r.ctx, k, string(data)).Err(); err != nil {
		return err
	}
	if r.ttl > 0 {
		return r.client.Expire(r.ctx, k, r.ttl).Err()
	}
	return nil
}

func (r *RedisHistoryStore) History(sessionID string) ([]interface{}, error) {
	items, err := r.client.LRange(r.ctx, r.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return decodeEntries(items)
}

func (r *RedisHistoryStore) Trim(sessionID string, maxSize int) error {
	return r.client.LTrim(r.ctx, r.key(sessionID), int64(-maxSize), -1).Err()
}

func (r *RedisHistoryStore) Clear(sessionID string) error {
	return r.client.Del(r.ctx, r.key(sessionID)).Err()
}

func (r *RedisHistoryStore) Length(sessionID string) (int, error) {
	n, err := r.client.LLen(r.ctx, r.key(sessionID)).Result()
	return int(n), err
}

// Compile-time interface check.
var _ HistoryStore = (*RedisHistoryStore)(nil)
