package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// presenceKey holds the cached set of employee ids currently inside,
// maintained by the worker as new logs arrive.
const presenceKey = "timetracking:present"

// Redis wraps redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to redis with short timeouts.
func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Redis{Client: client}
}

// Healthy verifies redis connectivity.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}

// SetPresenceSnapshot replaces the cached presence set. The TTL
// bounds staleness if the worker stops.
func (r *Redis) SetPresenceSnapshot(ctx context.Context, ids []int64, ttl time.Duration) error {
	pipe := r.Client.TxPipeline()
	pipe.Del(ctx, presenceKey)
	if len(ids) > 0 {
		members := make([]interface{}, len(ids))
		for i, id := range ids {
			members[i] = strconv.FormatInt(id, 10)
		}
		pipe.SAdd(ctx, presenceKey, members...)
		pipe.Expire(ctx, presenceKey, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// PresenceSnapshot returns the cached presence set; empty when no
// snapshot has been taken yet.
func (r *Redis) PresenceSnapshot(ctx context.Context) ([]int64, error) {
	members, err := r.Client.SMembers(ctx, presenceKey).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
