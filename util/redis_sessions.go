package util

import (
	"context"
	"errors"
	"time"

	"github.com/ariebrainware/dentara-clinic/config"
	"github.com/redis/go-redis/v9"
)

// SessionKey is the Redis key caching the uid behind a session token.
func SessionKey(token string) string {
	return "session:" + token
}

// UserSessionsKey is the Redis set of live tokens for one uid.
func UserSessionsKey(uid string) string {
	return "user_sessions:" + uid
}

// CacheSession stores token -> uid with the session's remaining lifetime and
// records the token in the per-user set. Without Redis it is a no-op.
func CacheSession(ctx context.Context, token, uid string, ttl time.Duration) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	pipe := rdb.Pipeline()
	pipe.Set(ctx, SessionKey(token), uid, ttl)
	pipe.SAdd(ctx, UserSessionsKey(uid), token)
	_, err := pipe.Exec(ctx)
	return err
}

// CachedSessionUID returns the uid cached for token. ok is false on a miss or
// when Redis is unavailable; callers then fall back to the database.
func CachedSessionUID(ctx context.Context, token string) (uid string, ok bool) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return "", false
	}
	uid, err := rdb.Get(ctx, SessionKey(token)).Result()
	if err != nil || uid == "" {
		return "", false
	}
	return uid, true
}

const removeTokenScript = `
local removed = redis.call('SREM', KEYS[1], ARGV[1])
if removed > 0 and redis.call('SCARD', KEYS[1]) == 0 then
	redis.call('DEL', KEYS[1])
end
redis.call('DEL', KEYS[2])
return removed
`

// RemoveCachedSession drops one token from the cache and from the per-user
// set, deleting the set once empty.
func RemoveCachedSession(ctx context.Context, uid, token string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	return rdb.Eval(ctx, removeTokenScript, []string{UserSessionsKey(uid), SessionKey(token)}, token).Err()
}

// InvalidateUserSessions drops every cached token of uid and returns them.
func InvalidateUserSessions(ctx context.Context, uid string) ([]string, error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil, nil
	}
	tokens, err := rdb.SMembers(ctx, UserSessionsKey(uid)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	keys := make([]string, 0, len(tokens)+1)
	for _, tok := range tokens {
		keys = append(keys, SessionKey(tok))
	}
	keys = append(keys, UserSessionsKey(uid))
	return tokens, rdb.Del(ctx, keys...).Err()
}
