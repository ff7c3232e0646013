package config

import (
	"sync"

	"github.com/redis/go-redis/v9"
)

// SetRedisClientForTest injects a client, typically a redismock client.
func SetRedisClientForTest(client *redis.Client) {
	redisMu.Lock()
	defer redisMu.Unlock()
	redisClient = client
}

// ResetRedisClientForTest clears the client and lets ConnectRedis run again.
func ResetRedisClientForTest() {
	redisMu.Lock()
	defer redisMu.Unlock()
	redisClient = nil
	redisOnce = sync.Once{}
}
