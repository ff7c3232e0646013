package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisMu     sync.RWMutex
)

// ConnectRedis initializes the shared Redis client from REDIS_ADDR,
// REDIS_PASS and REDIS_DB. Redis is optional: with no REDIS_ADDR, or under
// APPENV=test, it returns (nil, nil) and callers degrade gracefully.
func ConnectRedis() (*redis.Client, error) {
	var err error
	redisOnce.Do(func() {
		if LoadConfig().IsTest() {
			return
		}
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			return
		}
		dbNum, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASS"),
			DB:       dbNum,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err = rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			err = fmt.Errorf("redis ping failed: %w", err)
			return
		}

		redisMu.Lock()
		redisClient = rdb
		redisMu.Unlock()
		log.Printf("Connected to Redis at %s", addr)
	})
	return GetRedisClient(), err
}

// GetRedisClient returns the shared client, or nil when Redis is not in use.
func GetRedisClient() *redis.Client {
	redisMu.RLock()
	defer redisMu.RUnlock()
	return redisClient
}
