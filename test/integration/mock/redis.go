package mock

import (
	"context"
	"path"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce   sync.Once
	redisServer *miniredis.Miniredis
	redisConn   *redis.Client
)

// NewRedis returns a client for a process-wide miniredis instance.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = server
		redisConn = redis.NewClient(&redis.Options{Addr: server.Addr()})
	})
	return redisConn
}

// ClearRedis drops every key, including session locks.
func ClearRedis(conn *redis.Client) error {
	return conn.FlushAll(context.Background()).Err()
}

// RedisKeys lists keys matching pattern.
func RedisKeys(pattern string) []string {
	if redisServer == nil {
		return nil
	}
	keys := make([]string, 0)
	for _, key := range redisServer.Keys() {
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	return keys
}
