package redis

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// Init connects to Redis when REDIS_ADDR is set. Redis only backs the logout
// token blacklist, so a missing or unreachable instance degrades that feature
// instead of failing startup.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, token blacklist disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	if _, err := client.Ping(Ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis at %s: %v (token blacklist disabled)", addr, err)
		return
	}

	Client = client
	log.Println("Connected to Redis")
}

// BlacklistToken marks a JWT as logged out until it would have expired anyway.
func BlacklistToken(token string, ttl time.Duration) {
	if Client == nil {
		return
	}
	if err := Client.Set(Ctx, "blacklist:"+token, "1", ttl).Err(); err != nil {
		log.Printf("Failed to blacklist token: %v", err)
	}
}

// IsBlacklisted reports whether a token was logged out. Without Redis the
// answer is always false, matching plain stateless JWT behavior.
func IsBlacklisted(token string) bool {
	if Client == nil {
		return false
	}
	n, err := Client.Exists(Ctx, "blacklist:"+token).Result()
	if err != nil {
		return false
	}
	return n > 0
}
