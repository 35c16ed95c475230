package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DashboardKey = "dashboard:snapshot"
)

var client *redis.Client

// Init connects to Redis. On failure the client stays nil and every cache
// call degrades to a miss; the app runs fine without Redis.
func Init(addr, password string) error {
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client, nil when the cache is down.
func GetClient() *redis.Client {
	return client
}

// Auth entries are keyed by email so a password change can invalidate them;
// the stored value is a hash of the password, never the password itself.

func authKey(email string) string {
	h := sha256.Sum256([]byte(email))
	return "auth:" + hex.EncodeToString(h[:])[:32]
}

func passwordDigest(password string) string {
	h := sha256.Sum256([]byte(password))
	return hex.EncodeToString(h[:])
}

// GetCachedAuth reports whether this email/password pair was recently verified.
func GetCachedAuth(ctx context.Context, email, password string) bool {
	if client == nil {
		return false
	}
	stored, err := client.Get(ctx, authKey(email)).Result()
	if err != nil {
		return false
	}
	return stored == passwordDigest(password)
}

// CacheAuth caches verified credentials for 15 minutes so repeat logins skip
// the bcrypt compare.
func CacheAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	client.Set(ctx, authKey(email), passwordDigest(password), 15*time.Minute)
}

// InvalidateAuth removes cached auth (password change, deactivation, delete)
func InvalidateAuth(ctx context.Context, email string) {
	if client == nil {
		return
	}
	client.Del(ctx, authKey(email))
}

// GetCachedDashboard returns the cached dashboard snapshot JSON if present.
func GetCachedDashboard(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, DashboardKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheDashboard caches the dashboard snapshot for 5 minutes.
func CacheDashboard(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, DashboardKey, data, 5*time.Minute)
}
