package ratelimit

import (
	"context"
	"fmt"
	"strings"

	"github.com/LangoJordan/annonceluzy/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyLoginAttempt = "auth:login:%s"

const (
	loginRate  = 0.5 // one attempt every 2s sustained
	loginBurst = 10
)

// LoginLimiter throttles credential attempts per client address. When redis
// is not configured the limiter is disabled and every attempt passes.
type LoginLimiter struct {
	enabled bool
	bucket  *TokenBucket
}

func NewLoginLimiter(cfg config.Config) *LoginLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return &LoginLimiter{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
	})

	return &LoginLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
	}
}

func (l *LoginLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Allow reports whether another login attempt from addr may proceed.
func (l *LoginLimiter) Allow(ctx context.Context, addr string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyLoginAttempt, strings.TrimSpace(addr)), loginRate, loginBurst)
}
