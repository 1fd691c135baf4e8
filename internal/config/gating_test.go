package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultGatingConfig(t *testing.T) {
	cfg := DefaultGatingConfig()

	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)

	for _, route := range []string{
		"subscription.index",
		"subscription.renew",
		"subscription.store",
		"profile.edit",
		"profile.update",
	} {
		assert.True(t, containsRoute(cfg.ExemptRoutes, route), "default exempt list must contain %s", route)
	}
}

func TestContainsRouteTrimsWhitespace(t *testing.T) {
	routes := []string{" subscription.renew ", "profile.edit"}

	assert.True(t, containsRoute(routes, "subscription.renew"))
	assert.False(t, containsRoute(routes, "listing.index"))
}
