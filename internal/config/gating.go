package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// GatingConfig tunes the request gating layer. Values come from gating.yml
// when present, otherwise from defaults.
type GatingConfig struct {
	SessionTTL   time.Duration `mapstructure:"sessionTTL"`
	ExemptRoutes []string      `mapstructure:"exemptRoutes"`
}

// DefaultGatingConfig returns the built-in gating settings. The exempt list
// must always contain the subscription renewal routes, otherwise a lapsed
// agency could never renew.
func DefaultGatingConfig() GatingConfig {
	return GatingConfig{
		SessionTTL: 7 * 24 * time.Hour,
		ExemptRoutes: []string{
			"subscription.index",
			"subscription.renew",
			"subscription.store",
			"profile.edit",
			"profile.update",
		},
	}
}

// LoadGating reads gating.yml if available and falls back to defaults.
func LoadGating() GatingConfig {
	v := viper.New()

	v.SetConfigName("gating")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/annonceluzy")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ANNONCELUZY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultGatingConfig()

	if err := v.ReadInConfig(); err != nil {
		return defaults
	}

	var cfg GatingConfig
	if err := v.UnmarshalKey("gating", &cfg); err != nil {
		return defaults
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaults.SessionTTL
	}
	if len(cfg.ExemptRoutes) == 0 {
		cfg.ExemptRoutes = defaults.ExemptRoutes
	} else {
		for _, required := range []string{"subscription.renew"} {
			if !containsRoute(cfg.ExemptRoutes, required) {
				cfg.ExemptRoutes = append(cfg.ExemptRoutes, required)
			}
		}
	}

	return cfg
}

func containsRoute(routes []string, name string) bool {
	for _, route := range routes {
		if strings.TrimSpace(route) == name {
			return true
		}
	}
	return false
}
