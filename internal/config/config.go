// Package config resolves promtui's runtime settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/promtui/internal/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every setting name, so "timeout" is read from
// PROMTUI_TIMEOUT.
const EnvPrefix = "PROMTUI"

const (
	keyTimeout   = "timeout"
	keyUserAgent = "user_agent"

	// DefaultTimeout bounds the single metrics request.
	DefaultTimeout = 10 * time.Second
)

// Config holds settings that shape the fetch. There is no config file.
type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// DefaultUserAgent returns the User-Agent sent when none is configured.
func DefaultUserAgent(version string) string {
	if version == "" {
		version = "dev"
	}
	return "promtui/" + version
}

// Load reads PROMTUI_* variables from the environment.
func Load(version string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyTimeout, DefaultTimeout.String())
	v.SetDefault(keyUserAgent, DefaultUserAgent(version))

	return parseConfig(v)
}

func parseConfig(v *viper.Viper) (*Config, error) {
	raw := strings.TrimSpace(v.GetString(keyTimeout))
	timeout, err := time.ParseDuration(raw)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("%s_TIMEOUT '%s' isn't a valid duration", EnvPrefix, raw),
			"Use a Go duration like 5s, 500ms or 1m.")
	}
	if timeout <= 0 {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("%s_TIMEOUT must be positive, got %s", EnvPrefix, raw),
			"Use a Go duration like 5s, 500ms or 1m.")
	}

	ua := strings.TrimSpace(v.GetString(keyUserAgent))
	if ua == "" {
		ua = DefaultUserAgent("")
	}

	return &Config{
		Timeout:   timeout,
		UserAgent: ua,
	}, nil
}
