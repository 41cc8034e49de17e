package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/oGsLP/lyrics-download-and-translate/logcolors"
)

// Defaults applied when no config file is found.
const (
	DefaultTimeoutSeconds    = 30
	DefaultMaxRetries        = 3
	DefaultRetryDelaySeconds = 2
)

// Config holds everything the tool needs for one run. It is loaded once at
// process start and passed by argument; there is no global instance.
type Config struct {
	Proxy       ProxyConfig       `json:"proxy"`
	Translation TranslationConfig `json:"translation"`
	Settings    Settings          `json:"settings"`
}

// ProxyConfig selects an outbound proxy. When disabled or empty, the
// HTTP_PROXY/HTTPS_PROXY environment variables are honored as a fallback.
type ProxyConfig struct {
	Enabled bool   `json:"enabled"`
	HTTP    string `json:"http"`
	HTTPS   string `json:"https"`
}

// TranslationConfig carries per-vendor API credentials. Vendors with empty
// credentials are skipped by the translation chain with an auth failure.
type TranslationConfig struct {
	Baidu  BaiduCredentials  `json:"baidu"`
	Youdao YoudaoCredentials `json:"youdao"`
}

type BaiduCredentials struct {
	AppID     string `json:"appid"`
	SecretKey string `json:"secret_key"`
}

type YoudaoCredentials struct {
	AppKey    string `json:"appkey"`
	SecretKey string `json:"secret_key"`
}

// Settings tune the network access layer.
type Settings struct {
	TimeoutSeconds    int `json:"timeout"`
	MaxRetries        int `json:"max_retries"`
	RetryDelaySeconds int `json:"retry_delay"`
}

// Env holds environment fallbacks read through envconfig.
type Env struct {
	HTTPProxy  string `envconfig:"HTTP_PROXY"`
	HTTPSProxy string `envconfig:"HTTPS_PROXY"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
}

// Default returns the configuration used when no config file exists:
// no proxy, Google-only translation, 30s timeout, 3 retries.
func Default() Config {
	return Config{
		Settings: Settings{
			TimeoutSeconds:    DefaultTimeoutSeconds,
			MaxRetries:        DefaultMaxRetries,
			RetryDelaySeconds: DefaultRetryDelaySeconds,
		},
	}
}

// Load reads the first config file found on the search path. An explicit
// path (from --config) is tried first, then the executable's directory, the
// working directory, and ~/.lyrics-downloader/config.json. A missing file
// yields Default(); a malformed file is a fatal error reported before any
// network activity.
func Load(explicitPath string) (Config, error) {
	for _, path := range searchPaths(explicitPath) {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}

		cfg := Default()
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: malformed %s: %w", path, err)
		}
		cfg.applyDefaults()
		log.Infof("%s Loaded config from %s", logcolors.LogConfig, path)
		return cfg, nil
	}

	log.Debugf("%s No config file found, using defaults", logcolors.LogConfig)
	return Default(), nil
}

// LoadEnv reads the environment fallbacks.
func LoadEnv() Env {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		log.Warnf("%s Unable to read environment: %v", logcolors.LogConfig, err)
	}
	return env
}

func searchPaths(explicitPath string) []string {
	paths := []string{explicitPath}

	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "config.json"))
	}
	paths = append(paths, "config.json")
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".lyrics-downloader", "config.json"))
	}

	return paths
}

func (c *Config) applyDefaults() {
	if c.Settings.TimeoutSeconds <= 0 {
		c.Settings.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Settings.MaxRetries <= 0 {
		c.Settings.MaxRetries = DefaultMaxRetries
	}
	if c.Settings.RetryDelaySeconds <= 0 {
		c.Settings.RetryDelaySeconds = DefaultRetryDelaySeconds
	}
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Settings.TimeoutSeconds) * time.Second
}

// RetryDelay returns the initial backoff delay as a duration.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.Settings.RetryDelaySeconds) * time.Second
}
