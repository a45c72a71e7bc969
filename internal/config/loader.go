package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Load 从 CONFIG_DIR（默认 configs）加载配置
func Load() (*Config, error) {
	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = "configs"
	}
	return LoadFrom(dir)
}

// LoadFrom 依次合并 config.yaml、config.<APP_ENV>.yaml 与环境变量，最后校验
func LoadFrom(dir string) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	layers := []struct {
		path     string
		optional bool
	}{
		{filepath.Join(dir, "config.yaml"), false},
		{filepath.Join(dir, "config."+env+".yaml"), true},
	}
	for _, l := range layers {
		if err := mergeFile(v, l.path, l.optional); err != nil {
			return nil, err
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// mergeFile 展开 ${VAR:default} 后合并进 viper
func mergeFile(v *viper.Viper, path string, optional bool) error {
	content, err := os.ReadFile(path)
	switch {
	case err != nil && optional && errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.MergeConfig(strings.NewReader(expandEnv(string(content)))); err != nil {
		return fmt.Errorf("merge config %s: %w", path, err)
	}
	return nil
}

// envPattern 匹配 ${VAR} 与 ${VAR:default}
var envPattern = regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

// expandEnv 替换占位符；变量未设置且无默认值时原样保留
func expandEnv(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		sub := envPattern.FindStringSubmatch(match)
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		if strings.Contains(match, ":") {
			return sub[2]
		}
		return match
	})
}

// Validate 检查会让服务在运行期出错的配置
func (c *Config) Validate() error {
	var errs []error
	if p := c.Server.HTTP.Port; p <= 0 || p > 65535 {
		errs = append(errs, fmt.Errorf("server.http.port %d out of range", p))
	}
	if c.Providers.Timeout <= 0 {
		errs = append(errs, errors.New("providers.timeout must be positive"))
	}
	if c.Upload.MaxSize <= 0 || c.Upload.DocumentMaxSize <= 0 {
		errs = append(errs, errors.New("upload size limits must be positive"))
	}
	if c.Security.RateLimit.Enabled && c.Security.RateLimit.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("security.rate_limit.requests_per_minute must be positive"))
	}
	if r := c.Observability.Tracing.SampleRate; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("observability.tracing.sample_rate %v not in [0,1]", r))
	}
	if name := c.LLM.DefaultProvider; name != "" {
		if _, ok := c.LLM.Providers[name]; !ok {
			errs = append(errs, fmt.Errorf("llm.default_provider %q has no provider block", name))
		}
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	defaults := map[string]any{
		"app.name":    "quickai-api",
		"app.version": "v0.0.0",
		"app.env":     "development",

		"server.http.host":          "0.0.0.0",
		"server.http.port":          3000,
		"server.http.read_timeout":  "30s",
		"server.http.write_timeout": "90s",
		"server.http.idle_timeout":  "120s",

		"database.postgres.enabled":            false,
		"database.postgres.host":               "localhost",
		"database.postgres.port":               5432,
		"database.postgres.user":               "postgres",
		"database.postgres.database":           "quickai",
		"database.postgres.ssl_mode":           "disable",
		"database.postgres.max_open_conns":     20,
		"database.postgres.max_idle_conns":     5,
		"database.postgres.conn_max_lifetime":  "30m",
		"database.postgres.conn_max_idle_time": "5m",

		"cache.redis.enabled":        false,
		"cache.redis.host":           "localhost",
		"cache.redis.port":           6379,
		"cache.redis.db":             0,
		"cache.redis.pool_size":      50,
		"cache.redis.min_idle_conns": 5,
		"cache.redis.dial_timeout":   "5s",
		"cache.redis.read_timeout":   "3s",
		"cache.redis.write_timeout":  "3s",

		"llm.default_provider":             "gemini",
		"llm.providers.gemini.base_url":    "https://generativelanguage.googleapis.com/v1beta/openai/",
		"llm.providers.gemini.model":       "gemini-2.0-flash",
		"llm.providers.gemini.max_tokens":  2000,
		"llm.providers.gemini.temperature": 0.7,

		"providers.timeout":          "30s",
		"providers.image.base_url":   "https://clipdrop-api.co/text-to-image/v1",
		"providers.removal.base_url": "https://api.andorai.tools/v1",
		"providers.review.base_url":  "https://api.apilayer.com/resume/review",

		"upload.temp_dir":          os.TempDir(),
		"upload.max_size":          10 << 20,
		"upload.document_max_size": 5 << 20,

		"messaging.redis_stream.enabled": true,
		"messaging.redis_stream.max_len": 10000,

		"observability.logging.level":       "info",
		"observability.logging.format":      "json",
		"observability.tracing.enabled":     false,
		"observability.tracing.endpoint":    "localhost:4317",
		"observability.tracing.sample_rate": 1.0,
		"observability.metrics.enabled":     true,
		"observability.metrics.path":        "/metrics",

		"security.jwt.issuer":                     "quickai",
		"security.jwt.expiration":                 "24h",
		"security.rate_limit.enabled":             true,
		"security.rate_limit.requests_per_minute": 60,
		"security.cors.allowed_origins":           []string{"*"},
		"security.cors.allowed_methods":           []string{"GET", "POST", "OPTIONS"},
		"security.cors.allowed_headers":           []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}
