// Package config layers bytes-radar's configuration: code defaults, an
// optional YAML file, environment variables, and CLI flags, in that
// increasing-precedence order.
//
// The YAML decode step and its ${VAR}/${VAR:-default} expansion are
// grounded on syl-wordcount/internal/config/config.go's Load/expandEnv.
// The env/flag layering on top of the file is grounded on viper's
// AutomaticEnv/BindPFlag pattern, the way tara-vision-taracode wires its
// cmd/ package.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FilterConfig is the YAML-decodable subset of AnalyzeOptions that makes
// sense to set once in a project-level config file.
type FilterConfig struct {
	IgnoreHidden        bool     `yaml:"ignore_hidden"`
	IgnoreGitignoreLike bool     `yaml:"ignore_gitignore"`
	MaxFileSize         int64    `yaml:"max_file_size"`
	MinFileSize         int64    `yaml:"min_file_size"`
	IncludeTests        bool     `yaml:"include_tests"`
	IncludeDocs         bool     `yaml:"include_docs"`
	IncludeHidden       bool     `yaml:"include_hidden"`
	CountGenerated      bool     `yaml:"count_generated"`
	IncludePattern       string   `yaml:"include_pattern"`
	ExcludePattern       string   `yaml:"exclude_pattern"`
	AllowLanguage        []string `yaml:"allow_language"`
	DenyLanguage         []string `yaml:"deny_language"`
	AggressiveFilter      bool     `yaml:"aggressive_filter"`
	MaxLineLength         int64    `yaml:"max_line_length"`
	CustomIgnore          []string `yaml:"ignore_patterns"`
	CountUnknownAsPlainText bool   `yaml:"count_unknown_as_plain_text"`
}

// HTTPConfig is the YAML-decodable subset of AnalyzeOptions covering
// outbound transport knobs.
type HTTPConfig struct {
	TimeoutSeconds      int64  `yaml:"timeout_seconds"`
	MaxRedirects        int    `yaml:"max_redirects"`
	UserAgent           string `yaml:"user_agent"`
	AcceptInvalidCerts  bool   `yaml:"accept_invalid_certs"`
	UseCompression      bool   `yaml:"use_compression"`
	Proxy               string `yaml:"proxy"`
	RetryCount          int    `yaml:"retry_count"`
	Token               string `yaml:"token"`
}

// Config is the full decoded configuration file shape.
type Config struct {
	Filter      FilterConfig `yaml:"filter"`
	HTTP        HTTPConfig   `yaml:"http"`
	Detailed    bool         `yaml:"detailed"`
	Parallel    bool         `yaml:"experimental_parallel"`
	WorkerCount int          `yaml:"worker_count"`
}

// Defaults returns the zero-value-safe defaults for a fresh Config.
func Defaults() Config {
	return Config{
		Filter: FilterConfig{
			IgnoreGitignoreLike: true,
		},
		HTTP: HTTPConfig{
			TimeoutSeconds: 300,
			MaxRedirects:   5,
			UserAgent:      "bytes-radar/1.0.0",
			UseCompression: true,
			RetryCount:     3,
		},
	}
}

// Load reads, env-expands, and decodes a YAML config file, then layers
// environment variables and flags over it via viper. flags may be nil when
// no CLI flag set is being bound (e.g. library callers).
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := Defaults()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		expanded, err := expandEnv(string(raw))
		if err != nil {
			return cfg, err
		}
		dec := yaml.NewDecoder(strings.NewReader(expanded))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("BRADAR")
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return cfg, fmt.Errorf("bind flags: %w", err)
		}
	}

	if v.IsSet("timeout") {
		cfg.HTTP.TimeoutSeconds = v.GetInt64("timeout")
	}
	if v.IsSet("token") {
		cfg.HTTP.Token = v.GetString("token")
	} else if token := os.Getenv("BRADAR_TOKEN"); token != "" {
		cfg.HTTP.Token = token
	}
	if v.IsSet("aggressive") {
		cfg.Filter.AggressiveFilter = v.GetBool("aggressive")
	}
	if v.IsSet("detailed") {
		cfg.Detailed = v.GetBool("detailed")
	}
	if v.IsSet("parallel") {
		cfg.Parallel = v.GetBool("parallel")
	}

	return cfg, nil
}

// Timeout converts the configured seconds into a time.Duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

var envExpr = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// expandEnv substitutes ${VAR} and ${VAR:-default} references, the same
// approach syl-wordcount's config loader uses. A reference to an unset
// variable with no default is an error, so a typo in a config file fails
// loudly instead of silently becoming an empty string.
func expandEnv(src string) (string, error) {
	var out strings.Builder
	last := 0
	for _, idx := range envExpr.FindAllStringSubmatchIndex(src, -1) {
		out.WriteString(src[last:idx[0]])
		name := src[idx[2]:idx[3]]
		hasDefault := idx[4] >= 0 && idx[5] >= 0
		defVal := ""
		if hasDefault && idx[6] >= 0 && idx[7] >= 0 {
			defVal = src[idx[6]:idx[7]]
		}
		if v, ok := os.LookupEnv(name); ok {
			out.WriteString(v)
		} else if hasDefault {
			out.WriteString(defVal)
		} else {
			return "", fmt.Errorf("config references unset environment variable %q", name)
		}
		last = idx[1]
	}
	out.WriteString(src[last:])
	return out.String(), nil
}
