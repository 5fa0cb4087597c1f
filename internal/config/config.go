// Package config loads javagen settings from defaults, an optional config
// file, and JAVAGEN_* environment variables.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. JAVAGEN_COLUMN_LIMIT.
const EnvPrefix = "JAVAGEN"

// Config holds render and output settings shared by every javagen command.
type Config struct {
	Indent              string    `mapstructure:"indent"`
	ColumnLimit         int       `mapstructure:"column_limit"`
	SkipJavaLangImports bool      `mapstructure:"skip_java_lang_imports"`
	AlwaysQualify       []string  `mapstructure:"always_qualify"`
	Output              string    `mapstructure:"output"`
	JavaPackage         string    `mapstructure:"java_package"`
	Log                 LogConfig `mapstructure:"log"`
}

type LogConfig struct {
	JSON    bool `mapstructure:"json"`
	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("indent", "  ")
	v.SetDefault("column_limit", 100)
	v.SetDefault("skip_java_lang_imports", false)
	v.SetDefault("always_qualify", []string{})
	v.SetDefault("output", "-")
	v.SetDefault("java_package", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbose", false)
}

// NewViper returns a viper instance with defaults and environment binding in
// place. A non-empty path is read as the config file; its format follows the
// extension.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	return v, nil
}

// Load builds a Config from path (optional) and the environment.
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadWithViper unmarshals and validates the settings held by v. Callers bind
// command-line flags to v before calling it.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	// Lists from the environment arrive comma-separated.
	var names []string
	for _, n := range cfg.AlwaysQualify {
		names = append(names, splitList(n)...)
	}
	cfg.AlwaysQualify = names
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings the renderer would otherwise reject late.
func (c *Config) Validate() error {
	if c.ColumnLimit < 0 {
		return errors.Newf("column_limit must not be negative, got %d", c.ColumnLimit)
	}
	if c.Indent == "" {
		return errors.New("indent must not be empty")
	}
	if strings.Trim(c.Indent, " \t") != "" {
		return errors.Newf("indent must be spaces or tabs, got %q", c.Indent)
	}
	if c.Output == "" {
		return errors.New("output must not be empty; use - for stdout")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
