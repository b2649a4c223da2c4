// Package config loads jio settings from defaults, a config file, the
// environment and command line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/siyuan-infoblox/js-imports-order/pkg/errors"
	"github.com/siyuan-infoblox/js-imports-order/pkg/order"
	"github.com/siyuan-infoblox/js-imports-order/pkg/report"
	"github.com/siyuan-infoblox/js-imports-order/pkg/utils"
)

// EnvPrefix is the prefix of environment variables read into the config.
// JIO_ALLOW_BLANK_LINES maps to allowBlankLines.
const EnvPrefix = "JIO_"

// Config holds all settings of a run.
type Config struct {
	AllowBlankLines bool     `koanf:"allowBlankLines"`
	Alphabetize     string   `koanf:"alphabetize"`
	Fix             bool     `koanf:"fix"`
	Format          string   `koanf:"format"`
	Extensions      []string `koanf:"extensions"`
	Verbose         bool     `koanf:"verbose"`
	Watch           bool     `koanf:"watch"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`

	alphabetize order.Alphabetize
	format      report.Format
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"allowBlankLines": false,
		"alphabetize":     order.CaseSensitive.String(),
		"fix":             false,
		"format":          string(report.FormatText),
		"extensions":      utils.DefaultExtensions,
		"verbose":         false,
		"watch":           false,
	}
}

// flags that never map to a config key
var skipFlags = map[string]bool{
	"config":  true,
	"version": true,
	"help":    true,
}

// Load builds the configuration. Precedence, highest first: changed flags,
// environment, config file, defaults. When cfgFile is empty a config file is
// searched for upward from target.
func Load(cfgFile, target string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToLoadDefaults, err)
	}

	if cfgFile == "" && target != "" {
		cfgFile = utils.FindConfigFile(target)
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf(errors.ErrMsgFailedToReadConfig+": %w", cfgFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToLoadEnv, err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || skipFlags[f.Name] {
				return "", nil
			}
			return camelCase(f.Name, "-"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToLoadFlags, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToDecodeConfig, err)
	}
	cfg.File = cfgFile
	cfg.Extensions = normalizeExtensions(cfg.Extensions)

	var err error
	if cfg.alphabetize, err = order.ParseAlphabetize(cfg.Alphabetize); err != nil {
		return nil, err
	}
	if cfg.format, err = report.ParseFormat(cfg.Format); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Options returns the scanner options selected by the configuration.
func (c *Config) Options() order.Options {
	return order.Options{
		AllowBlankLines: c.AllowBlankLines,
		Alphabetize:     c.alphabetize,
	}
}

// OutputFormat returns the validated report format.
func (c *Config) OutputFormat() report.Format {
	return c.format
}

// envKey turns JIO_ALLOW_BLANK_LINES into allowBlankLines.
func envKey(s string) string {
	return camelCase(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_")
}

func camelCase(s, sep string) string {
	parts := strings.Split(s, sep)
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// normalizeExtensions accepts "ts,tsx" style entries and adds missing dots.
func normalizeExtensions(in []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, entry := range in {
		for _, ext := range strings.Split(entry, ",") {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			if !seen[ext] {
				seen[ext] = true
				out = append(out, ext)
			}
		}
	}
	if len(out) == 0 {
		return append([]string(nil), utils.DefaultExtensions...)
	}
	return out
}
