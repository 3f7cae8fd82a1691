package cmd

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/samwightt/gqlvet/pkg/scalars"
	"github.com/samwightt/gqlvet/pkg/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the settings shared by all commands. Values come from flags, then
// GQLVET_ environment variables, then .gqlvet.yaml, then flag defaults.
type Config struct {
	Schema      []string
	Format      string
	LogLevel    string
	Rules       []string
	SkipRules   []string
	Scalars     []string
	Concurrency int
	CacheSize   int
}

// configKeys maps config keys to the flags bound to them.
var configKeys = map[string]string{
	"schema":      "schema",
	"format":      "format",
	"log-level":   "log-level",
	"rules":       "rule",
	"skip-rules":  "skip-rule",
	"scalars":     "scalar",
	"concurrency": "concurrency",
	"cache-size":  "cache-size",
}

func loadConfig(cmd *cobra.Command, configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GQLVET")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, flag := range configKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", flag, err)
			}
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".gqlvet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{
		Schema:      v.GetStringSlice("schema"),
		Format:      v.GetString("format"),
		LogLevel:    v.GetString("log-level"),
		Rules:       v.GetStringSlice("rules"),
		SkipRules:   v.GetStringSlice("skip-rules"),
		Scalars:     v.GetStringSlice("scalars"),
		Concurrency: v.GetInt("concurrency"),
		CacheSize:   v.GetInt("cache-size"),
	}
	if err := checkRuleNames(cfg.Rules); err != nil {
		return nil, err
	}
	if err := checkRuleNames(cfg.SkipRules); err != nil {
		return nil, err
	}
	return cfg, nil
}

// checkRuleNames rejects names that are not rules, suggesting the closest one.
func checkRuleNames(names []string) error {
	known := validation.RuleNames()
	for _, name := range names {
		if slices.Contains(known, name) {
			continue
		}
		if suggestion := findClosest(name, known); suggestion != "" {
			return fmt.Errorf("unknown rule '%s', did you mean '%s'?", name, suggestion)
		}
		return fmt.Errorf("unknown rule '%s'", name)
	}
	return nil
}

// selectRules keeps the rules named in only (all of them when only is empty) minus skip.
func selectRules[C any](rules []validation.Rule[C], only, skip []string) []validation.Rule[C] {
	var selected []validation.Rule[C]
	for _, r := range rules {
		if len(only) > 0 && !slices.Contains(only, r.Name) {
			continue
		}
		if slices.Contains(skip, r.Name) {
			continue
		}
		selected = append(selected, r)
	}
	return selected
}

func (c *Config) queryRules() ([]validation.QueryRule, error) {
	rules := selectRules(validation.DefaultQueryRules(), c.Rules, c.SkipRules)
	if len(rules) == 0 {
		return nil, errors.New("no query rules left to run, check --rule and --skip-rule")
	}
	return rules, nil
}

func (c *Config) sdlRules() ([]validation.SDLRule, error) {
	rules := selectRules(validation.DefaultSDLRules(), c.Rules, c.SkipRules)
	if len(rules) == 0 {
		return nil, errors.New("no SDL rules left to run, check --rule and --skip-rule")
	}
	return rules, nil
}

// scalarRegistry returns the built-in scalars plus the configured custom scalars,
// which accept string literals.
func (c *Config) scalarRegistry() *scalars.Registry {
	r := scalars.Default()
	for _, name := range c.Scalars {
		r.RegisterString(name)
	}
	return r
}

// newLogger writes human-readable logs to w. An empty level or "off" disables logging.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	if level == "" || strings.EqualFold(level, "off") {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
