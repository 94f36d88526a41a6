package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the parsed rules file.
type Config struct {
	// ReloadOnTruncate chooses what a tailed file shrinking below its read
	// offset means: reread from the start (true) or stop that source.
	ReloadOnTruncate bool   `toml:"reload_on_truncate"`
	Rules            []Rule `toml:"rules"`
}

// Rule binds file-name patterns to an ordered extractor list plus named
// filters and display columns. Rules are read-only input; the core never
// mutates them.
type Rule struct {
	Name         string   `toml:"name"`
	FilePatterns []string `toml:"file_patterns"`
	Extractors   []string `toml:"extractors"`
	// Merge is "first" (default) or "last": whether the earliest or the
	// latest extractor to produce a key wins.
	Merge   string   `toml:"merge"`
	Filters []Filter `toml:"filters"`
	Columns []Column `toml:"columns"`
}

// Filter is a named, pre-written expression a rule ships for one-keystroke
// activation. Highlight and Gutter are display hints only.
type Filter struct {
	Name       string `toml:"name"`
	Expression string `toml:"expression"`
	Highlight  string `toml:"highlight"`
	Gutter     string `toml:"gutter"`
}

// Column is a display hint; irrelevant to extraction or filtering.
type Column struct {
	Name  string `toml:"name"`
	Width int    `toml:"width"`
	Align string `toml:"align"`
}

const defaultConfigPath = "~/.config/tailspect/rules.toml"

// Load locates and parses the rules file. A missing file is not an error:
// the built-in default rule (logfmt plus timestamp detection) applies, so the
// tool works without any configuration.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return Config{}, fmt.Errorf("open rules: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read rules: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse rules: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	if len(cfg.Rules) == 0 {
		cfg.Rules = defaultConfig().Rules
	}
	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		ReloadOnTruncate: true,
		Rules: []Rule{{
			Name:         "default",
			FilePatterns: []string{"*"},
			Extractors:   []string{"logfmt", "autodatetime"},
		}},
	}
}

// validate checks everything TOML cannot: merge policy values, glob pattern
// syntax, and that every rule has a name. Extractor specs and filter
// expressions are compiled by the caller before ingestion starts, so their
// errors also surface before any line is processed.
func (c Config) validate() error {
	for i, rule := range c.Rules {
		if strings.TrimSpace(rule.Name) == "" {
			return fmt.Errorf("rule %d: missing name", i)
		}
		switch rule.Merge {
		case "", "first", "last":
		default:
			return fmt.Errorf("rule %q: merge must be \"first\" or \"last\", got %q", rule.Name, rule.Merge)
		}
		for _, pattern := range rule.FilePatterns {
			if _, err := filepath.Match(pattern, "x"); err != nil {
				return fmt.Errorf("rule %q: bad file pattern %q: %w", rule.Name, pattern, err)
			}
		}
		for _, f := range rule.Filters {
			if strings.TrimSpace(f.Expression) == "" {
				return fmt.Errorf("rule %q: filter %q has no expression", rule.Name, f.Name)
			}
		}
	}
	return nil
}

// RuleFor returns the first rule whose file pattern matches path, falling
// back to the last rule. Patterns match against the base name, or the whole
// path when they contain a separator.
func (c Config) RuleFor(path string) Rule {
	base := filepath.Base(path)
	for _, rule := range c.Rules {
		for _, pattern := range rule.FilePatterns {
			target := base
			if strings.ContainsRune(pattern, filepath.Separator) {
				target = path
			}
			if ok, _ := filepath.Match(pattern, target); ok {
				return rule
			}
		}
	}
	return c.Rules[len(c.Rules)-1]
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
