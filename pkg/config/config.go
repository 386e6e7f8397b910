// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	DefaultInclude = "**/*.html"
	DefaultMatcher = "tag"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config controls a correction run. The emoji rules are fixed and not part of it.
type Config struct {
	Root    string   `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	Include string   `json:"include,omitempty" yaml:"include,omitempty" hcl:"include,optional"`
	Ignore  []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`
	Matcher string   `json:"matcher,omitempty" yaml:"matcher,omitempty" hcl:"matcher,optional"`
	DryRun  bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
	Backup  bool     `json:"backup,omitempty" yaml:"backup,omitempty" hcl:"backup,optional"`
	Diff    bool     `json:"diff,omitempty" yaml:"diff,omitempty" hcl:"diff,optional"`
}

// 🏭 Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Root:    ".",
		Include: DefaultInclude,
		Matcher: DefaultMatcher,
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// relative roots are relative to the config file
	if cfg.Root != "" && !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate fills defaults and checks matcher and glob patterns
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Include == "" {
		cfg.Include = DefaultInclude
	}
	if cfg.Matcher == "" {
		cfg.Matcher = DefaultMatcher
	}

	cfg.Root = filepath.Clean(cfg.Root)

	switch cfg.Matcher {
	case "tag", "regex":
	default:
		return errors.Errorf("matcher must be \"tag\" or \"regex\", got %q", cfg.Matcher)
	}

	if !doublestar.ValidatePattern(cfg.Include) {
		return errors.Errorf("invalid include pattern %q", cfg.Include)
	}
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("ignore[%d]: invalid pattern %q", i, pattern)
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	var flags []string
	if cfg.DryRun {
		flags = append(flags, "dry-run")
	}
	if cfg.Backup {
		flags = append(flags, "backup")
	}
	if cfg.Diff {
		flags = append(flags, "diff")
	}
	return fmt.Sprintf("%s/%s (matcher=%s, ignore=%d) %s", cfg.Root, cfg.Include, cfg.Matcher, len(cfg.Ignore), strings.Join(flags, ","))
}
