// Package config loads the site configuration that declares the documentation
// theme plugin and its sidebar taxonomy.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// DefaultPlugin is the theme plugin docnav reads navigation from when no
// plugin declares sidebar categories and none is selected explicitly.
const DefaultPlugin = "gatsby-theme-apollo-docs"

// SiteConfig is the top-level site configuration file.
type SiteConfig struct {
	// Base names a shared theme options file, resolved relative to this file.
	Base       string       `yaml:"base,omitempty"`
	PathPrefix string       `yaml:"pathPrefix,omitempty"`
	Plugins    []PluginSpec `yaml:"plugins"`

	path string
	base *PluginOptions
}

// PluginSpec declares one site plugin and its options.
type PluginSpec struct {
	Resolve string         `yaml:"resolve"`
	Options *PluginOptions `yaml:"options,omitempty"`
}

// PluginOptions are the options of the documentation theme plugin: theme
// settings plus the sidebar taxonomy.
type PluginOptions struct {
	nav.ThemeOptions  `yaml:",inline"`
	SidebarCategories Sidebar `yaml:"sidebarCategories,omitempty"`
}

// Path returns the file the configuration was loaded from.
func (s *SiteConfig) Path() string { return s.path }

// Dir returns the directory containing the configuration file.
func (s *SiteConfig) Dir() string { return filepath.Dir(s.path) }

// BasePath returns the resolved base options file, or "" when none is named.
func (s *SiteConfig) BasePath() string {
	if s.Base == "" {
		return ""
	}
	if filepath.IsAbs(s.Base) {
		return s.Base
	}
	return filepath.Join(s.Dir(), s.Base)
}

// Load reads, expands and decodes the configuration at configPath along with
// its base options file, if one is named.
func Load(configPath string) (*SiteConfig, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "resolving config path").Build()
	}

	loadEnvFiles(filepath.Dir(absPath))

	var cfg SiteConfig
	if err := decodeFile(absPath, &cfg); err != nil {
		return nil, err
	}
	cfg.path = absPath

	if basePath := cfg.BasePath(); basePath != "" {
		var base PluginOptions
		if err := decodeFile(basePath, &base); err != nil {
			return nil, err
		}
		cfg.base = &base
		slog.Debug("Loaded base theme options", logfields.Path(basePath))
	}

	if len(cfg.Plugins) == 0 {
		return nil, derrors.ConfigError("configuration declares no plugins").
			WithContext("path", absPath).
			Build()
	}
	return &cfg, nil
}

// decodeFile reads a YAML file with ${VAR} expansion, rejecting unknown keys.
func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return derrors.NotFoundError("configuration file not found").
				WithContext("path", path).
				Build()
		}
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).
			Build()
	}

	dec := yaml.NewDecoder(bytes.NewBufferString(os.ExpandEnv(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return derrors.ConfigError("configuration file is empty").
				WithContext("path", path).
				Build()
		}
		if ce, ok := derrors.AsClassified(err); ok {
			return ce.WithContext("path", path)
		}
		return derrors.WrapError(err, derrors.CategoryConfig, "failed to decode config").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}

// loadEnvFiles loads .env and .env.local next to the configuration. Values
// already present in the process environment are kept.
func loadEnvFiles(dir string) {
	for _, name := range []string{".env", ".env.local"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("Failed to load environment file", logfields.Path(p), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(p))
	}
}

// Plugin returns the plugin navigation is read from. An empty name selects
// the first plugin declaring sidebar categories, then DefaultPlugin.
func (s *SiteConfig) Plugin(name string) (*PluginSpec, error) {
	if name != "" {
		for i := range s.Plugins {
			if s.Plugins[i].Resolve == name {
				return &s.Plugins[i], nil
			}
		}
		return nil, derrors.NotFoundError(fmt.Sprintf("plugin %q is not declared", name)).
			WithContext("path", s.path).
			Build()
	}

	for i := range s.Plugins {
		if opts := s.Plugins[i].Options; opts != nil && len(opts.SidebarCategories) > 0 {
			return &s.Plugins[i], nil
		}
	}
	for i := range s.Plugins {
		if s.Plugins[i].Resolve == DefaultPlugin {
			return &s.Plugins[i], nil
		}
	}
	return nil, derrors.ConfigError("no plugin declares sidebarCategories").
		WithContext("path", s.path).
		Build()
}

// Navigation builds the navigation configuration of the selected plugin. The
// base options file supplies defaults and the plugin options override them.
// Unset root defaults to the configuration directory and unset pathPrefix to
// the top-level value. Categories declared in the base file are merged ahead
// of the plugin's own.
func (s *SiteConfig) Navigation(plugin string, opts ...nav.BuildOption) (*nav.Config, error) {
	spec, err := s.Plugin(plugin)
	if err != nil {
		return nil, err
	}

	var overrides nav.ThemeOptions
	var sidebar Sidebar
	if spec.Options != nil {
		overrides = spec.Options.ThemeOptions
		sidebar = spec.Options.SidebarCategories
	}
	if overrides.Root == nil {
		overrides.Root = nav.Opt(s.Dir())
	}
	if overrides.PathPrefix == nil && s.PathPrefix != "" {
		overrides.PathPrefix = nav.Opt(s.PathPrefix)
	}

	var base nav.ThemeOptions
	if s.base != nil {
		base = s.base.ThemeOptions
	}

	cfg, err := nav.Build(base, sidebar.Decls(), overrides, opts...)
	if err != nil {
		return nil, err
	}
	if s.base == nil || len(s.base.SidebarCategories) == 0 {
		return cfg, nil
	}

	shared, err := nav.Build(base, s.base.SidebarCategories.Decls(), nav.ThemeOptions{}, opts...)
	if err != nil {
		return nil, err
	}
	return nav.Merge(shared, cfg), nil
}
