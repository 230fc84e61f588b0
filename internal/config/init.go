package config

import (
	"os"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Example returns the configuration written by Init.
func Example() *SiteConfig {
	return &SiteConfig{
		PathPrefix: "/",
		Plugins: []PluginSpec{{
			Resolve: DefaultPlugin,
			Options: &PluginOptions{
				ThemeOptions: nav.ThemeOptions{
					Subtitle:    nav.Opt("Project Documentation"),
					Description: nav.Opt("How to use the project"),
					GithubRepo:  nav.Opt("example/project"),
				},
				SidebarCategories: Sidebar{
					{Label: nav.Uncategorized, Refs: []string{"index", "release-notes"}},
					{Label: nav.Named("Development"), Refs: []string{"quickstart-index", "quickstart-build"}},
					{Label: nav.Named("Key Concepts"), Refs: []string{"key-concepts", "key-concepts-ledger"}},
				},
			},
		}},
	}
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return derrors.NewError(derrors.CategoryConfig, "configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "failed to marshal example config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
