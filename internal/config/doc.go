// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.daycal/daycal.toml or OS-specific config directory)
// 3. Project config file (daycal.toml, .daycal.toml or .daycal/daycal.toml)
// 4. Environment variables (DAYCAL_*, NO_COLOR)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.daycal/daycal.toml (preferred)
// - Windows: %APPDATA%\daycal\daycal.toml
// - macOS: ~/Library/Application Support/daycal/daycal.toml
// - Linux/BSD: $XDG_CONFIG_HOME/daycal/daycal.toml or ~/.config/daycal/daycal.toml
//
// Project-level config locations (overrides user config):
// - ./daycal.toml (preferred)
// - ./.daycal.toml
// - ./.daycal/daycal.toml
package config
