// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as
// the file format.
//
// Configuration is loaded from ~/.config/ds/config.toml (or XDG equivalent on
// Linux, ~/Library/Application Support/ds/config.toml on macOS,
// %APPDATA%\ds\config.toml on Windows). All settings are optional; command
// line flags override anything set in the file.
package config
