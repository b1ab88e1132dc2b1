// Package config handles loading and validation of branchwipe configuration.
//
// Configuration is read from ~/.config/branchwipe/config.toml.
//
// # Configuration Sources (highest priority first)
//
//   - BRANCHWIPE_GIT env var: git executable
//   - BRANCHWIPE_CONFIG env var: alternative config file location
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - git: executable name or path (absolute or ~/...), default "git"
//   - confirm_delete: ask before deleting (default false, deletes fire immediately)
//   - theme: "default", "dracula", "nord" or "none"
//   - [list] format: "table" or "json" for "branchwipe list"
package config
