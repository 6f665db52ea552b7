// Package file provides file-based configuration for sinaliza.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage (~/.sinaliza/config.toml)
//   - EnvOverlay: environment and .env overrides layered over a ConfigStore
package file
