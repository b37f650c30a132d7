// Package config handles loading and parsing butler configuration files.
//
// # Overview
//
// This package reads butler's TOML configuration to discover the assistant
// gateway's API endpoint and a few client-side tuning knobs. The gateway
// itself carries all Google credentials; nothing sensitive lives here.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/butler/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/butler/config.toml
//   - API endpoint: 127.0.0.1:8000
//   - Auth status poll interval: 30 seconds
//   - Calendar agenda window: 7 days
//
// # TOML Format
//
// Example butler config.toml:
//
//	api_bind = "127.0.0.1:8000"
//	poll_seconds = 30
//	agenda_days = 7
//
// All fields are optional. Tilde expansion is performed automatically for
// the config file path.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors (except
// os.ErrNotExist, which triggers defaults), and TOML parsing errors. Missing
// config files are NOT an error: defaults are used instead, so butler works
// out-of-the-box against a locally running gateway.
package config
