// Package config loads streamcard's configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/streamcard/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. STREAMCARD_* environment variables override whatever the file said
//
// LoadEnvFile reads a .env file into the environment first; values already
// present in the environment win over the file.
//
// # Default Values
//
//   - Config file: ~/.config/streamcard/config.toml
//   - Storage: file, under ~/.local/share/streamcard
//   - Exports: ~/.local/share/streamcard/exports
//   - Log file: ~/.local/share/streamcard/streamcard.log
//   - Save debounce: 500ms
//   - Redis: 127.0.0.1:6379, db 0, key prefix "streamcard:"
//
// # TOML Format
//
//	storage = "file"          # or "redis"
//	data_dir = "~/.local/share/streamcard"
//	redis_addr = "127.0.0.1:6379"
//	redis_username = ""
//	redis_password = ""
//	redis_db = 0
//	export_dir = "~/Pictures/streamcard"
//	log_file = "~/.local/share/streamcard/streamcard.log"
//	log_level = "info"
//	save_debounce_ms = 500
//
//	[spaces]
//	endpoint = "https://nyc3.digitaloceanspaces.com"
//	region = "us-east-1"
//	bucket = "my-cards"
//	cdn_url = "https://my-cards.nyc3.cdn.digitaloceanspaces.com"
//
// Every field is optional. Tilde expansion is performed on paths.
//
// # Secrets
//
// Spaces credentials are read only from the environment
// (STREAMCARD_SPACES_ACCESS_KEY, STREAMCARD_SPACES_SECRET_KEY), never from the
// TOML file. Uploads are enabled once endpoint, bucket and both keys are set.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors and unknown storage backends
//   - Non-numeric values in numeric environment overrides
package config
