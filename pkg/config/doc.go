// Package config assembles run options from layered sources: embedded
// defaults, the user config file, an explicit --config file, APISHAPE_*
// environment variables and command-line flags, later layers winning.
// Validate turns the raw values into typed run options or a configuration
// error.
package config
