package config

import "fmt"

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validVisibilities = map[string]bool{
	"public": true, "unlisted": true, "private": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.Vimeo.AccessToken == "" {
		errs = append(errs, "vimeo.access_token: required")
	}
	if c.Vimeo.PageSize < 1 || c.Vimeo.PageSize > 100 {
		errs = append(errs, fmt.Sprintf("vimeo.page_size: must be between 1 and 100, got %d", c.Vimeo.PageSize))
	}
	if c.Vimeo.RequestSpacingMS < 0 {
		errs = append(errs, fmt.Sprintf("vimeo.request_spacing_ms: must not be negative, got %d", c.Vimeo.RequestSpacingMS))
	}
	if c.Vimeo.MaxRetries < 1 {
		errs = append(errs, fmt.Sprintf("vimeo.max_retries: must be at least 1, got %d", c.Vimeo.MaxRetries))
	}

	if c.YouTube.APIKey == "" {
		errs = append(errs, "youtube.api_key: required")
	}

	if c.Import.PollIntervalSecs < 1 {
		errs = append(errs, fmt.Sprintf("import.poll_interval_secs: must be at least 1, got %d", c.Import.PollIntervalSecs))
	}
	if !validVisibilities[c.Import.Visibility] {
		errs = append(errs, fmt.Sprintf("import.visibility: must be one of public, unlisted, private; got %q", c.Import.Visibility))
	}

	return errs
}
