package config

import "os"

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("DAYCAL_FILE"); v != "" {
		cfg.TasksFile = v
		set("tasks_file")
	}
	if v := os.Getenv("DAYCAL_CREATE_IF_MISSING"); v != "" {
		cfg.CreateIfMissing = boolFromString(v)
		set("create_if_missing")
	}
	if v, ok := os.LookupEnv("DAYCAL_LOG_DIR"); ok {
		// An empty value disables the log file.
		cfg.LogDir = v
		set("log_dir")
	}
	if v := os.Getenv("DAYCAL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("DAYCAL_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("DAYCAL_COLOR"); v != "" {
		cfg.Color = boolFromString(v)
		set("color")
	}
	// https://no-color.org: any non-empty value disables color.
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.Color = false
		set("color")
	}
	if v := os.Getenv("DAYCAL_PLAIN"); v != "" {
		cfg.Plain = boolFromString(v)
		set("plain")
	}
}
