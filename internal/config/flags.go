package config

import (
	"flag"
	"fmt"
)

// flagFields maps flag names to the config fields they set.
var flagFields = map[string]string{
	"file":              "tasks_file",
	"create-if-missing": "create_if_missing",
	"log-dir":           "log_dir",
	"log-level":         "log_level",
	"log-format":        "log_format",
	"no-color":          "color",
	"plain":             "plain",
}

// parseFlags defines and parses CLI flags on fs. Flags the caller already
// defined on fs (such as --version) are parsed along with them. A single
// positional argument names the task file and wins over --file.
// If sources is non-nil, it tracks the source of each explicitly set value.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("daycal", flag.ContinueOnError)
	}

	var noColor bool
	fs.StringVar(&cfg.TasksFile, "file", cfg.TasksFile, "Path to task file (.json, .yaml or .yml)")
	fs.BoolVar(&cfg.CreateIfMissing, "create-if-missing", cfg.CreateIfMissing, "Treat a missing task file as empty")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory (empty disables the log file)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text, json, logfmt")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cfg.Plain, "plain", cfg.Plain, "Use the line-oriented interface instead of the full-screen one")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if noColor {
		cfg.Color = false
	}

	fs.Visit(func(f *flag.Flag) {
		if sources == nil {
			return
		}
		if field, ok := flagFields[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		cfg.TasksFile = rest[0]
		if sources != nil {
			sources["tasks_file"] = SourceFlag
		}
	default:
		return fmt.Errorf("unexpected arguments: %v", rest[1:])
	}

	return nil
}
