package config

import (
	"fmt"
	"strconv"

	"github.com/nibzard/daycal/internal/appdir"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// DefaultLogDir is the run log directory under the user's home.
var DefaultLogDir = appdir.UserLogDir("~")

// Default values.
const (
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultCreateIfMissing = true
	DefaultColor           = true
)

// Config holds the full configuration for daycal.
type Config struct {
	// Task file. A relative path is resolved against WorkDir.
	TasksFile string `toml:"tasks_file"`
	// CreateIfMissing treats a missing task file as empty instead of failing.
	CreateIfMissing bool `toml:"create_if_missing"`

	// Logging. An empty LogDir disables the run log file.
	LogDir    string `toml:"log_dir"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Terminal
	Color bool `toml:"color"`
	Plain bool `toml:"plain"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Entry is one resolved setting.
type Entry struct {
	Name   string
	Value  string
	Source ConfigSource
}

// Entries returns every setting with its value and source, in a stable order.
func (cws *ConfigWithSources) Entries() []Entry {
	entries := make([]Entry, 0, len(configFields()))
	for _, name := range configFields() {
		entries = append(entries, Entry{
			Name:   name,
			Value:  cws.Config.value(name),
			Source: cws.Sources[name],
		})
	}
	return entries
}

func (c *Config) value(name string) string {
	switch name {
	case "tasks_file":
		return c.TasksFile
	case "create_if_missing":
		return strconv.FormatBool(c.CreateIfMissing)
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "color":
		return strconv.FormatBool(c.Color)
	case "plain":
		return strconv.FormatBool(c.Plain)
	default:
		return fmt.Sprintf("<unknown field %s>", name)
	}
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"tasks_file",
		"create_if_missing",
		"log_dir",
		"log_level",
		"log_format",
		"color",
		"plain",
	}
}
