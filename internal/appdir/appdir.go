// Package appdir provides constants and utilities for the .daycal directory structure.
package appdir

import "path/filepath"

const (
	// Dir is the name of the daycal state directory.
	Dir = ".daycal"

	// DefaultTasksFile is the default task file name (inside .daycal).
	DefaultTasksFile = "tasks.json"

	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "daycal.toml"

	// LogsDir is the name of the log directory inside the user's .daycal directory.
	LogsDir = "logs"
)

// TasksPath returns the full path to the task file within a work directory.
func TasksPath(workDir string) string {
	return joinPath(workDir, DefaultTasksFile)
}

// ConfigPath returns the full path to the config file within a work directory.
func ConfigPath(workDir string) string {
	return joinPath(workDir, DefaultConfigFile)
}

// DirPath returns the full path to the .daycal directory within a work directory.
func DirPath(workDir string) string {
	if workDir == "." || workDir == "" {
		return Dir
	}
	return filepath.Join(workDir, Dir)
}

// UserLogDir returns the default log directory under home.
func UserLogDir(home string) string {
	return filepath.Join(home, Dir, LogsDir)
}

func joinPath(workDir, file string) string {
	return filepath.Join(DirPath(workDir), file)
}
