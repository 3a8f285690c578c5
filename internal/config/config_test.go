package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// isolate points HOME and the working directory at fresh temp dirs and
// clears every variable Load reads. It returns the working directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, name := range []string{
		"DAYCAL_FILE", "DAYCAL_CREATE_IF_MISSING", "DAYCAL_LOG_DIR", "DAYCAL_LOG_LEVEL",
		"DAYCAL_LOG_FORMAT", "DAYCAL_COLOR", "DAYCAL_PLAIN", "NO_COLOR",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	chdir(t, work)
	// Resolve symlinks such as /tmp -> /private/tmp on macOS.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	return wd
}

func loadConfig(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.TasksFile != filepath.Join(".daycal", "tasks.json") {
		t.Errorf("TasksFile: got %q", cfg.TasksFile)
	}
	if cfg.CreateIfMissing != DefaultCreateIfMissing {
		t.Errorf("CreateIfMissing: got %v, want %v", cfg.CreateIfMissing, DefaultCreateIfMissing)
	}
	if cfg.LogDir != DefaultLogDir {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, DefaultLogDir)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("logging: got %q/%q, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	if !cfg.Color || cfg.Plain {
		t.Errorf("terminal: got color=%v plain=%v", cfg.Color, cfg.Plain)
	}
}

func TestLoadDefaults(t *testing.T) {
	work := isolate(t)
	home := os.Getenv("HOME")

	cfg, err := loadConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(work, ".daycal", "tasks.json"); cfg.TasksFile != want {
		t.Errorf("TasksFile: got %q, want %q", cfg.TasksFile, want)
	}
	if want := filepath.Join(home, ".daycal", "logs"); cfg.LogDir != want {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, want)
	}
	if cfg.WorkDir != work {
		t.Errorf("WorkDir: got %q, want %q", cfg.WorkDir, work)
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("DAYCAL_FILE", "custom.yaml")
	t.Setenv("DAYCAL_CREATE_IF_MISSING", "no")
	t.Setenv("DAYCAL_LOG_LEVEL", "debug")
	t.Setenv("DAYCAL_LOG_FORMAT", "json")
	t.Setenv("DAYCAL_PLAIN", "yes")

	cfg := &Config{}
	setDefaults(cfg)
	loadFromEnv(cfg, nil)

	if cfg.TasksFile != "custom.yaml" {
		t.Errorf("TasksFile: got %q, want custom.yaml", cfg.TasksFile)
	}
	if cfg.CreateIfMissing {
		t.Error("CreateIfMissing: got true, want false")
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("logging: got %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if !cfg.Plain {
		t.Error("Plain: got false, want true")
	}
}

func TestColorFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		color   string
		noColor string
		want    bool
	}{
		{"unset", "", "", true},
		{"disabled", "off", "", false},
		{"no color", "", "1", false},
		{"no color wins", "true", "1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if tt.color != "" {
				t.Setenv("DAYCAL_COLOR", tt.color)
			}
			if tt.noColor != "" {
				t.Setenv("NO_COLOR", tt.noColor)
			}
			cfg := &Config{}
			setDefaults(cfg)
			loadFromEnv(cfg, nil)
			if cfg.Color != tt.want {
				t.Errorf("Color: got %v, want %v", cfg.Color, tt.want)
			}
		})
	}
}

func TestEmptyLogDirEnvDisablesLogFile(t *testing.T) {
	isolate(t)
	t.Setenv("DAYCAL_LOG_DIR", "")

	cfg, err := loadConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir: got %q, want empty", cfg.LogDir)
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "daycal.toml")
	writeFile(t, configFile, `tasks_file = "custom.json"
create_if_missing = false
log_level = "warn"
`)

	cfg := &Config{}
	setDefaults(cfg)
	sources := map[string]ConfigSource{}
	if err := loadConfigFile(cfg, configFile, sources, SourceProjFile); err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}

	if cfg.TasksFile != "custom.json" {
		t.Errorf("TasksFile: got %q, want custom.json", cfg.TasksFile)
	}
	if cfg.CreateIfMissing {
		t.Error("CreateIfMissing: got true, want false")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
	if cfg.LogFormat != DefaultLogFormat {
		t.Errorf("LogFormat changed by file without the key: %q", cfg.LogFormat)
	}
	if sources["create_if_missing"] != SourceProjFile {
		t.Errorf("source of create_if_missing: got %q", sources["create_if_missing"])
	}
	if _, ok := sources["log_format"]; ok {
		t.Error("log_format recorded as coming from the file")
	}
}

func TestLoadConfigFileUnknownKey(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "daycal.toml")
	writeFile(t, configFile, "tasks_fle = \"typo.json\"\n")

	cfg := &Config{}
	setDefaults(cfg)
	err := loadConfigFile(cfg, configFile, nil, SourceProjFile)
	if err == nil || !strings.Contains(err.Error(), "tasks_fle") {
		t.Fatalf("loadConfigFile: got %v, want unknown key error", err)
	}
}

func TestLoadPrecedence(t *testing.T) {
	work := isolate(t)
	home := os.Getenv("HOME")

	writeFile(t, filepath.Join(home, ".daycal", "daycal.toml"), `tasks_file = "user.json"
log_level = "warn"
log_format = "json"
`)
	writeFile(t, filepath.Join(work, "daycal.toml"), `tasks_file = "project.json"
log_level = "error"
`)
	t.Setenv("DAYCAL_LOG_LEVEL", "debug")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cws, err := LoadWithSources(fs, []string{"--file", "flag.yaml", "--no-color"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if want := filepath.Join(work, "flag.yaml"); cfg.TasksFile != want {
		t.Errorf("TasksFile: got %q, want %q", cfg.TasksFile, want)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat: got %q, want json", cfg.LogFormat)
	}
	if cfg.Color {
		t.Error("Color: got true, want false")
	}

	wantSources := map[string]ConfigSource{
		"tasks_file":        SourceFlag,
		"log_level":         SourceEnv,
		"log_format":        SourceUserFile,
		"color":             SourceFlag,
		"create_if_missing": SourceDefault,
	}
	for field, want := range wantSources {
		if got := cws.Sources[field]; got != want {
			t.Errorf("source of %s: got %q, want %q", field, got, want)
		}
	}
	if len(cws.Files) != 2 {
		t.Errorf("Files: got %v, want user and project files", cws.Files)
	}
}

func TestProjectConfigInStateDir(t *testing.T) {
	work := isolate(t)
	writeFile(t, filepath.Join(work, ".daycal", "daycal.toml"), "plain = true\n")

	cfg, err := loadConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Plain {
		t.Error("Plain: got false, want true from .daycal/daycal.toml")
	}
}

func TestUserConfigInXDGDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG config dir only applies on Linux/BSD")
	}
	isolate(t)
	writeFile(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "daycal", "daycal.toml"), "log_format = \"logfmt\"\n")

	cfg, err := loadConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogFormat != "logfmt" {
		t.Errorf("LogFormat: got %q, want logfmt", cfg.LogFormat)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"log level", []string{"--log-level", "loud"}, "log_level"},
		{"log format", []string{"--log-format", "xml"}, "log_format"},
		{"empty file", []string{"--file", " "}, "tasks_file"},
		{"unknown flag", []string{"--bogus"}, "bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(new(strings.Builder))
			_, err := loadConfig(fs, tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("loadConfig(%v): got %v, want error mentioning %q", tt.args, err, tt.want)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	sources := map[string]ConfigSource{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	version := fs.Bool("version", false, "")

	args := []string{"--file", "x.json", "--create-if-missing=false", "--plain", "--version", "extra.yaml"}
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.TasksFile != "extra.yaml" || cfg.CreateIfMissing || !cfg.Plain {
		t.Errorf("got %+v", cfg)
	}
	if !*version {
		t.Error("caller-defined flag not parsed")
	}
	if sources["plain"] != SourceFlag || sources["create_if_missing"] != SourceFlag || sources["tasks_file"] != SourceFlag {
		t.Errorf("sources: got %v", sources)
	}
	if _, ok := sources["log_level"]; ok {
		t.Error("unset flag recorded as a source")
	}
}

func TestTaskFileArgument(t *testing.T) {
	work := isolate(t)
	home := os.Getenv("HOME")
	t.Setenv("DAYCAL_TEST_DIR", filepath.Join(work, "data"))

	tests := []struct {
		arg  string
		want string
	}{
		{"plans.yaml", filepath.Join(work, "plans.yaml")},
		{"~/plans.json", filepath.Join(home, "plans.json")},
		{"$DAYCAL_TEST_DIR/plans.json", filepath.Join(work, "data", "plans.json")},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			cws, err := LoadWithSources(flag.NewFlagSet("test", flag.ContinueOnError), []string{tt.arg})
			if err != nil {
				t.Fatalf("LoadWithSources: %v", err)
			}
			if cws.Config.TasksFile != tt.want {
				t.Errorf("TasksFile: got %q, want %q", cws.Config.TasksFile, tt.want)
			}
			if cws.Sources["tasks_file"] != SourceFlag {
				t.Errorf("source: got %q, want flag", cws.Sources["tasks_file"])
			}
		})
	}

	_, err := LoadWithSources(flag.NewFlagSet("test", flag.ContinueOnError), []string{"a.json", "b.json"})
	if err == nil || !strings.Contains(err.Error(), "unexpected arguments") {
		t.Errorf("two arguments: got %v, want unexpected arguments error", err)
	}
}

func TestEntries(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cws := &ConfigWithSources{Config: cfg, Sources: map[string]ConfigSource{"plain": SourceFlag}}

	entries := cws.Entries()
	if len(entries) != len(configFields()) {
		t.Fatalf("got %d entries, want %d", len(entries), len(configFields()))
	}
	if entries[0].Name != "tasks_file" {
		t.Errorf("first entry: got %q", entries[0].Name)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Value, "<unknown") {
			t.Errorf("entry %s has no value", e.Name)
		}
		if e.Name == "plain" && (e.Value != "false" || e.Source != SourceFlag) {
			t.Errorf("plain entry: got %+v", e)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	t.Setenv("DAYCAL_TEST_DIR", "/data")

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
		{"$DAYCAL_TEST_DIR/tasks.json", "/data/tasks.json"},
	}
	if runtime.GOOS != "windows" {
		tests = append(tests, struct {
			input string
			want  string
		}{`~\test`, `~\test`})
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := expandPath(tt.input); got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpandPercentVars(t *testing.T) {
	t.Setenv("DAYCAL_TEST_HOME", `C:\Users\me`)

	tests := []struct {
		input string
		want  string
	}{
		{`%DAYCAL_TEST_HOME%\logs`, `C:\Users\me\logs`},
		{`%DAYCAL_UNSET_VAR%\logs`, `%DAYCAL_UNSET_VAR%\logs`},
		{`100%`, `100%`},
		{`%%`, `%%`},
		{`plain`, `plain`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := expandPercentVars(tt.input); got != tt.want {
				t.Errorf("expandPercentVars(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolvePath(t *testing.T) {
	if got := resolvePath("/work", "tasks.json"); got != filepath.Join("/work", "tasks.json") {
		t.Errorf("relative: got %q", got)
	}
	if got := resolvePath("/work", "/abs/tasks.json"); got != "/abs/tasks.json" {
		t.Errorf("absolute: got %q", got)
	}
	if got := resolvePath("/work", ""); got != "" {
		t.Errorf("empty: got %q", got)
	}
}

func TestBoolFromString(t *testing.T) {
	for _, s := range []string{"1", "true", "YES", " on "} {
		if !boolFromString(s) {
			t.Errorf("boolFromString(%q) = false", s)
		}
	}
	for _, s := range []string{"0", "false", "no", "off", ""} {
		if boolFromString(s) {
			t.Errorf("boolFromString(%q) = true", s)
		}
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup, like testing.T.Chdir in Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if filepath.IsAbs(dir) {
		t.Setenv("PWD", dir)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			panic("testing.Chdir: " + err.Error())
		}
	})
}
