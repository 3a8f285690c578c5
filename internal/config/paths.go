package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// resolvePath expands p and makes it absolute against workDir.
// An empty p stays empty.
func resolvePath(workDir, p string) string {
	p = expandPath(strings.TrimSpace(p))
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workDir, p)
}

// expandPath expands the home directory and environment variables in p.
// It accepts a ~/ prefix everywhere, plus ~\ and %VAR% on Windows.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := expandEnv(p)
	if expanded == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return expanded
	}
	if strings.HasPrefix(expanded, "~/") || (runtime.GOOS == "windows" && strings.HasPrefix(expanded, `~\`)) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, expanded[2:])
		}
	}
	return expanded
}

func expandEnv(p string) string {
	expanded := os.ExpandEnv(p)
	if runtime.GOOS != "windows" {
		return expanded
	}
	return expandPercentVars(expanded)
}

// expandPercentVars replaces %NAME% with the value of NAME. Unset names and
// a lone % are left as written.
func expandPercentVars(p string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(p, '%')
		if start < 0 {
			break
		}
		end := strings.IndexByte(p[start+1:], '%')
		if end < 0 {
			break
		}
		key := p[start+1 : start+1+end]
		b.WriteString(p[:start])
		if val, ok := os.LookupEnv(key); ok && key != "" {
			b.WriteString(val)
			p = p[start+end+2:]
			continue
		}
		b.WriteByte('%')
		p = p[start+1:]
	}
	b.WriteString(p)
	return b.String()
}
