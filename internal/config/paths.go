package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// expandPath expands environment variables and a leading ~ in p.
// On Windows %VAR% references and a ~\ prefix are understood as well.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = expandPercentVars(p)
	}

	rest, ok := strings.CutPrefix(p, "~")
	if !ok {
		return p
	}
	sep := rest != "" && (rest[0] == '/' || (runtime.GOOS == "windows" && rest[0] == '\\'))
	if rest != "" && !sep {
		// ~user is not supported
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if rest == "" {
		return home
	}
	return filepath.Join(home, rest[1:])
}

// expandPercentVars replaces %VAR% with the value of VAR. Unset variables
// and lone percent signs are left as they are.
func expandPercentVars(p string) string {
	if !strings.Contains(p, "%") {
		return p
	}
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
		end += start + 1
		b.WriteString(p[:start])
		key := p[start+1 : end]
		if val, ok := os.LookupEnv(key); ok && key != "" {
			b.WriteString(val)
			p = p[end+1:]
			continue
		}
		// Keep the opening % and rescan from the closing one.
		b.WriteByte('%')
		p = p[start+1:]
		b.WriteString(p[:end-start-1])
		p = p[end-start-1:]
	}
	b.WriteString(p)
	return b.String()
}
