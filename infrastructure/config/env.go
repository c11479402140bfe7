package config

import (
	"os"
	"regexp"
	"strings"
)

// Pattern for ${VAR} and ${VAR:-default} references in settings files.
var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*)?\}`)

// ExpandEnv expands ${VAR} and ${VAR:-default} references in the input.
// Unset variables without a default expand to the empty string.
func ExpandEnv(input string) string {
	return envPattern.ReplaceAllStringFunc(input, func(match string) string {
		inner := match[2 : len(match)-1]

		varName := inner
		var def string
		var hasDef bool
		if i := strings.Index(inner, ":-"); i >= 0 {
			varName = inner[:i]
			def = inner[i+2:]
			hasDef = true
		}

		value, exists := os.LookupEnv(varName)
		if (!exists || value == "") && hasDef {
			return def
		}
		return value
	})
}
