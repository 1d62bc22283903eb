// SPDX-License-Identifier: MPL-2.0

package env

import (
	"os"
	"strings"
)

// LoadFile reads a Tekton env file and merges its assignments into m,
// later values overriding earlier ones. A missing file is an ordinary
// no-op so that every layer of the cascade is optional.
//
// Grammar (shared by ~/.env, .env.tekton and .env.local):
//   - blank lines and lines whose first non-whitespace byte is '#' are
//     skipped
//   - KEY=VALUE, split on the first '='; the key is trimmed of
//     surrounding whitespace, the value of trailing whitespace
//   - a value wrapped in one matching pair of single or double quotes has
//     the quotes stripped; no escape sequences are processed
//   - lines without '=' are dropped silently (the loader is deliberately
//     permissive; see the launcher docs)
func LoadFile(m *Map, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for line := range strings.Lines(string(content)) {
		parseLine(m, line)
	}
	return nil
}

func parseLine(m *Map, line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}

	key, value, found := strings.Cut(line, "=")
	if !found {
		return
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return
	}

	m.Set(key, unquote(strings.TrimRight(value, " \t\r\n")))
}

// unquote strips one matching pair of surrounding quotes, if present.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
