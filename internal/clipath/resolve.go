// Package clipath picks the editor CLI executable used for extension installs.
package clipath

import (
	"os"
	"strings"
)

// knownCLIs are the primary code-family CLI names used as a tie-break when no
// candidate matches the host display name.
var knownCLIs = []string{"code", "cursor", "windsurf"}

var readDir = os.ReadDir

// Resolve picks the editor CLI from the executable names found in the host's
// bin directory. It is a pure function over its inputs:
//
//  1. Hidden names and auxiliary "*tunnel*" binaries are discarded.
//  2. A candidate whose name is a case-insensitive substring of hostName wins.
//  3. Otherwise a candidate whose lowercase name is a known primary CLI wins.
//  4. Otherwise the first remaining candidate wins.
//  5. An empty candidate list yields override unchanged.
func Resolve(entries []string, hostName string, override string) string {
	var candidates []string
	for _, name := range entries {
		if name == "" || strings.HasPrefix(name, ".") {
			continue
		}
		if strings.Contains(strings.ToLower(name), "tunnel") {
			continue
		}
		candidates = append(candidates, name)
	}
	if len(candidates) == 0 {
		return override
	}

	host := strings.ToLower(hostName)
	for _, name := range candidates {
		if host != "" && strings.Contains(host, strings.ToLower(name)) {
			return name
		}
	}
	for _, name := range candidates {
		lower := strings.ToLower(name)
		for _, known := range knownCLIs {
			if lower == known {
				return name
			}
		}
	}
	return candidates[0]
}

// Detect lists binDir and resolves the CLI from its contents. A missing or
// unreadable directory behaves like an empty listing, so the override always
// wins in that case; resolution never fails.
func Detect(binDir string, hostName string, override string) string {
	var names []string
	if binDir != "" {
		if entries, err := readDir(binDir); err == nil {
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				names = append(names, entry.Name())
			}
		}
	}
	return Resolve(names, hostName, override)
}
