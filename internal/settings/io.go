package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/extkit/extpack/internal/fsutil"
	"github.com/extkit/extpack/internal/messages"
)

var (
	readFile    = os.ReadFile
	userHomeDir = homedir.Dir
)

// Load reads and tolerantly parses the settings file at path.
// A missing file yields an empty Map; read or parse failures are returned so
// the caller can degrade to empty settings and warn.
func Load(path string) (*Map, error) {
	data, err := readFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewMap(), nil
		}
		return nil, err
	}
	return Parse(data)
}

// Write pretty-prints m to path atomically, creating parent directories.
func Write(path string, m *Map) error {
	data, err := m.MarshalIndent()
	if err != nil {
		return fmt.Errorf(messages.SettingsWriteFailedFmt, path, err)
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf(messages.SettingsWriteFailedFmt, path, err)
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf(messages.SettingsWriteFailedFmt, path, err)
	}
	return nil
}

// DefaultPath returns the user settings.json location for the code-family
// editor named by hostName on the current platform.
func DefaultPath(hostName string) (string, error) {
	product := productDir(hostName)
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, product, "User", "settings.json"), nil
		}
	}
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveHomeErrFmt, err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", product, "User", "settings.json"), nil
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", product, "User", "settings.json"), nil
	default:
		return filepath.Join(home, ".config", product, "User", "settings.json"), nil
	}
}

// productDir maps a host display name to the per-product settings directory.
func productDir(hostName string) string {
	lower := strings.ToLower(hostName)
	switch {
	case strings.Contains(lower, "cursor"):
		return "Cursor"
	case strings.Contains(lower, "windsurf"):
		return "Windsurf"
	default:
		return "Code"
	}
}
