// Package installer applies a pack: it merges the settings payload and then
// installs the selected extensions one at a time through the editor CLI.
package installer

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/extkit/extpack/internal/manifest"
	"github.com/extkit/extpack/internal/messages"
)

// EditorCLI is the host-editor collaborator the workflow installs through.
// Implementations run one external process per call; the workflow never
// invokes them concurrently.
type EditorCLI interface {
	// ListInstalled returns the descriptors of all installed extensions.
	ListInstalled() ([]manifest.Extension, error)
	// Installed reports whether the extension id is already installed.
	Installed(id string) bool
	// InstalledVersion returns the installed version of id, or "".
	InstalledVersion(id string) string
	// Install installs one extension, returning the captured output.
	Install(ctx context.Context, id string) (string, error)
}

// CodeCLI drives a code-family editor CLI (code, cursor, windsurf) found at
// Path. The installed-extension list is fetched once and cached: the workflow
// queries Installed per item, and the set only changes through Install calls
// whose outcome is tracked separately.
type CodeCLI struct {
	Path string

	installed map[string]string // id (lowercased) -> version
}

var runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// NewCodeCLI returns a CodeCLI for the resolved executable path.
func NewCodeCLI(path string) *CodeCLI {
	return &CodeCLI{Path: path}
}

// ListInstalled runs `--list-extensions --show-versions` and parses the
// `publisher.name@version` lines.
func (c *CodeCLI) ListInstalled() ([]manifest.Extension, error) {
	out, err := runCommand(context.Background(), c.Path, "--list-extensions", "--show-versions")
	if err != nil {
		return nil, fmt.Errorf(messages.InstallerListExitFmt, cliError(out, err))
	}

	var extensions []manifest.Extension
	c.installed = map[string]string{}
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		id, version := line, ""
		if at := strings.LastIndex(line, "@"); at > 0 {
			id, version = line[:at], line[at+1:]
		}
		extensions = append(extensions, manifest.Extension{ID: id, Version: version})
		c.installed[strings.ToLower(id)] = version
	}
	return extensions, nil
}

// Installed reports whether id appears in the cached installed list,
// fetching the list on first use. Extension ids compare case-insensitively.
func (c *CodeCLI) Installed(id string) bool {
	if err := c.ensureInstalled(); err != nil {
		return false
	}
	_, ok := c.installed[strings.ToLower(id)]
	return ok
}

// InstalledVersion returns the cached installed version of id, or "".
func (c *CodeCLI) InstalledVersion(id string) string {
	if err := c.ensureInstalled(); err != nil {
		return ""
	}
	return c.installed[strings.ToLower(id)]
}

func (c *CodeCLI) ensureInstalled() error {
	if c.installed != nil {
		return nil
	}
	_, err := c.ListInstalled()
	return err
}

// Install runs `--install-extension id` synchronously and returns the
// captured output. The CLI's error text is surfaced verbatim.
func (c *CodeCLI) Install(ctx context.Context, id string) (string, error) {
	args := []string{"--install-extension", id, "--force"}
	out, err := runCommand(ctx, c.Path, args...)
	if err != nil {
		return string(out), cliError(out, err)
	}
	if c.installed != nil {
		c.installed[strings.ToLower(id)] = ""
	}
	return string(out), nil
}

// cliError prefers the CLI's own output over the bare exit error, since the
// exit status alone ("exit status 1") tells the operator nothing.
func cliError(out []byte, err error) error {
	text := strings.TrimSpace(string(out))
	if text == "" {
		return err
	}
	return fmt.Errorf("%s", text)
}
