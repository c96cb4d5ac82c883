package installer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCommand replaces the external process runner for the duration of a test.
func stubCommand(t *testing.T, fn func(name string, args ...string) ([]byte, error)) {
	t.Helper()
	restore := runCommand
	runCommand = func(_ context.Context, name string, args ...string) ([]byte, error) {
		return fn(name, args...)
	}
	t.Cleanup(func() { runCommand = restore })
}

func TestListInstalledParsesVersions(t *testing.T) {
	stubCommand(t, func(name string, args ...string) ([]byte, error) {
		assert.Equal(t, "code", name)
		assert.Equal(t, []string{"--list-extensions", "--show-versions"}, args)
		return []byte("golang.go@0.41.4\nesbenp.prettier-vscode@10.1.0\nms-python.python\n\n"), nil
	})

	cli := NewCodeCLI("code")
	extensions, err := cli.ListInstalled()
	require.NoError(t, err)
	require.Len(t, extensions, 3)
	assert.Equal(t, "golang.go", extensions[0].ID)
	assert.Equal(t, "0.41.4", extensions[0].Version)
	assert.Equal(t, "ms-python.python", extensions[2].ID)
	assert.Empty(t, extensions[2].Version)
}

func TestInstalledIsCaseInsensitiveAndCached(t *testing.T) {
	calls := 0
	stubCommand(t, func(string, ...string) ([]byte, error) {
		calls++
		return []byte("Golang.Go@0.41.4\n"), nil
	})

	cli := NewCodeCLI("code")
	assert.True(t, cli.Installed("golang.go"))
	assert.True(t, cli.Installed("GOLANG.GO"))
	assert.False(t, cli.Installed("missing.ext"))
	assert.Equal(t, "0.41.4", cli.InstalledVersion("golang.go"))
	assert.Equal(t, 1, calls)
}

func TestInstalledListFailureReportsNotInstalled(t *testing.T) {
	stubCommand(t, func(string, ...string) ([]byte, error) {
		return nil, errors.New("exec: not found")
	})

	cli := NewCodeCLI("code")
	assert.False(t, cli.Installed("golang.go"))
	assert.Empty(t, cli.InstalledVersion("golang.go"))
}

func TestInstallInvokesCLI(t *testing.T) {
	var gotArgs []string
	stubCommand(t, func(_ string, args ...string) ([]byte, error) {
		gotArgs = args
		return []byte("Installing extensions...\n"), nil
	})

	cli := NewCodeCLI("code")
	out, err := cli.Install(context.Background(), "golang.go")
	require.NoError(t, err)
	assert.Equal(t, []string{"--install-extension", "golang.go", "--force"}, gotArgs)
	assert.Contains(t, out, "Installing")
}

func TestInstallSurfacesCLIOutputAsError(t *testing.T) {
	stubCommand(t, func(string, ...string) ([]byte, error) {
		return []byte("Extension 'nope.nope' not found.\n"), errors.New("exit status 1")
	})

	cli := NewCodeCLI("code")
	_, err := cli.Install(context.Background(), "nope.nope")
	require.Error(t, err)
	assert.Equal(t, "Extension 'nope.nope' not found.", err.Error())
}

func TestInstallFallsBackToExitError(t *testing.T) {
	stubCommand(t, func(string, ...string) ([]byte, error) {
		return []byte("  \n"), errors.New("exit status 2")
	})

	cli := NewCodeCLI("code")
	_, err := cli.Install(context.Background(), "x.y")
	require.Error(t, err)
	assert.Equal(t, "exit status 2", err.Error())
}

func TestInstallUpdatesCachedList(t *testing.T) {
	stubCommand(t, func(_ string, args ...string) ([]byte, error) {
		if args[0] == "--list-extensions" {
			return []byte(""), nil
		}
		return []byte("ok"), nil
	})

	cli := NewCodeCLI("code")
	require.False(t, cli.Installed("new.ext"))
	_, err := cli.Install(context.Background(), "new.ext")
	require.NoError(t, err)
	assert.True(t, cli.Installed("new.ext"))
}
