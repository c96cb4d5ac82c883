package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/extkit/extpack/internal/installer"
	"github.com/extkit/extpack/internal/manifest"
	"github.com/extkit/extpack/internal/picker"
	"github.com/extkit/extpack/internal/settings"
)

// stubEditorCLI is the command-level editor CLI double.
type stubEditorCLI struct {
	extensions []manifest.Extension
	installed  map[string]string
	failWith   map[string]string
	listErr    error
	calls      []string
}

func (s *stubEditorCLI) ListInstalled() ([]manifest.Extension, error) {
	return s.extensions, s.listErr
}

func (s *stubEditorCLI) Installed(id string) bool {
	_, ok := s.installed[id]
	return ok
}

func (s *stubEditorCLI) InstalledVersion(id string) string { return s.installed[id] }

func (s *stubEditorCLI) Install(_ context.Context, id string) (string, error) {
	s.calls = append(s.calls, id)
	if msg, ok := s.failWith[id]; ok {
		return msg, errors.New(msg)
	}
	return "ok", nil
}

// scriptedUI answers every prompt without a terminal.
type scriptedUI struct {
	selection []string
	confirm   bool
}

func (u *scriptedUI) MultiSelect(_ string, _ []picker.Option, selected *[]string) error {
	*selected = u.selection
	return nil
}

func (u *scriptedUI) Confirm(_ string, value *bool) error {
	*value = u.confirm
	return nil
}

func stubCollaborators(t *testing.T, cli *stubEditorCLI, ui picker.UI) {
	t.Helper()
	prevCLI, prevUI := newEditorCLI, newUI
	newEditorCLI = func(string) installer.EditorCLI { return cli }
	if ui != nil {
		newUI = func() picker.UI { return ui }
	}
	t.Cleanup(func() { newEditorCLI, newUI = prevCLI, prevUI })
}

// writeConfig returns a --config file pinning the settings path into the test dir.
func writeConfig(t *testing.T, dir string) (configPath, settingsPath string) {
	t.Helper()
	settingsPath = filepath.Join(dir, "settings.json")
	configPath = filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("cli = %q\nsettings-path = %q\nhost-name = \"Test Editor\"\n", "test-code", settingsPath)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, settingsPath
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr strings.Builder
	err := execute(append([]string{"extpack"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestExportWritesPack(t *testing.T) {
	dir := t.TempDir()
	configPath, settingsPath := writeConfig(t, dir)
	if err := os.WriteFile(settingsPath, []byte(`{"editor.tabSize":2,}`), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	cli := &stubEditorCLI{extensions: []manifest.Extension{
		{ID: "golang.go", Version: "0.41.4"},
		{ID: "esbenp.prettier-vscode", Version: "10.1.0"},
	}}
	stubCollaborators(t, cli, nil)

	output := filepath.Join(dir, "pack.json")
	stdout, _, err := runCLI(t, "export", "--config", configPath, "-o", output)
	if err != nil {
		t.Fatalf("export error: %v", err)
	}
	if !strings.Contains(stdout, "Exported 2 extensions") {
		t.Fatalf("unexpected output %q", stdout)
	}

	pack, err := manifest.Load(output)
	if err != nil {
		t.Fatalf("load pack: %v", err)
	}
	if len(pack.Extensions) != 2 || pack.Meta.Source != "Test Editor" {
		t.Fatalf("unexpected pack: %+v", pack)
	}
	if !pack.HasSettings() {
		t.Fatal("expected settings in pack")
	}
}

func TestExportUnreadableSettingsDegrades(t *testing.T) {
	dir := t.TempDir()
	configPath, settingsPath := writeConfig(t, dir)
	if err := os.WriteFile(settingsPath, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	cli := &stubEditorCLI{extensions: []manifest.Extension{{ID: "golang.go"}}}
	stubCollaborators(t, cli, nil)

	output := filepath.Join(dir, "pack.json")
	_, stderr, err := runCLI(t, "export", "--config", configPath, "-o", output)
	if err != nil {
		t.Fatalf("export error: %v", err)
	}
	if !strings.Contains(stderr, "omitted") {
		t.Fatalf("expected settings warning, got %q", stderr)
	}
	pack, err := manifest.Load(output)
	if err != nil {
		t.Fatalf("load pack: %v", err)
	}
	if pack.HasSettings() {
		t.Fatal("expected settings omitted")
	}
}

func TestExportNothingToExport(t *testing.T) {
	dir := t.TempDir()
	configPath, _ := writeConfig(t, dir)
	stubCollaborators(t, &stubEditorCLI{}, nil)

	_, _, err := runCLI(t, "export", "--config", configPath, "--no-settings", "-o", filepath.Join(dir, "pack.json"))
	if err == nil {
		t.Fatal("expected error when nothing to export")
	}
}

func TestExportListFailure(t *testing.T) {
	dir := t.TempDir()
	configPath, _ := writeConfig(t, dir)
	stubCollaborators(t, &stubEditorCLI{listErr: errors.New("no such executable")}, nil)

	_, _, err := runCLI(t, "export", "--config", configPath, "-o", filepath.Join(dir, "pack.json"))
	if err == nil || !strings.Contains(err.Error(), "no such executable") {
		t.Fatalf("expected list error, got %v", err)
	}
}

func writePack(t *testing.T, dir string, pack *manifest.Pack) string {
	t.Helper()
	path := filepath.Join(dir, "pack.json")
	if err := manifest.Save(path, pack); err != nil {
		t.Fatalf("save pack: %v", err)
	}
	return path
}

func TestInstallAllAppliesPack(t *testing.T) {
	dir := t.TempDir()
	configPath, settingsPath := writeConfig(t, dir)

	userSettings := settings.NewMap()
	if err := userSettings.SetValue("editor.tabSize", 2); err != nil {
		t.Fatalf("set value: %v", err)
	}
	pack := manifest.New("Other Editor", []manifest.Extension{
		{ID: "golang.go", Version: "0.41.4"},
		{ID: "already.there", Version: "1.0.0"},
	}, userSettings)
	packPath := writePack(t, dir, pack)

	cli := &stubEditorCLI{installed: map[string]string{"already.there": "1.0.0"}}
	stubCollaborators(t, cli, nil)

	stdout, _, err := runCLI(t, "install", "--config", configPath, "-f", packPath, "--all", "--yes")
	if err != nil {
		t.Fatalf("install error: %v", err)
	}
	if !strings.Contains(stdout, "installed 1, already installed 1, failed 0, skipped 0") {
		t.Fatalf("unexpected summary output:\n%s", stdout)
	}
	if !strings.Contains(stdout, "settings applied") {
		t.Fatalf("expected settings applied, got:\n%s", stdout)
	}
	if len(cli.calls) != 1 || cli.calls[0] != "golang.go" {
		t.Fatalf("unexpected installs: %v", cli.calls)
	}

	written, err := settings.Load(settingsPath)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if _, ok := written.Get("editor.tabSize"); !ok {
		t.Fatal("expected merged settings written")
	}
}

func TestInstallFailedItemsExitWithError(t *testing.T) {
	dir := t.TempDir()
	configPath, _ := writeConfig(t, dir)
	pack := &manifest.Pack{Extensions: []manifest.Extension{{ID: "bad.ext"}}}
	packPath := writePack(t, dir, pack)

	cli := &stubEditorCLI{failWith: map[string]string{"bad.ext": "marketplace 503"}}
	stubCollaborators(t, cli, nil)

	stdout, _, err := runCLI(t, "install", "--config", configPath, "-f", packPath, "--all", "--yes")
	if err == nil {
		t.Fatal("expected error for failed items")
	}
	if !strings.Contains(stdout, "failed 1") {
		t.Fatalf("unexpected summary:\n%s", stdout)
	}
}

func TestInstallChecklistSelection(t *testing.T) {
	dir := t.TempDir()
	configPath, _ := writeConfig(t, dir)
	pack := &manifest.Pack{Extensions: []manifest.Extension{{ID: "a.one"}, {ID: "b.two"}}}
	packPath := writePack(t, dir, pack)

	cli := &stubEditorCLI{}
	ui := &scriptedUI{selection: []string{"b.two"}, confirm: true}
	stubCollaborators(t, cli, ui)

	_, _, err := runCLI(t, "install", "--config", configPath, "-f", packPath, "--yes")
	if err != nil {
		t.Fatalf("install error: %v", err)
	}
	if len(cli.calls) != 1 || cli.calls[0] != "b.two" {
		t.Fatalf("unexpected installs: %v", cli.calls)
	}
}

func TestInstallConfirmDecline(t *testing.T) {
	dir := t.TempDir()
	configPath, _ := writeConfig(t, dir)
	pack := &manifest.Pack{Extensions: []manifest.Extension{{ID: "a.one"}}}
	packPath := writePack(t, dir, pack)

	cli := &stubEditorCLI{}
	ui := &scriptedUI{selection: []string{"a.one"}, confirm: false}
	stubCollaborators(t, cli, ui)

	stdout, _, err := runCLI(t, "install", "--config", configPath, "-f", packPath)
	if err != nil {
		t.Fatalf("install error: %v", err)
	}
	if !strings.Contains(stdout, "Aborted") {
		t.Fatalf("expected abort message, got %q", stdout)
	}
	if len(cli.calls) != 0 {
		t.Fatalf("nothing must be installed, got %v", cli.calls)
	}
}

func TestInstallNothingSelected(t *testing.T) {
	dir := t.TempDir()
	configPath, _ := writeConfig(t, dir)
	pack := &manifest.Pack{Extensions: []manifest.Extension{{ID: "a.one"}}}
	packPath := writePack(t, dir, pack)

	cli := &stubEditorCLI{}
	ui := &scriptedUI{selection: nil}
	stubCollaborators(t, cli, ui)

	stdout, _, err := runCLI(t, "install", "--config", configPath, "-f", packPath)
	if err != nil {
		t.Fatalf("install error: %v", err)
	}
	if !strings.Contains(stdout, "Nothing selected") {
		t.Fatalf("unexpected output %q", stdout)
	}
}

func TestInstallDryRun(t *testing.T) {
	dir := t.TempDir()
	configPath, _ := writeConfig(t, dir)
	userSettings := settings.NewMap()
	if err := userSettings.SetValue("a", 1); err != nil {
		t.Fatalf("set value: %v", err)
	}
	pack := manifest.New("Editor", []manifest.Extension{{ID: "a.one"}}, userSettings)
	packPath := writePack(t, dir, pack)

	cli := &stubEditorCLI{}
	stubCollaborators(t, cli, nil)

	stdout, _, err := runCLI(t, "install", "--config", configPath, "-f", packPath, "--all", "--dry-run")
	if err != nil {
		t.Fatalf("install error: %v", err)
	}
	if !strings.Contains(stdout, "Would install:") || !strings.Contains(stdout, "a.one") {
		t.Fatalf("unexpected plan:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Would apply user settings.") {
		t.Fatalf("expected settings in plan:\n%s", stdout)
	}
	if len(cli.calls) != 0 {
		t.Fatalf("dry run must not install, got %v", cli.calls)
	}
}

func TestInstallRejectsMalformedPack(t *testing.T) {
	dir := t.TempDir()
	configPath, _ := writeConfig(t, dir)
	packPath := filepath.Join(dir, "pack.json")
	if err := os.WriteFile(packPath, []byte(`"nope"`), 0o644); err != nil {
		t.Fatalf("write pack: %v", err)
	}
	stubCollaborators(t, &stubEditorCLI{}, nil)

	_, _, err := runCLI(t, "install", "--config", configPath, "-f", packPath, "--all", "--yes")
	if err == nil || !strings.Contains(err.Error(), "neither") {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestInstallLegacyPackShape(t *testing.T) {
	dir := t.TempDir()
	configPath, _ := writeConfig(t, dir)
	packPath := filepath.Join(dir, "pack.json")
	if err := os.WriteFile(packPath, []byte(`[{"id":"a.one"},{"id":"b.two"}]`), 0o644); err != nil {
		t.Fatalf("write pack: %v", err)
	}

	cli := &stubEditorCLI{}
	stubCollaborators(t, cli, nil)

	_, _, err := runCLI(t, "install", "--config", configPath, "-f", packPath, "--all", "--yes")
	if err != nil {
		t.Fatalf("install error: %v", err)
	}
	if len(cli.calls) != 2 {
		t.Fatalf("expected both extensions installed, got %v", cli.calls)
	}
}

func TestListPackFile(t *testing.T) {
	dir := t.TempDir()
	configPath, _ := writeConfig(t, dir)
	userSettings := settings.NewMap()
	if err := userSettings.SetValue("a", 1); err != nil {
		t.Fatalf("set value: %v", err)
	}
	pack := manifest.New("Cursor", []manifest.Extension{{ID: "golang.go", Version: "0.41.4"}}, userSettings)
	packPath := writePack(t, dir, pack)

	stdout, _, err := runCLI(t, "list", "--config", configPath, "-f", packPath)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.Contains(stdout, "Exported from Cursor") {
		t.Fatalf("expected meta line, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "golang.go@0.41.4") {
		t.Fatalf("expected extension row, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "User settings (1 keys)") {
		t.Fatalf("expected settings row, got:\n%s", stdout)
	}
}

func TestListInstalled(t *testing.T) {
	dir := t.TempDir()
	configPath, _ := writeConfig(t, dir)
	cli := &stubEditorCLI{extensions: []manifest.Extension{{ID: "golang.go"}}}
	stubCollaborators(t, cli, nil)

	stdout, _, err := runCLI(t, "list", "--config", configPath, "--installed")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.Contains(stdout, "golang.go") {
		t.Fatalf("unexpected output %q", stdout)
	}
}

func TestListWithoutSource(t *testing.T) {
	_, _, err := runCLI(t, "list")
	if err == nil {
		t.Fatal("expected error without a source")
	}
}
