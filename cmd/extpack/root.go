package main

import (
	"github.com/spf13/cobra"

	"github.com/extkit/extpack/internal/clipath"
	"github.com/extkit/extpack/internal/config"
	"github.com/extkit/extpack/internal/installer"
	"github.com/extkit/extpack/internal/messages"
	"github.com/extkit/extpack/internal/picker"
	"github.com/extkit/extpack/internal/settings"
)

// Test seams for the external collaborators the commands construct.
var (
	newEditorCLI = func(path string) installer.EditorCLI { return installer.NewCodeCLI(path) }
	newUI        = func() picker.UI { return picker.NewHuhUI() }
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("config", "", messages.RootFlagConfig)

	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newListCmd())
	return cmd
}

// loadConfig reads the config named by --config, or the defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// resolveCLI returns the editor CLI invocation for cfg: the explicit value
// when configured, otherwise bin-dir detection with the default fallback.
func resolveCLI(cfg *config.Config) string {
	if !cfg.AutoDetect() {
		return cfg.CLI
	}
	return clipath.Detect(cfg.BinDir, cfg.HostName, cfg.Override())
}

// resolveSettingsPath returns the user settings.json location for cfg.
func resolveSettingsPath(cfg *config.Config) (string, error) {
	if cfg.SettingsPath != "" {
		return cfg.SettingsPath, nil
	}
	return settings.DefaultPath(cfg.HostName)
}
