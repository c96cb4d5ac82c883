package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/extkit/extpack/internal/manifest"
	"github.com/extkit/extpack/internal/messages"
	"github.com/extkit/extpack/internal/settings"
)

func newExportCmd() *cobra.Command {
	var output string
	var noSettings bool

	cmd := &cobra.Command{
		Use:   messages.ExportUse,
		Short: messages.ExportShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			cli := newEditorCLI(resolveCLI(cfg))
			extensions, err := cli.ListInstalled()
			if err != nil {
				return fmt.Errorf(messages.ExportListFailedFmt, err)
			}

			userSettings := settings.NewMap()
			if !noSettings {
				path, err := resolveSettingsPath(cfg)
				if err != nil {
					return err
				}
				userSettings, err = settings.Load(path)
				if err != nil {
					// Unreadable settings degrade to an extensions-only pack.
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), messages.ExportSettingsNoteFmt, err)
					userSettings = settings.NewMap()
				}
			}

			pack := manifest.New(cfg.HostName, extensions, userSettings)
			if len(extensions) == 0 && !pack.HasSettings() {
				return fmt.Errorf(messages.ExportNothingToExport)
			}
			if err := manifest.Save(output, pack); err != nil {
				return fmt.Errorf(messages.ExportWritePackErrFmt, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.ExportWroteFmt, len(extensions), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "extpack.json", messages.ExportFlagOutput)
	cmd.Flags().BoolVar(&noSettings, "no-settings", false, messages.ExportFlagNoSettings)
	return cmd
}
