package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/extkit/extpack/internal/manifest"
	"github.com/extkit/extpack/internal/messages"
)

func newListCmd() *cobra.Command {
	var file string
	var installed bool

	cmd := &cobra.Command{
		Use:   messages.ListUse,
		Short: messages.ListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if installed {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				extensions, err := newEditorCLI(resolveCLI(cfg)).ListInstalled()
				if err != nil {
					return fmt.Errorf(messages.ExportListFailedFmt, err)
				}
				printExtensions(cmd, extensions)
				return nil
			}

			if file == "" {
				return fmt.Errorf(messages.ListNeedsSource)
			}
			pack, err := manifest.Load(file)
			if err != nil {
				return fmt.Errorf(messages.InstallLoadPackErrFmt, err)
			}
			if pack.Meta.Source != "" {
				_, _ = fmt.Fprintf(out, messages.ListMetaFmt, pack.Meta.Source, pack.Meta.ExportedAt.Format(time.RFC3339))
			}
			if pack.HasSettings() {
				_, _ = fmt.Fprintf(out, "%s (%d keys)\n", messages.PickerSettingsRow, pack.Settings.Len())
			}
			printExtensions(cmd, pack.Extensions)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", messages.ListFlagFile)
	cmd.Flags().BoolVar(&installed, "installed", false, messages.ListFlagInstalled)
	return cmd
}

func printExtensions(cmd *cobra.Command, extensions []manifest.Extension) {
	out := cmd.OutOrStdout()
	for _, ext := range extensions {
		if ext.Version != "" {
			_, _ = fmt.Fprintf(out, "%s@%s\n", ext.ID, ext.Version)
			continue
		}
		_, _ = fmt.Fprintln(out, ext.ID)
	}
}
