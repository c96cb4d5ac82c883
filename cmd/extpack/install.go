package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/extkit/extpack/internal/collection"
	"github.com/extkit/extpack/internal/installer"
	"github.com/extkit/extpack/internal/manifest"
	"github.com/extkit/extpack/internal/messages"
	"github.com/extkit/extpack/internal/picker"
	"github.com/extkit/extpack/internal/progress"
)

type installFlags struct {
	file         string
	all          bool
	yes          bool
	upgrade      bool
	skipSettings bool
	dryRun       bool
}

func newInstallCmd() *cobra.Command {
	var flags installFlags

	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", messages.InstallFlagFile)
	cmd.Flags().BoolVar(&flags.all, "all", false, messages.InstallFlagAll)
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, messages.InstallFlagYes)
	cmd.Flags().BoolVar(&flags.upgrade, "upgrade", false, messages.InstallFlagUpgrade)
	cmd.Flags().BoolVar(&flags.skipSettings, "skip-settings", false, messages.InstallFlagSkipSettings)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, messages.InstallFlagDryRun)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runInstall(cmd *cobra.Command, flags installFlags) error {
	out := cmd.OutOrStdout()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pack, err := manifest.Load(flags.file)
	if err != nil {
		return fmt.Errorf(messages.InstallLoadPackErrFmt, err)
	}
	for _, warning := range pack.Validate() {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), warning)
	}
	pack = pack.DropInvalid()

	store := collection.NewStore()
	pack.Populate(store)

	ui := newUI()
	if !flags.all {
		if err := picker.Pick(ui, store); err != nil {
			return err
		}
	}
	if len(store.Selected()) == 0 {
		_, _ = fmt.Fprint(out, messages.InstallNothingSelected)
		return nil
	}

	settingsPath, err := resolveSettingsPath(cfg)
	if err != nil {
		return err
	}
	opts := installer.Options{
		SettingsPath: settingsPath,
		SkipSettings: flags.skipSettings,
		Upgrade:      flags.upgrade,
	}

	if flags.dryRun {
		printPlan(cmd, store, opts)
		return nil
	}

	if !flags.yes {
		if err := previewSettingsDiff(cmd, store, opts); err != nil {
			return err
		}
		if !flags.all {
			confirmed := true
			if err := ui.Confirm(messages.InstallConfirmPrompt, &confirmed); err != nil {
				return err
			}
			if !confirmed {
				_, _ = fmt.Fprint(out, messages.InstallAborted)
				return nil
			}
		}
	}

	// Ctrl+C requests cooperative cancellation; the in-flight install finishes.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cli := newEditorCLI(resolveCLI(cfg))
	summary := installer.Run(ctx, store, cli, progress.NewConsole(out), opts)

	_, _ = fmt.Fprintln(out, summaryLine(summary))
	if summary.Failed > 0 {
		return fmt.Errorf(messages.InstallFailedItemsFmt, summary.Failed)
	}
	return nil
}

// printPlan lists what a real run would do, without touching anything.
func printPlan(cmd *cobra.Command, store *collection.Store, opts installer.Options) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, messages.InstallDryRunHeader)
	for _, item := range store.Selected() {
		if item.IsSettings() {
			if !opts.SkipSettings && item.Payload != nil {
				_, _ = fmt.Fprintf(out, "  %s\n", messages.InstallDryRunSettings)
			}
			continue
		}
		_, _ = fmt.Fprintf(out, "  %s\n", item.ID)
	}
}

// previewSettingsDiff shows the pending settings change when one is selected.
func previewSettingsDiff(cmd *cobra.Command, store *collection.Store, opts installer.Options) error {
	if opts.SkipSettings {
		return nil
	}
	item := store.Find(collection.SettingsItemID)
	if item == nil || !item.Selected || item.Payload == nil {
		return nil
	}
	diff, err := installer.SettingsDiff(opts.SettingsPath, item.Payload)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if diff == "" {
		_, _ = fmt.Fprintln(out, messages.SettingsNoChanges)
		return nil
	}
	_, _ = fmt.Fprintln(out, messages.SettingsDiffHeader)
	_, _ = fmt.Fprintln(out, diff)
	return nil
}

// summaryLine colors the final summary by its worst outcome.
func summaryLine(summary installer.Summary) string {
	text := summary.String()
	switch {
	case summary.Failed > 0:
		return color.RedString(text)
	case summary.Cancelled:
		return color.YellowString(text)
	default:
		return color.GreenString(text)
	}
}
