package installer

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/extkit/extpack/internal/collection"
	"github.com/extkit/extpack/internal/messages"
	"github.com/extkit/extpack/internal/settings"
)

// Reporter receives workflow progress: a status message and the fraction of
// the run completed by the step, as a monotone increment in [0, 1].
type Reporter interface {
	Report(message string, increment float64)
}

// NullReporter discards all progress.
type NullReporter struct{}

// Report discards the progress update.
func (NullReporter) Report(string, float64) {}

// Options tune a workflow run.
type Options struct {
	// SettingsPath is where merged settings are written.
	SettingsPath string
	// SkipSettings leaves the settings item untouched even when selected.
	SkipSettings bool
	// Upgrade reinstalls extensions whose packed version is newer than the
	// installed one instead of marking them already installed.
	Upgrade bool
}

// Run applies the selected items of store sequentially: the settings phase
// first (at most one step), then one editor-CLI invocation per extension.
// Cancellation is checked only at loop-iteration boundaries, so an in-flight
// install finishes even after ctx is cancelled; remaining items keep their
// prior status and are counted as skipped. A single item's failure never
// aborts the run.
func Run(ctx context.Context, store *collection.Store, cli EditorCLI, reporter Reporter, opts Options) Summary {
	if reporter == nil {
		reporter = NullReporter{}
	}

	var summary Summary
	var settingsItem *collection.Item
	var extensions []*collection.Item
	for _, item := range store.Selected() {
		if item.IsSettings() {
			if !opts.SkipSettings && item.Payload != nil {
				settingsItem = item
			}
			continue
		}
		extensions = append(extensions, item)
	}

	total := len(extensions)
	if settingsItem != nil {
		total++
	}
	if total == 0 {
		return summary
	}
	step := 1.0 / float64(total)

	if settingsItem != nil {
		applySettings(store, settingsItem, opts.SettingsPath, reporter, &summary)
		reporter.Report("", step)
	}

	for i, item := range extensions {
		if ctx.Err() != nil {
			summary.Cancelled = true
			summary.Skipped = len(extensions) - i
			reporter.Report(messages.InstallerCancelled, 0)
			break
		}
		installOne(ctx, store, cli, item, opts, reporter, &summary)
		reporter.Report("", step)
	}

	return summary
}

// applySettings merges the payload over the current on-disk settings and
// writes the result. An unreadable or unparsable current file degrades to
// empty settings; only the write can fail the settings item.
func applySettings(store *collection.Store, item *collection.Item, path string, reporter Reporter, summary *Summary) {
	summary.SettingsProcessed = true
	store.SetStatus(item.ID, collection.StatusInstalling, "")

	current, err := settings.Load(path)
	if err != nil {
		reporter.Report(fmt.Sprintf(messages.SettingsReadWarnFmt, err), 0)
		current = settings.NewMap()
	}

	merged := settings.Merge(current, item.Payload)
	if err := settings.Write(path, merged); err != nil {
		store.SetStatus(item.ID, collection.StatusFailed, err.Error())
		return
	}
	store.SetStatus(item.ID, collection.StatusSuccess, "")
	summary.SettingsApplied = true
	reporter.Report(messages.SettingsApplied, 0)
}

// installOne drives a single extension through its status transitions.
func installOne(ctx context.Context, store *collection.Store, cli EditorCLI, item *collection.Item, opts Options, reporter Reporter, summary *Summary) {
	if cli.Installed(item.ID) {
		if !(opts.Upgrade && packedIsNewer(item.Version, cli.InstalledVersion(item.ID))) {
			store.SetStatus(item.ID, collection.StatusAlreadyInstalled, "")
			summary.AlreadyInstalled++
			reporter.Report(fmt.Sprintf(messages.InstallerAlreadyFmt, item.Label()), 0)
			return
		}
		reporter.Report(fmt.Sprintf(messages.InstallerUpgradingFmt, item.Label(), cli.InstalledVersion(item.ID), item.Version), 0)
	} else {
		reporter.Report(fmt.Sprintf(messages.InstallerInstallingFmt, item.Label()), 0)
	}

	store.SetStatus(item.ID, collection.StatusInstalling, "")
	if _, err := cli.Install(ctx, item.ID); err != nil {
		store.SetStatus(item.ID, collection.StatusFailed, err.Error())
		summary.Failed++
		reporter.Report(fmt.Sprintf(messages.InstallerFailedFmt, item.Label(), err), 0)
		return
	}
	store.SetStatus(item.ID, collection.StatusSuccess, "")
	summary.Installed++
	reporter.Report(fmt.Sprintf(messages.InstallerInstalledFmt, item.Label()), 0)
}

// packedIsNewer reports whether packed is a valid semver strictly newer than
// installed. Unknown or non-semver versions never trigger an upgrade.
func packedIsNewer(packed, installed string) bool {
	packedVersion, err := semver.NewVersion(packed)
	if err != nil {
		return false
	}
	installedVersion, err := semver.NewVersion(installed)
	if err != nil {
		return false
	}
	return packedVersion.GreaterThan(installedVersion)
}
