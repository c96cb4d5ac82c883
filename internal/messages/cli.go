package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "extpack"
	// RootShort is the short description for the root command.
	RootShort = "Export and re-apply editor extensions and settings"
	RootLong  = "extpack captures the extensions and user settings of a code-family editor\ninto a single portable pack file and selectively re-applies them elsewhere."

	RootFlagConfig = "Path to the extpack config file"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// ExportUse is the export command usage line.
	ExportUse   = "export"
	ExportShort = "Export installed extensions and settings to a pack file"

	ExportFlagOutput     = "Destination pack file"
	ExportFlagNoSettings = "Exclude user settings from the pack"

	ExportListFailedFmt   = "list installed extensions: %w"
	ExportWroteFmt        = "Exported %d extensions to %s\n"
	ExportSettingsNoteFmt = "Settings could not be read and were omitted: %v\n"
	ExportNothingToExport = "no installed extensions found and settings excluded; nothing to export"
	ExportWritePackErrFmt = "write pack file: %w"

	// InstallUse is the install command usage line.
	InstallUse   = "install"
	InstallShort = "Install extensions and apply settings from a pack file"

	InstallFlagFile         = "Pack file to install from"
	InstallFlagAll          = "Install every item without showing the checklist"
	InstallFlagYes          = "Skip confirmation and the settings diff preview"
	InstallFlagUpgrade      = "Reinstall extensions whose packed version is newer than the installed one"
	InstallFlagSkipSettings = "Never apply the settings item"
	InstallFlagDryRun       = "Show what would be installed without invoking the editor CLI"

	InstallRequiresTerminal = "the install checklist requires an interactive terminal; re-run with --all to install everything"
	InstallNothingSelected  = "Nothing selected; no changes made.\n"
	InstallLoadPackErrFmt   = "load pack file: %w"
	InstallDryRunHeader     = "Would install:"
	InstallDryRunSettings   = "Would apply user settings."
	InstallConfirmPrompt    = "Apply the selected items now?"
	InstallAborted          = "Aborted; no changes made.\n"
	InstallFailedItemsFmt   = "%d item(s) failed to install"

	// ListUse is the list command usage line.
	ListUse   = "list"
	ListShort = "List the extensions in a pack file or currently installed"

	ListFlagFile      = "Pack file to list"
	ListFlagInstalled = "List extensions reported by the editor CLI instead of a pack file"
	ListNeedsSource   = "provide a pack file with --file or use --installed"
	ListMetaFmt       = "Exported from %s at %s\n"

	// PickerTitle is the checklist form title.
	PickerTitle       = "Select items to install"
	PickerSettingsRow = "User settings"
)
