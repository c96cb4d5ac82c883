package messages

// Installer workflow messages.
const (
	InstallerInstallingFmt = "Installing %s"
	InstallerInstalledFmt  = "Installed %s"
	InstallerAlreadyFmt    = "%s is already installed"
	InstallerUpgradingFmt  = "Upgrading %s (%s -> %s)"
	InstallerFailedFmt     = "Failed to install %s: %s"
	InstallerCancelled     = "Installation cancelled; remaining items were left untouched"

	InstallerSummaryFmt = "installed %d, already installed %d, failed %d, skipped %d"
	SummarySettingsOK   = "settings applied"
	SummarySettingsErr  = "settings failed"
	SummaryCancelled    = "cancelled"

	// InstallerListExitFmt wraps the editor CLI list exit error.
	InstallerListExitFmt = "editor CLI list failed: %w"
)

// Settings messages.
const (
	// SettingsReadWarnFmt notes an unreadable current settings file (non-fatal).
	SettingsReadWarnFmt = "could not read current settings (%v); treating them as empty"

	SettingsWriteFailedFmt = "write settings %s: %w"
	SettingsApplied        = "Applied user settings"
	SettingsDiffHeader     = "Settings changes to be applied:"
	SettingsNoChanges      = "Settings are already up to date"
)

// Config messages for configuration loading and validation.
const (
	// ConfigInvalidFmt formats config parse/validation errors.
	ConfigInvalidFmt        = "invalid config %s: %w"
	ConfigResolveHomeErrFmt = "resolve home dir: %w"
	ConfigInvalidCLIValue   = "config cli must be \"auto\" or an executable path"
	ConfigReadFailedFmt     = "read config %s: %w"
)

// Manifest (pack file) messages.
const (
	// ManifestInvalidFormat reports a pack file that is neither shape.
	ManifestInvalidFormat    = "pack file is neither an export object nor an extension list"
	ManifestReadFailedFmt    = "read pack %s: %w"
	ManifestEncodeFailedFmt  = "encode pack: %w"
	ManifestVersionWarnFmt   = "extension %s has a non-semver version %q"
	ManifestMissingIDWarnFmt = "extension entry %d has no id and was dropped"
)
