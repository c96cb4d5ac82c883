package installer

import (
	"fmt"
	"strings"

	"github.com/extkit/extpack/internal/messages"
)

// Summary is the outcome of a workflow run.
type Summary struct {
	Installed        int
	AlreadyInstalled int
	Failed           int
	// Skipped counts extensions left untouched after cancellation.
	Skipped int

	// SettingsProcessed reports whether a settings phase ran at all;
	// SettingsApplied whether the merged file was written successfully.
	SettingsProcessed bool
	SettingsApplied   bool

	Cancelled bool
}

// String renders the one-line run summary shown to the operator.
func (s Summary) String() string {
	parts := []string{
		fmt.Sprintf(messages.InstallerSummaryFmt, s.Installed, s.AlreadyInstalled, s.Failed, s.Skipped),
	}
	if s.SettingsProcessed {
		if s.SettingsApplied {
			parts = append(parts, messages.SummarySettingsOK)
		} else {
			parts = append(parts, messages.SummarySettingsErr)
		}
	}
	if s.Cancelled {
		parts = append(parts, messages.SummaryCancelled)
	}
	return strings.Join(parts, "; ")
}
