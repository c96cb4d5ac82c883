// Package collection tracks the installable items of a pack and their
// selection and install state.
package collection

import "github.com/extkit/extpack/internal/settings"

// SettingsItemID is the reserved identifier of the synthetic item that
// carries the user settings payload. At most one item in a store has it.
const SettingsItemID = "__editor-settings__"

// Status is the install state of an item.
type Status int

// Item install states. Transitions within a run are one-way
// (Pending -> Installing -> terminal); a full reload resets to Pending.
const (
	StatusPending Status = iota
	StatusInstalling
	StatusSuccess
	StatusFailed
	StatusAlreadyInstalled
)

// String returns a short human-readable status label.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInstalling:
		return "installing"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusAlreadyInstalled:
		return "already installed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends an install attempt.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusAlreadyInstalled
}

// Descriptor is the raw display data an item is created from.
type Descriptor struct {
	ID          string
	DisplayName string
	Description string
	Version     string
	Publisher   string
}

// Item is one installable unit: an extension, or the settings bundle.
// Items are created selected and pending; ID never changes after creation.
type Item struct {
	ID           string
	DisplayName  string
	Description  string
	Version      string
	Publisher    string
	Selected     bool
	Status       Status
	ErrorMessage string

	// Payload is set only on the settings item.
	Payload *settings.Map
}

// newItem wraps a descriptor as a fresh selected, pending item.
func newItem(d Descriptor) *Item {
	return &Item{
		ID:          d.ID,
		DisplayName: d.DisplayName,
		Description: d.Description,
		Version:     d.Version,
		Publisher:   d.Publisher,
		Selected:    true,
		Status:      StatusPending,
	}
}

// IsSettings reports whether the item is the reserved settings bundle.
func (it *Item) IsSettings() bool {
	return it.ID == SettingsItemID
}

// Label returns the name shown in checklists and progress output.
func (it *Item) Label() string {
	if it.DisplayName != "" {
		return it.DisplayName
	}
	return it.ID
}
