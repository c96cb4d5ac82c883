// Package manifest defines the portable pack file that carries exported
// extensions and settings, and converts it to and from the item collection.
package manifest

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/extkit/extpack/internal/collection"
	"github.com/extkit/extpack/internal/messages"
	"github.com/extkit/extpack/internal/settings"
)

// Meta records where and when a pack was produced.
type Meta struct {
	ExportedAt time.Time `json:"exportedAt"`
	Source     string    `json:"source"`
}

// Extension is one exported extension descriptor.
type Extension struct {
	ID          string `json:"id"`
	Version     string `json:"version,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Description string `json:"description,omitempty"`
}

// Pack is the on-disk export shape.
type Pack struct {
	Meta       Meta          `json:"meta"`
	Extensions []Extension   `json:"extensions"`
	Settings   *settings.Map `json:"settings,omitempty"`
}

// New builds a pack stamped with the current time.
func New(source string, extensions []Extension, userSettings *settings.Map) *Pack {
	pack := &Pack{
		Meta:       Meta{ExportedAt: time.Now().UTC().Truncate(time.Second), Source: source},
		Extensions: extensions,
	}
	if userSettings.Len() > 0 {
		pack.Settings = userSettings
	}
	return pack
}

// HasSettings reports whether the pack carries a non-empty settings object.
func (p *Pack) HasSettings() bool {
	return p.Settings.Len() > 0
}

// Populate replaces the store's contents with the pack's extensions and, when
// settings are present, prepends the settings item.
func (p *Pack) Populate(store *collection.Store) {
	descriptors := make([]collection.Descriptor, 0, len(p.Extensions))
	for _, ext := range p.Extensions {
		descriptors = append(descriptors, collection.Descriptor{
			ID:          ext.ID,
			DisplayName: ext.DisplayName,
			Description: ext.Description,
			Version:     ext.Version,
			Publisher:   ext.Publisher,
		})
	}
	store.LoadAll(descriptors)
	if p.HasSettings() {
		store.UpsertSettings(p.Settings)
	}
}

// Validate returns non-fatal warnings about the pack's contents.
func (p *Pack) Validate() []string {
	var warnings []string
	for i, ext := range p.Extensions {
		if ext.ID == "" {
			warnings = append(warnings, fmt.Sprintf(messages.ManifestMissingIDWarnFmt, i))
			continue
		}
		if ext.Version == "" {
			continue
		}
		if _, err := semver.NewVersion(ext.Version); err != nil {
			warnings = append(warnings, fmt.Sprintf(messages.ManifestVersionWarnFmt, ext.ID, ext.Version))
		}
	}
	return warnings
}

// DropInvalid returns a copy of the pack without extensions lacking an id.
func (p *Pack) DropInvalid() *Pack {
	kept := make([]Extension, 0, len(p.Extensions))
	for _, ext := range p.Extensions {
		if ext.ID != "" {
			kept = append(kept, ext)
		}
	}
	out := *p
	out.Extensions = kept
	return &out
}
