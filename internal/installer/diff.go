package installer

import (
	"github.com/aymanbagabas/go-udiff"

	"github.com/extkit/extpack/internal/settings"
)

// SettingsDiff renders a unified diff of the current on-disk settings against
// the result of merging payload over them, for preview before a run. An
// unreadable current file diffs against empty settings, matching what the
// workflow would write. An empty string means no change.
func SettingsDiff(path string, payload *settings.Map) (string, error) {
	current, err := settings.Load(path)
	if err != nil {
		current = settings.NewMap()
	}
	merged := settings.Merge(current, payload)

	before, err := current.MarshalIndent()
	if err != nil {
		return "", err
	}
	after, err := merged.MarshalIndent()
	if err != nil {
		return "", err
	}
	if string(before) == string(after) {
		return "", nil
	}
	return udiff.Unified("current", "merged", string(before)+"\n", string(after)+"\n"), nil
}
