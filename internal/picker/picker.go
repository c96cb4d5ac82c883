package picker

import (
	"fmt"

	"github.com/extkit/extpack/internal/collection"
	"github.com/extkit/extpack/internal/messages"
)

// Pick shows the checklist for every item in the store and writes the user's
// choices back through the store's selection operations. The settings item,
// when present, is always the first row.
func Pick(ui UI, store *collection.Store) error {
	items := store.Items()
	if len(items) == 0 {
		return nil
	}

	options := make([]Option, 0, len(items))
	var selected []string
	for _, item := range items {
		options = append(options, Option{
			Label:    rowLabel(item),
			Value:    item.ID,
			Selected: item.Selected,
		})
		if item.Selected {
			selected = append(selected, item.ID)
		}
	}

	if err := ui.MultiSelect(messages.PickerTitle, options, &selected); err != nil {
		return err
	}

	chosen := make(map[string]bool, len(selected))
	for _, id := range selected {
		chosen[id] = true
	}
	for _, item := range items {
		store.Toggle(item.ID, chosen[item.ID])
	}
	return nil
}

// rowLabel renders one checklist row: name, version, and publisher when known.
func rowLabel(item *collection.Item) string {
	label := item.Label()
	if item.Version != "" {
		label = fmt.Sprintf("%s (%s)", label, item.Version)
	}
	if item.Publisher != "" {
		label = fmt.Sprintf("%s · %s", label, item.Publisher)
	}
	return label
}
