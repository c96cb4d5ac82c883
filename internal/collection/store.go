package collection

import (
	"github.com/extkit/extpack/internal/messages"
	"github.com/extkit/extpack/internal/settings"
)

// Event signals a store change. A nil Item means "something changed,
// re-read everything"; a non-nil Item narrows the change to that item.
// Either way consumers re-query the store; the item is a hint, not an
// alternate data source.
type Event struct {
	Item *Item
}

// Store owns the ordered list of items. It is mutated only from the single
// sequential context that drives the workflow, so it carries no locking.
type Store struct {
	items  []*Item
	events chan Event
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{events: make(chan Event, eventBuffer)}
}

// eventBuffer bounds pending notifications; sends never block and drop when
// the consumer lags, since consumers re-read the store on every event anyway.
const eventBuffer = 64

// Events returns the change notification channel.
func (s *Store) Events() <-chan Event {
	return s.events
}

func (s *Store) notify(item *Item) {
	select {
	case s.events <- Event{Item: item}:
	default:
	}
}

// LoadAll replaces the whole collection with fresh items wrapped from
// descriptors: all selected, all pending, order preserved.
func (s *Store) LoadAll(descriptors []Descriptor) {
	items := make([]*Item, 0, len(descriptors))
	for _, d := range descriptors {
		items = append(items, newItem(d))
	}
	s.items = items
	s.notify(nil)
}

// UpsertSettings removes any existing settings item and prepends a fresh one
// carrying payload, so the collection holds at most one and it is always first.
func (s *Store) UpsertSettings(payload *settings.Map) {
	kept := s.items[:0]
	for _, it := range s.items {
		if !it.IsSettings() {
			kept = append(kept, it)
		}
	}
	item := newItem(Descriptor{
		ID:          SettingsItemID,
		DisplayName: messages.PickerSettingsRow,
		Description: "Editor user settings from the pack",
	})
	item.Payload = payload
	s.items = append([]*Item{item}, kept...)
	s.notify(nil)
}

// Items returns the items in order. The slice is a copy; the items are shared.
func (s *Store) Items() []*Item {
	out := make([]*Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// Find returns the item with the given id, or nil.
func (s *Store) Find(id string) *Item {
	for _, it := range s.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// SelectAll marks every item selected.
func (s *Store) SelectAll() {
	for _, it := range s.items {
		it.Selected = true
	}
	s.notify(nil)
}

// DeselectAll clears the selection on every item.
func (s *Store) DeselectAll() {
	for _, it := range s.items {
		it.Selected = false
	}
	s.notify(nil)
}

// Toggle sets one item's selection from a checkbox event. No notification is
// sent: the widget that raised the event already shows the new state.
func (s *Store) Toggle(id string, checked bool) {
	if it := s.Find(id); it != nil {
		it.Selected = checked
	}
}

// SetStatus updates one item's install status. An unknown id is a no-op.
// errorMessage is recorded only for StatusFailed and cleared otherwise.
func (s *Store) SetStatus(id string, status Status, errorMessage string) {
	it := s.Find(id)
	if it == nil {
		return
	}
	it.Status = status
	if status == StatusFailed {
		it.ErrorMessage = errorMessage
	} else {
		it.ErrorMessage = ""
	}
	s.notify(it)
}

// Selected returns the selected items in their original order.
func (s *Store) Selected() []*Item {
	var out []*Item
	for _, it := range s.items {
		if it.Selected {
			out = append(out, it)
		}
	}
	return out
}
