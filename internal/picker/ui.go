// Package picker presents the install checklist and confirmation prompts.
package picker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	"github.com/extkit/extpack/internal/messages"
	"github.com/extkit/extpack/internal/terminal"
)

// Option is one checklist row.
type Option struct {
	Label    string
	Value    string
	Selected bool
}

// UI defines the interaction methods the install flow needs.
type UI interface {
	MultiSelect(title string, options []Option, selected *[]string) error
	Confirm(title string, value *bool) error
}

// HuhUI implements UI using charmbracelet/huh forms.
type HuhUI struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI creates a HuhUI using the default terminal check.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive}
}

// ensureInteractive returns an error when the UI is invoked without a terminal.
func (ui *HuhUI) ensureInteractive() error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return fmt.Errorf(messages.InstallRequiresTerminal)
}

// pickerKeyMap keeps huh's defaults but makes Ctrl+C the only quit binding,
// so Esc inside the filterable list never exits the whole flow.
func pickerKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c"))
	return km
}

func (ui *HuhUI) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).WithKeyMap(pickerKeyMap())
	return runFormFunc(form)
}

// MultiSelect shows a checkbox list and writes the chosen values to selected.
func (ui *HuhUI) MultiSelect(title string, options []Option, selected *[]string) error {
	if err := ui.ensureInteractive(); err != nil {
		return err
	}
	opts := make([]huh.Option[string], 0, len(options))
	for _, opt := range options {
		opts = append(opts, huh.NewOption(opt.Label, opt.Value).Selected(opt.Selected))
	}
	field := huh.NewMultiSelect[string]().
		Title(title).
		Options(opts...).
		Value(selected)
	return ui.run(field)
}

// Confirm asks a yes/no question.
func (ui *HuhUI) Confirm(title string, value *bool) error {
	if err := ui.ensureInteractive(); err != nil {
		return err
	}
	field := huh.NewConfirm().Title(title).Value(value)
	return ui.run(field)
}
