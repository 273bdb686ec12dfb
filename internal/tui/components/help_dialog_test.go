package components

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	"github.com/stretchr/testify/assert"
)

func TestHelpDialog_RendersSections(t *testing.T) {
	d := NewHelpDialog("Keyboard Shortcuts", []HelpSection{
		{
			Title: "Navigation",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("j"), key.WithHelp("j/k", "move")),
			},
		},
		{
			Title: "Editing",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit cell")),
				key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"), key.WithDisabled()),
			},
		},
	})

	out := d.View()
	assert.Contains(t, out, "Keyboard Shortcuts")
	assert.Contains(t, out, "Navigation")
	assert.Contains(t, out, "edit cell")
	assert.NotContains(t, out, "hidden")
}

func TestOverlay_KeepsBackgroundOutsideModal(t *testing.T) {
	bg := "background line\nsecond line\nthird line"
	out := Overlay(bg, "M", 20, 3)
	assert.Contains(t, out, "M")
	assert.Contains(t, out, "third line")
}

func TestPad(t *testing.T) {
	assert.Equal(t, "", Pad(-1))
	assert.Equal(t, "   ", Pad(3))
	assert.Len(t, Pad(250), 250)
	assert.Len(t, Pad(maxCachedPad), maxCachedPad)
	assert.Equal(t, strings.Repeat(" ", 300), Pad(300))
}
