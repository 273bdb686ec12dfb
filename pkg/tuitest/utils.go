// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes and trailing whitespace so rendered
// output can be matched as plain text.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		result = append(result, strings.TrimRight(line, " "))
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

var namedKeys = map[string]tea.Key{
	"enter":     {Code: tea.KeyEnter},
	"esc":       {Code: tea.KeyEscape},
	"tab":       {Code: tea.KeyTab},
	"backspace": {Code: tea.KeyBackspace},
	"up":        {Code: tea.KeyUp},
	"down":      {Code: tea.KeyDown},
	"left":      {Code: tea.KeyLeft},
	"right":     {Code: tea.KeyRight},
	"space":     {Code: tea.KeySpace, Text: " "},
}

// Key creates a key press message. Named keys ("enter", "esc", "up") and
// ctrl chords ("ctrl+s") are recognised; anything else is typed as the
// first rune of s.
func Key(s string) tea.KeyPressMsg {
	if k, ok := namedKeys[s]; ok {
		return tea.KeyPressMsg(k)
	}
	if rest, ok := strings.CutPrefix(s, "ctrl+"); ok && rest != "" {
		return tea.KeyPressMsg(tea.Key{Code: []rune(rest)[0], Mod: tea.ModCtrl})
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg(tea.Key{Code: r, Text: string(r)})
}

// Type returns one key press per rune of text.
func Type(text string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(text))
	for _, r := range text {
		msgs = append(msgs, tea.KeyPressMsg(tea.Key{Code: r, Text: string(r)}))
	}
	return msgs
}

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}
