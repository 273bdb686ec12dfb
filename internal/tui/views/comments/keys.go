package comments

import (
	"charm.land/bubbles/v2/key"

	"github.com/colonyops/remark/internal/tui/components"
)

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding
	Search       key.Binding
	Edit         key.Binding
	EditName     key.Binding
	EditBody     key.Binding
	ToggleColumn key.Binding
	Open         key.Binding
	Help         key.Binding

	Commit     key.Binding
	CommitBody key.Binding
	Cancel     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPage:     key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
		NextPage:     key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit cell")),
		EditName:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "edit name")),
		EditBody:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "edit body")),
		ToggleColumn: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch column")),
		Open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open comment")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Commit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save name")),
		CommitBody:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save body")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Up, k.NextPage, k.Search, k.Edit, k.Open, k.Help}
}

func (k keyMap) helpSections() []components.HelpSection {
	return []components.HelpSection{
		{Title: "Navigation", Bindings: []key.Binding{k.Up, k.Down, k.PrevPage, k.NextPage, k.Open}},
		{Title: "Search", Bindings: []key.Binding{k.Search, k.Cancel}},
		{Title: "Editing", Bindings: []key.Binding{k.Edit, k.EditName, k.EditBody, k.ToggleColumn, k.Commit, k.CommitBody, k.Cancel}},
	}
}
