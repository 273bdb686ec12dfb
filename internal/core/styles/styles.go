// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	SuccessStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style

	// Text styles.
	TextForegroundStyle  lipgloss.Style
	TextPrimaryStyle     lipgloss.Style
	TextPrimaryBoldStyle lipgloss.Style
	TextMutedStyle       lipgloss.Style
	TextSuccessStyle     lipgloss.Style
	TextErrorStyle       lipgloss.Style
	TextSurfaceStyle     lipgloss.Style
	TextWarningStyle     lipgloss.Style

	TextForegroundBoldStyle lipgloss.Style

	// Shell.
	BrandStyle       lipgloss.Style
	BrandAccentStyle lipgloss.Style
	SubtitleStyle    lipgloss.Style

	// Table.
	TableHeaderStyle  lipgloss.Style
	RowEvenStyle      lipgloss.Style
	RowOddStyle       lipgloss.Style
	RowSelectedStyle  lipgloss.Style
	CellFocusedStyle  lipgloss.Style
	EditingLabelStyle lipgloss.Style

	// Search and pagination.
	SearchPromptStyle lipgloss.Style
	PagerStyle        lipgloss.Style
	PagerDisabled     lipgloss.Style
	HelpStyle         lipgloss.Style

	// Modals.
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style

	// Help dialog styles.
	HelpDialogModalStyle   lipgloss.Style
	HelpDialogSectionStyle lipgloss.Style
	HelpDialogHelpStyle    lipgloss.Style

	// Toasts.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style

	// Editor.
	EditorStyle lipgloss.Style
)

// ColorPool is used for deterministic color hashing of post titles and email domains.
var ColorPool []color.Color

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)

	TextForegroundStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TextPrimaryStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextErrorStyle = lipgloss.NewStyle().Foreground(ColorError)
	TextSurfaceStyle = lipgloss.NewStyle().Foreground(ColorSurface)
	TextWarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	TextForegroundBoldStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)

	BrandStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	BrandAccentStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	TableHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Bold(true)
	RowEvenStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	RowOddStyle = lipgloss.NewStyle().Foreground(ColorForeground).Faint(true)
	RowSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorSurface)
	CellFocusedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Underline(true)
	EditingLabelStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)

	SearchPromptStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	PagerStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	PagerDisabled = lipgloss.NewStyle().Foreground(ColorSurface)
	HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	HelpDialogModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	HelpDialogSectionStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	HelpDialogHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toastBase.BorderForeground(ColorSuccess).Foreground(ColorForeground)
	ToastWarningStyle = toastBase.BorderForeground(ColorWarning).Foreground(ColorForeground)
	ToastErrorStyle = toastBase.BorderForeground(ColorError).Foreground(ColorError)

	EditorStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorWarning).
		PaddingLeft(1)

	ColorPool = []color.Color{
		ColorPrimary,
		ColorSecondary,
		ColorSuccess,
		ColorWarning,
		ColorError,
	}
}

// ColorForString returns a deterministic color for a given string.
// The same string always produces the same color.
func ColorForString(s string) color.Color {
	var hash uint32
	for _, c := range s {
		hash = hash*31 + uint32(c)
	}
	return ColorPool[hash%uint32(len(ColorPool))]
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
