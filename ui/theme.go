package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	accentColor  = color.NRGBA{R: 0x2f, G: 0x80, B: 0xed, A: 0xff}
	runningColor = color.NRGBA{R: 0x27, G: 0xae, B: 0x60, A: 0xff}
)

// CustomTheme tints the default theme with the application colours.
type CustomTheme struct {
	fyne.Theme
}

// NewCustomTheme creates a new instance of the custom theme.
func NewCustomTheme() fyne.Theme {
	return &CustomTheme{Theme: theme.DefaultTheme()}
}

// Color returns the colour for the given name and variant.
func (t *CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return accentColor
	case theme.ColorNameSuccess:
		return runningColor
	}
	return t.Theme.Color(name, variant)
}
