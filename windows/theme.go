package windows

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	colorBackground = color.NRGBA{R: 0xe8, G: 0xf6, B: 0xfa, A: 0xff}
	colorHeader     = color.NRGBA{R: 0x93, G: 0xc5, B: 0xfd, A: 0xff}
	colorUpload     = color.NRGBA{R: 0xfd, G: 0xbe, B: 0xfb, A: 0xff}
	colorHeaderText = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

var lightPalette = map[fyne.ThemeColorName]color.Color{
	theme.ColorNameBackground:      colorBackground,
	theme.ColorNameButton:          colorUpload,
	theme.ColorNamePrimary:         colorHeader,
	theme.ColorNameHover:           colorHeader,
	theme.ColorNameFocus:           color.NRGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 0xff},
	theme.ColorNameForeground:      color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff},
	theme.ColorNameInputBackground: color.White,
	theme.ColorNameSelection:       color.NRGBA{R: 0xbb, G: 0xde, B: 0xfb, A: 0xff},
}

var darkPalette = map[fyne.ThemeColorName]color.Color{
	theme.ColorNameBackground:      color.NRGBA{R: 0x1e, G: 0x24, B: 0x2a, A: 0xff},
	theme.ColorNameButton:          color.NRGBA{R: 0x8b, G: 0x3d, B: 0x88, A: 0xff},
	theme.ColorNamePrimary:         color.NRGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 0xff},
	theme.ColorNameHover:           color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
	theme.ColorNameForeground:      color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
	theme.ColorNameInputBackground: color.NRGBA{R: 0x2d, G: 0x2d, B: 0x2d, A: 0xff},
}

var sizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:            6,
	theme.SizeNameText:               14,
	theme.SizeNameHeadingText:        22,
	theme.SizeNameSeparatorThickness: 1,
}

// DashboardTheme is the sky palette of the weather dashboard. Anything it
// does not set comes from the default theme.
type DashboardTheme struct{}

var _ fyne.Theme = (*DashboardTheme)(nil)

func (DashboardTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	palette := lightPalette
	if variant == theme.VariantDark {
		palette = darkPalette
	}
	if c, ok := palette[name]; ok {
		return c
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (DashboardTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (DashboardTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (DashboardTheme) Size(name fyne.ThemeSizeName) float32 {
	if s, ok := sizes[name]; ok {
		return s
	}
	return theme.DefaultTheme().Size(name)
}
