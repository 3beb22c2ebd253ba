// Package theme defines color themes for the julmat TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps checklist roles to colors.
type Theme struct {
	Name string

	Border       lipgloss.Color // card and table edges
	BorderAccent lipgloss.Color // header box
	TextDim      lipgloss.Color // unchecked boxes, empty bar cells
	TextMuted    lipgloss.Color // labels, categories, finished item names
	TextPrimary  lipgloss.Color // item names
	Accent       lipgloss.Color // family names, key hints
	AccentBright lipgloss.Color // title, cursor marker

	Bought lipgloss.Color // [x] Handlad
	Cooked lipgloss.Color // [x] Lagad

	// Progress, from first check to a finished family.
	Started  lipgloss.Color
	Partial  lipgloss.Color
	Done     lipgloss.Color
	Complete lipgloss.Color

	InView lipgloss.Color // "n i vyn" pill
	Error  lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default: warm paper tones on near-black.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Bought:       lipgloss.Color("#4385BE"),
	Cooked:       lipgloss.Color("#879A39"),
	Started:      lipgloss.Color("#DA702C"),
	Partial:      lipgloss.Color("#D0A215"),
	Done:         lipgloss.Color("#879A39"),
	Complete:     lipgloss.Color("#A3B859"),
	InView:       lipgloss.Color("#DA702C"),
	Error:        lipgloss.Color("#D14D41"),
}

// CatppuccinMocha uses soft pastels.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Border:       lipgloss.Color("#585B70"),
	BorderAccent: lipgloss.Color("#89B4FA"),
	TextDim:      lipgloss.Color("#6C7086"),
	TextMuted:    lipgloss.Color("#A6ADC8"),
	TextPrimary:  lipgloss.Color("#CDD6F4"),
	Accent:       lipgloss.Color("#89B4FA"),
	AccentBright: lipgloss.Color("#B4D0FB"),
	Bought:       lipgloss.Color("#74C7EC"),
	Cooked:       lipgloss.Color("#A6E3A1"),
	Started:      lipgloss.Color("#FAB387"),
	Partial:      lipgloss.Color("#F9E2AF"),
	Done:         lipgloss.Color("#A6E3A1"),
	Complete:     lipgloss.Color("#C6F6C1"),
	InView:       lipgloss.Color("#F5C2E7"),
	Error:        lipgloss.Color("#F38BA8"),
}

// TokyoNight is cool blue and purple.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Border:       lipgloss.Color("#565F89"),
	BorderAccent: lipgloss.Color("#7AA2F7"),
	TextDim:      lipgloss.Color("#565F89"),
	TextMuted:    lipgloss.Color("#A9B1D6"),
	TextPrimary:  lipgloss.Color("#C0CAF5"),
	Accent:       lipgloss.Color("#7AA2F7"),
	AccentBright: lipgloss.Color("#A9C1FF"),
	Bought:       lipgloss.Color("#7DCFFF"),
	Cooked:       lipgloss.Color("#9ECE6A"),
	Started:      lipgloss.Color("#FF9E64"),
	Partial:      lipgloss.Color("#E0AF68"),
	Done:         lipgloss.Color("#9ECE6A"),
	Complete:     lipgloss.Color("#B9E87A"),
	InView:       lipgloss.Color("#BB9AF7"),
	Error:        lipgloss.Color("#F7768E"),
}

// Terminal sticks to the 16 ANSI colors.
var Terminal = Theme{
	Name:         "terminal",
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Bought:       lipgloss.Color("4"),
	Cooked:       lipgloss.Color("2"),
	Started:      lipgloss.Color("3"),
	Partial:      lipgloss.Color("11"),
	Done:         lipgloss.Color("2"),
	Complete:     lipgloss.Color("10"),
	InView:       lipgloss.Color("5"),
	Error:        lipgloss.Color("1"),
}

// All lists the themes offered in setup.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns the named theme, or FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive switches Active to the named theme.
func SetActive(name string) {
	Active = ByName(name)
}
