package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors a theme is built from.
type Palette struct {
	Primary    lipgloss.AdaptiveColor
	Secondary  lipgloss.AdaptiveColor
	Warning    lipgloss.AdaptiveColor
	Error      lipgloss.AdaptiveColor
	Text       lipgloss.AdaptiveColor
	TextMuted  lipgloss.AdaptiveColor
	TextSubtle lipgloss.AdaptiveColor
	Surface    lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor
	Selection  lipgloss.AdaptiveColor
}

func same(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
}

// DarkPalette is the default palette.
func DarkPalette() Palette {
	return Palette{
		Primary:    lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"},
		Secondary:  lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"},
		Warning:    lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"},
		Error:      lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"},
		Text:       lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#F9FAFB"},
		TextMuted:  lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		TextSubtle: lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"},
		Surface:    lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"},
		Border:     lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"},
		Selection:  lipgloss.AdaptiveColor{Light: "#EDE9FE", Dark: "#312E81"},
	}
}

// LightPalette ignores the terminal background.
func LightPalette() Palette {
	return Palette{
		Primary:    same("#7C3AED"),
		Secondary:  same("#2563EB"),
		Warning:    same("#D97706"),
		Error:      same("#DC2626"),
		Text:       same("#1F2937"),
		TextMuted:  same("#6B7280"),
		TextSubtle: same("#9CA3AF"),
		Surface:    same("#F3F4F6"),
		Border:     same("#E5E7EB"),
		Selection:  same("#EDE9FE"),
	}
}

// DraculaPalette follows draculatheme.com.
func DraculaPalette() Palette {
	return Palette{
		Primary:    same("#BD93F9"),
		Secondary:  same("#8BE9FD"),
		Warning:    same("#FFB86C"),
		Error:      same("#FF5555"),
		Text:       same("#F8F8F2"),
		TextMuted:  same("#6272A4"),
		TextSubtle: same("#44475A"),
		Surface:    same("#282A36"),
		Border:     same("#44475A"),
		Selection:  same("#44475A"),
	}
}

// NordPalette follows nordtheme.com.
func NordPalette() Palette {
	return Palette{
		Primary:    same("#88C0D0"),
		Secondary:  same("#81A1C1"),
		Warning:    same("#EBCB8B"),
		Error:      same("#BF616A"),
		Text:       same("#ECEFF4"),
		TextMuted:  same("#D8DEE9"),
		TextSubtle: same("#4C566A"),
		Surface:    same("#3B4252"),
		Border:     same("#4C566A"),
		Selection:  same("#434C5E"),
	}
}

// GruvboxPalette follows the gruvbox dark palette.
func GruvboxPalette() Palette {
	return Palette{
		Primary:    lipgloss.AdaptiveColor{Light: "#D79921", Dark: "#FABD2F"},
		Secondary:  same("#83A598"),
		Warning:    same("#FE8019"),
		Error:      same("#FB4934"),
		Text:       same("#EBDBB2"),
		TextMuted:  same("#A89984"),
		TextSubtle: same("#665C54"),
		Surface:    same("#3C3836"),
		Border:     same("#504945"),
		Selection:  same("#504945"),
	}
}
