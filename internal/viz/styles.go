package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// palette maps the CSS-style color names used in scenario files to hex.
var palette = map[string]string{
	"white":   "#ffffff",
	"black":   "#000000",
	"gray":    "#9e9e9e",
	"grey":    "#9e9e9e",
	"red":     "#ff4444",
	"orange":  "#ffaa33",
	"yellow":  "#ffdd33",
	"green":   "#44dd66",
	"cyan":    "#33dddd",
	"blue":    "#4488ff",
	"purple":  "#aa66ff",
	"magenta": "#ff55cc",
	"brown":   "#aa7744",
}

// ColorHex resolves a color name or passes through a "#rrggbb" value.
// Unknown names fall back to white.
func ColorHex(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if strings.HasPrefix(name, "#") && (len(name) == 7 || len(name) == 4) {
		return name
	}
	if hex, ok := palette[name]; ok {
		return hex
	}
	return palette["white"]
}

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(46)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// BodyStyle colors text in a body's color.
func BodyStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHex(color)))
}

// ProgressBar renders a bar for percent in [0, 1].
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 0.8 {
		return SparkHigh.Render(bar)
	} else if percent > 0.4 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}
