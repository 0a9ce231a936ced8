package controls

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-bindings"
)

// ProgressBar displays a bound ratio in [0, 1].
type ProgressBar struct {
	ratio float64
	width int
	fill  lipgloss.Style
	empty lipgloss.Style
}

// NewProgressBar constructs a bar of the given character width.
func NewProgressBar(width int) *ProgressBar {
	if width < 1 {
		width = 20
	}
	return &ProgressBar{
		width: width,
		fill:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		empty: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

// UpdateValue implements bindings.Updater. Values clamp into [0, 1].
func (p *ProgressBar) UpdateValue(value any) {
	ratio, ok := asFloat(value)
	if !ok {
		return
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	p.ratio = ratio
}

// AcceptedKinds implements bindings.KindDeclarer.
func (p *ProgressBar) AcceptedKinds() []bindings.Kind {
	return []bindings.Kind{bindings.KindNumber}
}

// BindsRecursively implements bindings.RecursionControl.
func (p *ProgressBar) BindsRecursively() bool {
	return false
}

// Ratio returns the displayed ratio.
func (p *ProgressBar) Ratio() float64 {
	return p.ratio
}

// View renders the bar.
func (p *ProgressBar) View() string {
	filled := int(p.ratio * float64(p.width))
	return p.fill.Render(strings.Repeat("█", filled)) +
		p.empty.Render(strings.Repeat("░", p.width-filled))
}
