package controls

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-bindings"
)

// PageControl displays a bound page index as a row of dots with the current
// page highlighted.
type PageControl struct {
	pages   int
	current int
	active  lipgloss.Style
	idle    lipgloss.Style
}

// NewPageControl constructs a control with the given page count.
func NewPageControl(pages int) *PageControl {
	if pages < 1 {
		pages = 1
	}
	return &PageControl{
		pages:  pages,
		active: lipgloss.NewStyle().Foreground(lipgloss.Color("231")),
		idle:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// UpdateValue implements bindings.Updater. Out-of-range indices clamp.
func (p *PageControl) UpdateValue(value any) {
	page, ok := asInt(value)
	if !ok {
		return
	}
	if page < 0 {
		page = 0
	}
	if page >= p.pages {
		page = p.pages - 1
	}
	p.current = page
}

// AcceptedKinds implements bindings.KindDeclarer.
func (p *PageControl) AcceptedKinds() []bindings.Kind {
	return []bindings.Kind{bindings.KindNumber}
}

// BindsRecursively implements bindings.RecursionControl.
func (p *PageControl) BindsRecursively() bool {
	return false
}

// CurrentPage returns the highlighted page index.
func (p *PageControl) CurrentPage() int {
	return p.current
}

// View renders the dot row.
func (p *PageControl) View() string {
	var b strings.Builder
	for i := 0; i < p.pages; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		if i == p.current {
			b.WriteString(p.active.Render("●"))
		} else {
			b.WriteString(p.idle.Render("○"))
		}
	}
	return b.String()
}
