package controls

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-bindings"
)

// Label displays a bound text value. Labels are leaves: they never propagate
// bindings to children.
type Label struct {
	text  string
	style lipgloss.Style
}

// NewLabel constructs an empty label.
func NewLabel() *Label {
	return &Label{
		style: lipgloss.NewStyle(),
	}
}

// WithStyle replaces the render style.
func (l *Label) WithStyle(style lipgloss.Style) *Label {
	l.style = style
	return l
}

// UpdateValue implements bindings.Updater.
func (l *Label) UpdateValue(value any) {
	if text, ok := value.(string); ok {
		l.text = text
	}
}

// AcceptedKinds implements bindings.KindDeclarer.
func (l *Label) AcceptedKinds() []bindings.Kind {
	return []bindings.Kind{bindings.KindText}
}

// BindsRecursively implements bindings.RecursionControl.
func (l *Label) BindsRecursively() bool {
	return false
}

// Text returns the currently displayed text.
func (l *Label) Text() string {
	return l.text
}

// View renders the label.
func (l *Label) View() string {
	return l.style.Render(l.text)
}
