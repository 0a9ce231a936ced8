package controls

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-bindings"
)

// Timestamp displays a bound time value using a fixed layout. It also
// accepts preformatted text, so formatters producing strings work unchanged.
type Timestamp struct {
	text   string
	layout string
	style  lipgloss.Style
}

// NewTimestamp constructs a timestamp label. An empty layout defaults to
// time.RFC3339.
func NewTimestamp(layout string) *Timestamp {
	if layout == "" {
		layout = time.RFC3339
	}
	return &Timestamp{
		layout: layout,
		style:  lipgloss.NewStyle().Faint(true),
	}
}

// UpdateValue implements bindings.Updater.
func (t *Timestamp) UpdateValue(value any) {
	if ts, ok := asTime(value); ok {
		t.text = ts.Format(t.layout)
		return
	}
	if text, ok := value.(string); ok {
		t.text = text
	}
}

// AcceptedKinds implements bindings.KindDeclarer.
func (t *Timestamp) AcceptedKinds() []bindings.Kind {
	return []bindings.Kind{bindings.KindTime, bindings.KindText}
}

// BindsRecursively implements bindings.RecursionControl.
func (t *Timestamp) BindsRecursively() bool {
	return false
}

// Text returns the displayed text.
func (t *Timestamp) Text() string {
	return t.text
}

// View renders the timestamp.
func (t *Timestamp) View() string {
	return t.style.Render(t.text)
}
