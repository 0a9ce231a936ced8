package controls

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-bindings"
)

// ActivityIndicator displays a bound boolean as a busy marker: spinning while
// the value is true, hidden otherwise.
type ActivityIndicator struct {
	spinning bool
	frame    int
	style    lipgloss.Style
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewActivityIndicator constructs a stopped indicator.
func NewActivityIndicator() *ActivityIndicator {
	return &ActivityIndicator{
		style: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
	}
}

// UpdateValue implements bindings.Updater.
func (a *ActivityIndicator) UpdateValue(value any) {
	if spinning, ok := value.(bool); ok {
		a.spinning = spinning
	}
}

// AcceptedKinds implements bindings.KindDeclarer.
func (a *ActivityIndicator) AcceptedKinds() []bindings.Kind {
	return []bindings.Kind{bindings.KindBool}
}

// BindsRecursively implements bindings.RecursionControl.
func (a *ActivityIndicator) BindsRecursively() bool {
	return false
}

// Spinning reports whether the indicator is animating.
func (a *ActivityIndicator) Spinning() bool {
	return a.spinning
}

// Tick advances the animation one frame. Hosts call it from their own timer.
func (a *ActivityIndicator) Tick() {
	if a.spinning {
		a.frame = (a.frame + 1) % len(spinnerFrames)
	}
}

// View renders the indicator; an idle indicator renders empty.
func (a *ActivityIndicator) View() string {
	if !a.spinning {
		return ""
	}
	return a.style.Render(spinnerFrames[a.frame])
}
