package controls

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-bindings"
)

// TextField displays a bound text value and accepts user edits. The engine
// only pushes model values into the field; committing an edit back to the
// model goes through the ModelUpdater extension point, which hosts invoke
// themselves when input is confirmed.
type TextField struct {
	value    string
	edited   string
	dirty    bool
	onCommit func(value string) error
	style    lipgloss.Style
}

// NewTextField constructs an empty field. onCommit receives confirmed edits;
// nil means edits are accepted and dropped.
func NewTextField(onCommit func(value string) error) *TextField {
	return &TextField{
		onCommit: onCommit,
		style:    lipgloss.NewStyle().Underline(true),
	}
}

// UpdateValue implements bindings.Updater. A model update discards any
// pending edit.
func (f *TextField) UpdateValue(value any) {
	if text, ok := value.(string); ok {
		f.value = text
		f.edited = text
		f.dirty = false
	}
}

// AcceptedKinds implements bindings.KindDeclarer.
func (f *TextField) AcceptedKinds() []bindings.Kind {
	return []bindings.Kind{bindings.KindText}
}

// BindsRecursively implements bindings.RecursionControl.
func (f *TextField) BindsRecursively() bool {
	return false
}

// UpdateModel implements bindings.ModelUpdater. The engine never calls it;
// hosts do, after the user confirms input.
func (f *TextField) UpdateModel(value any) error {
	text, ok := value.(string)
	if !ok {
		text = f.edited
	}
	if f.onCommit != nil {
		if err := f.onCommit(text); err != nil {
			return err
		}
	}
	f.value = text
	f.dirty = false
	return nil
}

// SetInput stages a user edit without committing it.
func (f *TextField) SetInput(text string) {
	f.edited = text
	f.dirty = f.edited != f.value
}

// Commit pushes the staged edit through UpdateModel.
func (f *TextField) Commit() error {
	return f.UpdateModel(f.edited)
}

// Text returns the displayed value, preferring a staged edit.
func (f *TextField) Text() string {
	if f.dirty {
		return f.edited
	}
	return f.value
}

// Dirty reports whether an uncommitted edit is staged.
func (f *TextField) Dirty() bool {
	return f.dirty
}

// View renders the field.
func (f *TextField) View() string {
	return f.style.Render(f.Text())
}
