// Package overlay renders the engine's debug surface: the list of currently
// bound elements with their key paths, resolution status and last applied
// value. It only reads BindingInfo rows; it never mutates engine state.
package overlay

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-bindings"
)

// Styles groups the lipgloss styles used by the overlay table.
type Styles struct {
	Header lipgloss.Style
	Bound  lipgloss.Style
	Failed lipgloss.Style
	Muted  lipgloss.Style
}

// DefaultStyles returns the stock overlay styling.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")),
		Bound:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Failed: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Overlay renders binding debug information.
type Overlay struct {
	styles Styles
}

// New constructs an overlay with default styling.
func New() *Overlay {
	return &Overlay{styles: DefaultStyles()}
}

// WithStyles replaces the overlay styling.
func (o *Overlay) WithStyles(styles Styles) *Overlay {
	o.styles = styles
	return o
}

// Render produces a styled table of binding rows.
func (o *Overlay) Render(infos []bindings.BindingInfo) string {
	var b strings.Builder
	b.WriteString(o.styles.Header.Render(fmt.Sprintf("%-20s %-28s %-10s %s", "NODE", "KEYPATH", "STATUS", "VALUE")))
	b.WriteString("\n")
	for _, info := range infos {
		b.WriteString(o.renderRow(info))
		b.WriteString("\n")
	}
	if len(infos) == 0 {
		b.WriteString(o.styles.Muted.Render("no bindings"))
		b.WriteString("\n")
	}
	return b.String()
}

func (o *Overlay) renderRow(info bindings.BindingInfo) string {
	status := o.styles.Muted
	switch info.Status {
	case bindings.StatusBound:
		status = o.styles.Bound
	case bindings.StatusFailed:
		status = o.styles.Failed
	}
	value := ""
	switch {
	case info.HasValue:
		value = fmt.Sprintf("%v", info.LastValue)
	case info.Err != nil:
		value = info.Err.Error()
	}
	return fmt.Sprintf("%-20s %-28s %-10s %s",
		truncate(info.Node, 20),
		truncate(info.KeyPath, 28),
		status.Render(info.Status.String()),
		truncate(value, 48),
	)
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "…"
}

// row is the JSON shape of one binding for export.
type row struct {
	Node      string `json:"node"`
	NodeID    string `json:"node_id"`
	KeyPath   string `json:"key_path"`
	Formatter string `json:"formatter,omitempty"`
	Scope     string `json:"scope,omitempty"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LastValue any    `json:"last_value,omitempty"`
}

// RenderJSON exports binding rows as indented JSON, for hosts that ship the
// debug surface somewhere other than a terminal.
func RenderJSON(infos []bindings.BindingInfo) ([]byte, error) {
	rows := make([]row, 0, len(infos))
	for _, info := range infos {
		r := row{
			Node:      info.Node,
			NodeID:    info.NodeID.String(),
			KeyPath:   info.KeyPath,
			Formatter: info.Formatter,
			Scope:     info.Scope,
			Status:    info.Status.String(),
		}
		if info.Err != nil {
			r.Error = info.Err.Error()
		}
		if info.HasValue {
			r.LastValue = info.LastValue
		}
		rows = append(rows, r)
	}
	return json.MarshalIndent(rows, "", "  ")
}
