package controls

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-bindings"
)

func TestLabel(t *testing.T) {
	label := NewLabel()
	assert.Equal(t, []bindings.Kind{bindings.KindText}, label.AcceptedKinds())
	assert.False(t, label.BindsRecursively())

	label.UpdateValue("hello")
	assert.Equal(t, "hello", label.Text())

	// non-text deliveries are ignored, the previous value stays
	label.UpdateValue(42)
	assert.Equal(t, "hello", label.Text())
	assert.Equal(t, "hello", label.View())
}

func TestActivityIndicator(t *testing.T) {
	indicator := NewActivityIndicator()
	assert.Equal(t, []bindings.Kind{bindings.KindBool}, indicator.AcceptedKinds())
	assert.Empty(t, indicator.View(), "idle indicator renders nothing")

	indicator.UpdateValue(true)
	require.True(t, indicator.Spinning())
	first := indicator.View()
	assert.NotEmpty(t, first)

	indicator.Tick()
	assert.NotEqual(t, first, indicator.View(), "tick advances the frame")

	indicator.UpdateValue(false)
	assert.False(t, indicator.Spinning())
	assert.Empty(t, indicator.View())
}

func TestPageControl(t *testing.T) {
	pages := NewPageControl(3)
	assert.Equal(t, []bindings.Kind{bindings.KindNumber}, pages.AcceptedKinds())
	assert.Equal(t, 0, pages.CurrentPage())

	pages.UpdateValue(2)
	assert.Equal(t, 2, pages.CurrentPage())

	// out-of-range indices clamp instead of wrapping
	pages.UpdateValue(99)
	assert.Equal(t, 2, pages.CurrentPage())
	pages.UpdateValue(-1)
	assert.Equal(t, 0, pages.CurrentPage())

	pages.UpdateValue("not a number")
	assert.Equal(t, 0, pages.CurrentPage())
}

func TestPageControlMinimumOnePage(t *testing.T) {
	pages := NewPageControl(0)
	pages.UpdateValue(0)
	assert.Equal(t, 0, pages.CurrentPage())
	assert.NotEmpty(t, pages.View())
}

func TestProgressBar(t *testing.T) {
	bar := NewProgressBar(10)
	bar.UpdateValue(0.5)
	assert.InDelta(t, 0.5, bar.Ratio(), 0.0001)

	bar.UpdateValue(2.0)
	assert.Equal(t, 1.0, bar.Ratio(), "ratios clamp to 1")
	bar.UpdateValue(-1)
	assert.Equal(t, 0.0, bar.Ratio(), "ratios clamp to 0")

	// integer deliveries widen like any other number
	bar.UpdateValue(1)
	assert.Equal(t, 1.0, bar.Ratio())
}

func TestTextFieldEditLifecycle(t *testing.T) {
	var committed []string
	field := NewTextField(func(value string) error {
		committed = append(committed, value)
		return nil
	})

	field.UpdateValue("model")
	assert.Equal(t, "model", field.Text())
	assert.False(t, field.Dirty())

	field.SetInput("edited")
	assert.True(t, field.Dirty())
	assert.Equal(t, "edited", field.Text(), "staged edits display immediately")

	require.NoError(t, field.Commit())
	assert.Equal(t, []string{"edited"}, committed)
	assert.False(t, field.Dirty())
	assert.Equal(t, "edited", field.Text())
}

func TestTextFieldModelUpdateDiscardsEdit(t *testing.T) {
	field := NewTextField(nil)
	field.UpdateValue("model")
	field.SetInput("edited")
	require.True(t, field.Dirty())

	field.UpdateValue("fresh model")
	assert.False(t, field.Dirty())
	assert.Equal(t, "fresh model", field.Text())
}

func TestTextFieldCommitErrorKeepsDirty(t *testing.T) {
	boom := errors.New("rejected")
	field := NewTextField(func(string) error { return boom })
	field.UpdateValue("model")
	field.SetInput("edited")

	assert.ErrorIs(t, field.Commit(), boom)
	assert.True(t, field.Dirty(), "a rejected commit keeps the edit staged")
	assert.Equal(t, "edited", field.Text())
}

func TestTimestamp(t *testing.T) {
	ts := NewTimestamp("2006-01-02")
	at := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	ts.UpdateValue(at)
	assert.Equal(t, "2024-05-01", ts.Text())

	// preformatted text passes through for formatter outputs
	ts.UpdateValue("yesterday")
	assert.Equal(t, "yesterday", ts.Text())

	ts.UpdateValue(42)
	assert.Equal(t, "yesterday", ts.Text())

	assert.Equal(t, []bindings.Kind{bindings.KindTime, bindings.KindText}, ts.AcceptedKinds())
}

func TestNumericWidening(t *testing.T) {
	for _, value := range []any{int8(3), int16(3), int32(3), int64(3), uint(3), uint8(3), uint16(3), uint32(3), uint64(3), float32(3), float64(3)} {
		f, ok := asFloat(value)
		require.True(t, ok, "%T must widen", value)
		assert.Equal(t, 3.0, f)
	}
	_, ok := asFloat("3")
	assert.False(t, ok)
}

func TestControlsImplementCapabilities(t *testing.T) {
	elements := []any{
		NewLabel(),
		NewActivityIndicator(),
		NewPageControl(2),
		NewProgressBar(10),
		NewTextField(nil),
		NewTimestamp(""),
	}
	for _, element := range elements {
		_, ok := element.(bindings.Updater)
		assert.True(t, ok, "%T must accept values", element)
		_, ok = element.(bindings.KindDeclarer)
		assert.True(t, ok, "%T must declare kinds", element)
		_, ok = element.(bindings.RecursionControl)
		assert.True(t, ok, "%T must control recursion", element)
	}
}
