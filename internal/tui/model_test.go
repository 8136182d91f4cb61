package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"textenc/internal/domain"
	"textenc/internal/service"
)

type call struct {
	docs []domain.Document
	pre  domain.PreprocessingConfig
	enc  domain.EncodingConfig
}

type recordingPort struct {
	calls []call
	err   error
}

func (r *recordingPort) Run(docs []domain.Document, pre domain.PreprocessingConfig, enc domain.EncodingConfig) (service.Result, error) {
	r.calls = append(r.calls, call{docs: docs, pre: pre, enc: enc})
	if r.err != nil {
		return service.Result{}, r.err
	}
	m := mat.NewDense(len(docs), 1, nil)
	enc2, err := domain.NewEncoding(enc.Strategy, docs, m, []string{"term"})
	if err != nil {
		return service.Result{}, err
	}
	return service.Result{Encoding: enc2}, nil
}

func (r *recordingPort) last() call { return r.calls[len(r.calls)-1] }

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func newModel(port *recordingPort) Model {
	return New(port, domain.DocumentsFromTexts([]string{"one doc", "two doc"}),
		domain.PreprocessingConfig{Lowercase: true}, domain.DefaultEncodingConfig())
}

func TestModel_Options(t *testing.T) {
	port := &recordingPort{}
	m := newModel(port)
	require.Len(t, port.calls, 1)

	t.Run("Should switch strategy and rerun", func(t *testing.T) {
		m := press(t, m, "2")
		assert.Equal(t, domain.StrategyTFIDF, port.last().enc.Strategy)
		assert.Equal(t, domain.StrategyTFIDF, m.enc.Strategy)
	})

	t.Run("Should toggle preprocessing without touching the previous config", func(t *testing.T) {
		before := m.pre
		next := press(t, m, "l", "s")
		assert.False(t, port.last().pre.Lowercase)
		assert.True(t, port.last().pre.RemoveStopwords)
		assert.Equal(t, before, m.pre)
		assert.NotEqual(t, before, next.pre)
	})

	t.Run("Should bound the n-gram range", func(t *testing.T) {
		next := press(t, m, "+", "+", "+", "+")
		assert.Equal(t, maxNgram, next.enc.NgramRange.Max)
		next = press(t, next, "-", "-", "-", "-")
		assert.Equal(t, 1, next.enc.NgramRange.Max)
	})

	t.Run("Should step max features down to unset", func(t *testing.T) {
		next := press(t, m, "]", "]", "[")
		assert.Equal(t, maxFeaturesStep, port.last().enc.MaxFeatures)
		next = press(t, next, "[", "[")
		assert.Equal(t, 0, next.enc.MaxFeatures)
	})

	t.Run("Should cycle views without rerunning", func(t *testing.T) {
		calls := len(port.calls)
		next := press(t, m, "tab", "tab")
		assert.Equal(t, ViewImportance, next.view)
		assert.Len(t, port.calls, calls)
	})
}

func TestModel_AddDocument(t *testing.T) {
	port := &recordingPort{}
	m := newModel(port)

	m = press(t, m, "a", "n", "e", "w", "enter")
	assert.False(t, m.adding)
	require.Len(t, port.last().docs, 3)
	assert.Equal(t, "new", port.last().docs[2].Content)
	assert.Equal(t, "Doc 3", port.last().docs[2].Label)

	calls := len(port.calls)
	m = press(t, m, "a", "x", "esc")
	assert.Len(t, port.calls, calls)
	assert.Len(t, m.docs, 3)
}

func TestModel_ErrorStatus(t *testing.T) {
	port := &recordingPort{err: errors.New("empty vocabulary")}
	m := newModel(port)
	assert.Nil(t, m.result)
	assert.Contains(t, m.status, "empty vocabulary")
	assert.Equal(t, "No encoding yet.", m.renderResult())
}

func TestModel_InputResizesViewport(t *testing.T) {
	m := newModel(&recordingPort{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	full := m.viewport.Height

	_, inputFrame := inputBoxStyle.GetFrameSize()
	m = press(t, m, "a")
	assert.Equal(t, full-1-inputFrame, m.viewport.Height)

	m = press(t, m, "esc")
	assert.Equal(t, full, m.viewport.Height)

	m = press(t, m, "a", "x", "enter")
	assert.Equal(t, full, m.viewport.Height)
}
