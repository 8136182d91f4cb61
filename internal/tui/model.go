package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"textenc/internal/domain"
	"textenc/internal/report"
	"textenc/internal/service"
)

// EncoderPort is the TUI-facing subset of the encoding service.
type EncoderPort interface {
	Run(docs []domain.Document, pre domain.PreprocessingConfig, enc domain.EncodingConfig) (service.Result, error)
}

// View selects which section of a result is shown.
type View int

const (
	ViewMatrix View = iota
	ViewSimilarity
	ViewImportance
	ViewProjection
	viewCount
)

var viewNames = [...]string{"Matrix", "Similarity", "Importance", "Projection"}

func (v View) String() string { return viewNames[v] }

const (
	maxNgram        = 3
	maxFeaturesStep = 10
)

// Model is the Bubble Tea model for the encoding explorer. Every option
// change replaces pre or enc with a new value and re-runs the pipeline.
type Model struct {
	service  EncoderPort
	docs     []domain.Document
	pre      domain.PreprocessingConfig
	enc      domain.EncodingConfig
	opts     report.Options
	input    textinput.Model
	viewport viewport.Model
	result   *service.Result
	view     View
	adding   bool
	status   string
	ready    bool
	width    int
	height   int
}

// New creates a new TUI model and runs the first encoding.
func New(svc EncoderPort, docs []domain.Document, pre domain.PreprocessingConfig, enc domain.EncodingConfig) Model {
	ti := textinput.New()
	ti.Prompt = "+ "
	ti.Placeholder = "Type a document and press Enter (Esc cancels)"
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{service: svc, docs: docs, pre: pre, enc: enc, input: ti, viewport: vp}
	return m.rerun()
}

// Init initializes the model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width, m.height = msg.Width, msg.Height
		m = m.resize()
		m.viewport.SetContent(m.renderResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if m.adding {
			return m.updateInput(msg)
		}
		if next, ok := m.handleKey(msg.String()); ok {
			return next, nil
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m = m.closeInput()
		m.status = "Cancelled."
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		m = m.closeInput()
		if text == "" {
			m.status = "Empty document ignored."
			return m, nil
		}
		docs := append([]domain.Document(nil), m.docs...)
		n := len(docs) + 1
		docs = append(docs, domain.Document{ID: fmt.Sprintf("doc-%d", n), Label: fmt.Sprintf("Doc %d", n), Content: text})
		m.docs = docs
		return m.rerun(), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) closeInput() Model {
	m.adding = false
	m.input.Blur()
	m.input.Reset()
	return m.resize()
}

// resize fits the viewport between the header lines and the footer, leaving
// room for the input box while a document is being added.
func (m Model) resize() Model {
	if m.height == 0 {
		return m
	}
	_, rh := resultBoxStyle.GetFrameSize()
	reserved := 4 // header, settings, status, help
	if m.adding {
		_, ih := inputBoxStyle.GetFrameSize()
		reserved += 1 + ih
	}
	m.viewport.Width = max(20, m.width)
	m.viewport.Height = max(3, m.height-reserved-rh)
	return m
}

// handleKey applies an option key. It reports false for keys it does not own.
func (m Model) handleKey(key string) (Model, bool) {
	pre, enc := m.pre, m.enc
	switch key {
	case "1", "2", "3", "4":
		enc.Strategy = domain.Strategies[key[0]-'1']
	case "l":
		pre.Lowercase = !pre.Lowercase
	case "p":
		pre.RemovePunctuation = !pre.RemovePunctuation
	case "s":
		pre.RemoveStopwords = !pre.RemoveStopwords
	case "m":
		pre.Lemmatize = !pre.Lemmatize
	case "b":
		enc.Binary = !enc.Binary
	case "i":
		enc.UseIDF = !enc.UseIDF
	case "+", "=":
		enc.NgramRange.Max = min(enc.NgramRange.Max+1, maxNgram)
	case "-":
		enc.NgramRange.Max = max(enc.NgramRange.Max-1, enc.NgramRange.Min)
	case "]":
		enc.MaxFeatures += maxFeaturesStep
	case "[":
		enc.MaxFeatures = max(enc.MaxFeatures-maxFeaturesStep, 0)
	case "tab":
		m.view = (m.view + 1) % viewCount
		m.viewport.SetContent(m.renderResult())
		m.viewport.GotoTop()
		return m, true
	case "shift+tab":
		m.view = (m.view + viewCount - 1) % viewCount
		m.viewport.SetContent(m.renderResult())
		m.viewport.GotoTop()
		return m, true
	case "a":
		m.adding = true
		m.input.Focus()
		m.status = "Adding a document."
		return m.resize(), true
	default:
		return m, false
	}
	m.pre, m.enc = pre, enc
	return m.rerun(), true
}

// rerun encodes the current documents with the current options.
func (m Model) rerun() Model {
	res, err := m.service.Run(m.docs, m.pre, m.enc)
	if err != nil {
		m.result = nil
		m.status = "Error: " + err.Error()
	} else {
		m.result = &res
		rows, cols := res.Encoding.Dims()
		m.status = fmt.Sprintf("Encoded %d documents into %d features.", rows, cols)
	}
	m.viewport.SetContent(m.renderResult())
	return m
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Text Encoding Explorer") + "  " + m.renderTabs()
	settings := settingsStyle.Render(m.renderSettings())
	results := resultBoxStyle.Render(m.viewport.View())
	statusStyle := okStyle
	if m.result == nil {
		statusStyle = errorStyle
	}
	parts := []string{header, settings, results}
	if m.adding {
		parts = append(parts, inputBoxStyle.Render(m.input.View()))
	}
	parts = append(parts, statusStyle.Render(m.status), helpStyle.Render(helpText))
	return strings.Join(parts, "\n")
}

func (m Model) renderTabs() string {
	tabs := make([]string, viewCount)
	for v := View(0); v < viewCount; v++ {
		if v == m.view {
			tabs[v] = activeTabStyle.Render(v.String())
		} else {
			tabs[v] = tabStyle.Render(v.String())
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderSettings() string {
	maxFeatures := "all"
	if m.enc.MaxFeatures > 0 {
		maxFeatures = fmt.Sprint(m.enc.MaxFeatures)
	}
	return fmt.Sprintf("strategy=%s ngram=%d-%d max_features=%s binary=%s idf=%s | lower=%s punct=%s stop=%s lemma=%s | docs=%d",
		m.enc.Strategy, m.enc.NgramRange.Min, m.enc.NgramRange.Max, maxFeatures,
		onOff(m.enc.Binary), onOff(m.enc.UseIDF),
		onOff(m.pre.Lowercase), onOff(m.pre.RemovePunctuation), onOff(m.pre.RemoveStopwords), onOff(m.pre.Lemmatize),
		len(m.docs))
}

func (m Model) renderResult() string {
	if m.result == nil {
		return "No encoding yet."
	}
	var b strings.Builder
	res := m.result
	switch m.view {
	case ViewMatrix:
		report.Matrix(&b, res.Encoding, m.opts)
	case ViewSimilarity:
		report.Similarity(&b, res.Encoding.Labels(), res.Analytics.Similarity, m.opts)
	case ViewImportance:
		report.Importance(&b, res.Analytics.Importance, m.opts)
	case ViewProjection:
		opts := m.opts
		if m.viewport.Width > 0 {
			opts.ScatterWidth = max(10, m.viewport.Width-6)
		}
		report.Projection(&b, res.Analytics.Projection, opts)
	}
	return b.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

const helpText = "1-4 strategy · l/p/s/m preprocessing · b binary · i idf · +/- ngram · [/] max features · tab view · a add · q quit"

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	settingsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Underline(true).Padding(0, 1)
	okStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)
