// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is a terminal version of the shift form: input and output
// file names, distance, page range, a first-page-right toggle, a start
// button and a status line.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"

	"github.com/pdiddy/bindshift/internal/form"
	"github.com/pdiddy/bindshift/pkg/types"
)

// RunFunc performs one shift. It is called from a bubbletea command, off
// the update loop.
type RunFunc func(ctx context.Context, input, output string, spec types.ShiftSpec) error

type field int

const (
	fieldInput field = iota
	fieldOutput
	fieldShift
	fieldStart
	fieldEnd
	fieldFirstRight
	fieldButton
	fieldCount
)

var labels = [...]string{
	fieldInput:      "PDF file",
	fieldOutput:     "Output file",
	fieldShift:      "Shift (cm)",
	fieldStart:      "Start page",
	fieldEnd:        "End page (blank = last)",
	fieldFirstRight: "First page right",
}

// doneMsg carries the outcome of a run back into the update loop.
type doneMsg struct {
	err error
}

// Model is the bubbletea model of the form.
type Model struct {
	ctx     context.Context
	fs      afero.Fs
	run     RunFunc
	fields  form.Fields
	focus   field
	status  string
	running bool

	// selected is the input path the output name was last derived from.
	selected string
}

// New returns a form with default values. fs is used to check the input
// selection before run is called.
func New(ctx context.Context, fs afero.Fs, run RunFunc) Model {
	return Model{
		ctx:    ctx,
		fs:     fs,
		run:    run,
		fields: form.NewFields(),
	}
}

// Fields returns the current form values.
func (m Model) Fields() form.Fields {
	return m.fields
}

// Status returns the status line.
func (m Model) Status() string {
	return m.status
}

// Running reports whether a shift is in flight.
func (m Model) Running() bool {
	return m.running
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.running = false
		m.status = form.Message(msg.err)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab, tea.KeyDown:
			m.moveFocus(1)
		case tea.KeyShiftTab, tea.KeyUp:
			m.moveFocus(-1)
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyBackspace:
			if p := m.text(); p != nil && *p != "" {
				r := []rune(*p)
				*p = string(r[:len(r)-1])
			}
		case tea.KeyCtrlU:
			if p := m.text(); p != nil {
				*p = ""
			}
		case tea.KeySpace:
			if m.focus == fieldFirstRight {
				m.fields.FirstRight = !m.fields.FirstRight
			} else if p := m.text(); p != nil {
				*p += " "
			}
		case tea.KeyRunes:
			if p := m.text(); p != nil {
				*p += string(msg.Runes)
			} else if string(msg.Runes) == "q" {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// moveFocus cycles the focus by delta. Leaving the input field with a new
// path counts as selecting a file and resets the output name.
func (m *Model) moveFocus(delta int) {
	if m.focus == fieldInput {
		m.selectInput()
	}
	m.focus = (m.focus + field(delta) + fieldCount) % fieldCount
}

func (m *Model) selectInput() {
	in := strings.TrimSpace(m.fields.Input)
	if in == "" || in == m.selected {
		return
	}
	m.fields.SelectInput(in)
	m.selected = in
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}
	if m.focus == fieldInput {
		m.selectInput()
	}

	spec, err := m.fields.Validate(m.fs)
	if err != nil {
		m.status = form.Message(err)
		return m, nil
	}

	m.running = true
	m.status = form.StatusProcessing
	ctx, run := m.ctx, m.run
	input, output := m.fields.Input, m.fields.Output
	return m, func() tea.Msg {
		return doneMsg{err: run(ctx, input, output, spec)}
	}
}

// text returns the focused text field, or nil for the toggle and button.
func (m *Model) text() *string {
	switch m.focus {
	case fieldInput:
		return &m.fields.Input
	case fieldOutput:
		return &m.fields.Output
	case fieldShift:
		return &m.fields.Shift
	case fieldStart:
		return &m.fields.Start
	case fieldEnd:
		return &m.fields.End
	}
	return nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("PDF odd/even page shift"))
	b.WriteString("\n\n")

	values := [...]string{
		fieldInput:  m.fields.Input,
		fieldOutput: m.fields.Output,
		fieldShift:  m.fields.Shift,
		fieldStart:  m.fields.Start,
		fieldEnd:    m.fields.End,
	}
	for f := fieldInput; f <= fieldEnd; f++ {
		b.WriteString(m.label(f))
		v := values[f]
		if f == m.focus {
			v += "█"
		}
		b.WriteString(styleValue.Render(v))
		b.WriteString("\n")
	}

	toggle := "[ ]"
	if m.fields.FirstRight {
		toggle = "[x]"
	}
	b.WriteString(m.label(fieldFirstRight))
	b.WriteString(styleValue.Render(toggle))
	b.WriteString("\n\n")

	button := styleButton
	if m.focus == fieldButton {
		button = styleButtonF
	}
	b.WriteString(button.Render("Start"))
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(m.statusStyle().Render(m.status))
		b.WriteString("\n\n")
	}

	b.WriteString(styleHelp.Render("tab/↓ next  shift+tab/↑ previous  space toggle  ⏎ start  q/esc quit"))
	return b.String()
}

func (m Model) label(f field) string {
	if f == m.focus {
		return styleFocused.Render("▸ " + labels[f])
	}
	return styleLabel.Render("  " + labels[f])
}

func (m Model) statusStyle() lipgloss.Style {
	switch {
	case m.status == form.StatusDone:
		return styleSuccess
	case m.status == form.StatusProcessing:
		return styleHelp
	}
	return styleError
}
