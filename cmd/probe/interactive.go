package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/probelab/align-probe/layout"
	"github.com/probelab/align-probe/probe"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	recordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	alignStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	report   *probe.Report
	records  []*layout.Record
	info     layout.Info
	input    textinput.Model
	selected int
	state    modelState
}

type modelState int

const (
	stateSelectRecord modelState = iota
	stateShowReport
	stateAddField
)

func newInteractiveModel(records []*layout.Record) *interactiveModel {
	return &interactiveModel{
		records: records,
		state:   stateSelectRecord,
	}
}

type probedMsg struct {
	err    error
	report *probe.Report
	info   layout.Info
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) probeSelected() tea.Msg {
	rec := m.records[m.selected]

	info, err := layout.NewCalculator().Calculate(rec)
	if err != nil {
		return probedMsg{err: err}
	}

	report, err := probe.Record(nil, rec, probe.Options{})
	if err != nil {
		return probedMsg{err: err}
	}

	return probedMsg{report: report, info: info}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateAddField {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectRecord && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectRecord && m.selected < len(m.records)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectRecord:
				return m, m.probeSelected

			case stateShowReport:
				m.state = stateSelectRecord
				m.report = nil
				m.err = nil

			case stateAddField:
				field, err := parseFieldSpec(m.input.Value())
				if err != nil {
					m.err = err
					return m, nil
				}
				m.records[m.selected].Fields = append(m.records[m.selected].Fields, field)
				m.err = nil
				m.state = stateShowReport
				return m, m.probeSelected
			}

		case "a":
			if m.state == stateShowReport {
				ti := textinput.New()
				ti.Placeholder = "name:size:align"
				ti.Prompt = "new field: "
				ti.Width = 40
				ti.Focus()
				m.input = ti
				m.err = nil
				m.state = stateAddField
				return m, nil
			}

		case "esc":
			switch m.state {
			case stateShowReport:
				m.state = stateSelectRecord
				m.report = nil
				m.err = nil
			case stateAddField:
				m.state = stateShowReport
				m.err = nil
			}
		}

	case probedMsg:
		m.report = msg.report
		m.info = msg.info
		m.err = msg.err
		m.state = stateShowReport
	}

	if m.state == stateAddField {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// parseFieldSpec parses "name:size:align" into a layout field. Layout
// validation happens on the next probe.
func parseFieldSpec(s string) (layout.Field, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return layout.Field{}, fmt.Errorf("want name:size:align, got %q", s)
	}

	size, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return layout.Field{}, fmt.Errorf("size %q: %w", parts[1], err)
	}
	align, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return layout.Field{}, fmt.Errorf("align %q: %w", parts[2], err)
	}

	return layout.Field{Name: parts[0], Size: uint32(size), Align: uint32(align)}, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Alignment Probe"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectRecord:
		b.WriteString("Select a record to probe:\n\n")
		for i, rec := range m.records {
			line := fmt.Sprintf("%s (%d fields)", rec.Name, len(rec.Fields))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + recordStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter probe • q quit"))

	case stateShowReport:
		rec := m.records[m.selected]
		b.WriteString(fmt.Sprintf("Probe of %s", recordStyle.Render(rec.Name)))
		if m.err == nil && m.report != nil {
			b.WriteString(fmt.Sprintf(" (size %d, align %d)", m.info.Size, m.info.Align))
		}
		b.WriteString("\n\n")

		if m.err != nil {
			b.WriteString(badStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else if m.report != nil {
			for _, fc := range m.report.Fields {
				verdict := okStyle.Render("ok")
				if !fc.OK() {
					verdict = badStyle.Render(fmt.Sprintf("off by %d", fc.Remainder))
				}
				b.WriteString(fmt.Sprintf("  %-12s %s  addr %#x  %s\n",
					fc.Name, alignStyle.Render(fmt.Sprintf("align %-3d", fc.Align)), fc.Addr, verdict))
			}
			b.WriteString(fmt.Sprintf("\n  base %#x mod 4/8/16/32: %d, %d, %d, %d\n",
				m.report.Base.Addr, m.report.Base.Mods[0], m.report.Base.Mods[1],
				m.report.Base.Mods[2], m.report.Base.Mods[3]))
		}

		b.WriteString("\n")
		b.WriteString(helpStyle.Render("a add field • enter/esc back • q quit"))

	case stateAddField:
		rec := m.records[m.selected]
		b.WriteString(fmt.Sprintf("Add a field to %s\n\n", recordStyle.Render(rec.Name)))
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(badStyle.Render(fmt.Sprintf("\n%v\n", m.err)))
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter add • esc cancel"))
	}

	return b.String()
}

func runInteractive(records []*layout.Record) error {
	p := tea.NewProgram(newInteractiveModel(records), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
