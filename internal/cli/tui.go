package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/insightdeck/insightdeck/pkg/deck/sink"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// formatDescriptions explains each output format in the picker.
var formatDescriptions = map[sink.Format]string{
	sink.FormatSVG:  "vector deck, self-contained",
	sink.FormatJSON: "layout document for downstream tooling",
	sink.FormatPNG:  "raster deck (requires rsvg-convert)",
	sink.FormatPDF:  "print-ready deck (requires rsvg-convert)",

	sink.FormatChartPNG: "trend chart only, rasterized in process",
}

// formatPickerModel is the bubbletea model for interactive format selection.
// Space toggles a format, enter confirms, q aborts.
type formatPickerModel struct {
	formats   []sink.Format
	checked   map[int]bool
	cursor    int
	confirmed bool
}

func newFormatPicker(preselected []string) formatPickerModel {
	m := formatPickerModel{
		formats: sink.Formats(),
		checked: make(map[int]bool),
	}
	for i, f := range m.formats {
		for _, p := range preselected {
			if string(f) == p {
				m.checked[i] = true
			}
		}
	}
	return m
}

func (m formatPickerModel) Init() tea.Cmd {
	return nil
}

func (m formatPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.formats)-1 {
				m.cursor++
			}
		case " ":
			m.checked[m.cursor] = !m.checked[m.cursor]
		case "enter":
			if m.selected() != nil {
				m.confirmed = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m formatPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Output Formats"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	for i, f := range m.formats {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		mark := "[ ]"
		if m.checked[i] {
			mark = "[" + styleIconSuccess.Render(iconSuccess) + "]"
		}

		line := fmt.Sprintf("%s%s %-5s %s", cursor, mark, f, listDimStyle.Render(formatDescriptions[f]))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d selected", len(m.selected()))))
	return b.String()
}

// selected returns the checked formats in display order.
func (m formatPickerModel) selected() []string {
	var out []string
	for i, f := range m.formats {
		if m.checked[i] {
			out = append(out, string(f))
		}
	}
	return out
}

// pickFormats runs the interactive format picker. It returns nil when the
// user aborts without confirming.
func pickFormats(preselected []string) ([]string, error) {
	final, err := tea.NewProgram(newFormatPicker(preselected)).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(formatPickerModel)
	if !ok || !m.confirmed {
		return nil, nil
	}
	return m.selected(), nil
}
