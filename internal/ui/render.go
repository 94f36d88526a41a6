package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true)
	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))
)

var markStyles = map[string]lipgloss.Style{
	"yellow": lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
	"red":    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderRows())
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	left := "tailspect"
	if m.title != "" {
		left += "  " + m.title
	}
	counts := fmt.Sprintf("%d/%d", m.engine.Len(), m.store.Len())
	if f := m.engine.Filter(); f != nil {
		counts += "  [" + f.Source() + "]"
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(counts)
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + counts)
}

func (m Model) renderRows() string {
	rows := m.pageRows()
	var b strings.Builder
	for row := m.top; row < m.top+rows; row++ {
		idx := m.engine.At(row)
		if idx < 0 {
			b.WriteString("\n")
			continue
		}
		rec := m.store.Get(idx)
		gutter := " "
		if rec.Mark != "" {
			style, ok := markStyles[rec.Mark]
			if !ok {
				style = markStyles["yellow"]
			}
			gutter = style.Render("▌")
		}
		line := rec.Original
		if maxw := m.width - 2; maxw > 0 {
			line = ansi.Truncate(line, maxw, "")
		}
		if idx == m.cursor {
			line = cursorStyle.Width(m.width - 2).Render(line)
		}
		b.WriteString(gutter + " " + line + "\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	if m.mode != modeBrowse {
		prompt := "/"
		if m.mode == modeSearch {
			prompt = "search "
		}
		line := promptStyle.Render(prompt) + m.input.View()
		if err := m.editor.Err(); err != nil {
			line += "  " + errorStyle.Render(err.Error())
		}
		return line
	}
	if m.status != "" {
		return errorStyle.Render(m.status)
	}
	return statusStyle.Render("/ filter  s search  n/N match  m mark  M next mark  q quit")
}
