package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/christopherklint97/contribcal/internal/heatmap"
	"github.com/dustin/go-humanize"
)

// Terminal layout, in character cells.
const (
	labelWidth    = 4 // "Mon "
	cellWidth     = 2 // glyph + gap
	monthRow      = 1 // rows above the first weekday row
	tooltipOffset = 1
	cellGlyph     = "■"
	cursorGlyph   = "▣"
)

var weekdayLabels = [7]string{"", "Mon", "", "Wed", "", "Fri", ""}

func cellRect(week, weekday int) heatmap.Rect {
	return heatmap.Rect{
		Left:   float64(labelWidth + week*cellWidth),
		Top:    float64(monthRow + weekday),
		Width:  1,
		Height: 1,
	}
}

func gridRect(weeks int) heatmap.Rect {
	return heatmap.Rect{
		Width:  float64(labelWidth + weeks*cellWidth),
		Height: float64(monthRow + 7),
	}
}

func (a *App) gridView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("@" + a.username))
	b.WriteString("\n")
	b.WriteString(a.tooltipLine())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(monthLine(a.calendar)))
	b.WriteString("\n")

	for weekday := 0; weekday < 7; weekday++ {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%-*s", labelWidth, weekdayLabels[weekday])))
		for wi, week := range a.calendar.Weeks {
			b.WriteString(a.renderCell(week[weekday], wi, weekday))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(totalStyle.Render(humanize.Comma(int64(a.calendar.Total))))
	b.WriteString(dimStyle.Render(fmt.Sprintf(" contributions in %d", a.calendar.Year)))
	b.WriteString("    ")
	b.WriteString(a.legend())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(a.help.View(a.keys)))

	return b.String()
}

func (a *App) renderCell(d heatmap.Day, week, weekday int) string {
	if week == a.cursorWeek && weekday == a.cursorDay {
		if _, ok := a.tooltip.Current(); ok {
			return cursorStyle.Render(cursorGlyph)
		}
	}
	return a.styles[heatmap.ClampLevel(d.Level)].Render(cellGlyph)
}

func (a *App) legend() string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("Less "))
	for _, s := range a.styles {
		b.WriteString(s.Render(cellGlyph))
	}
	b.WriteString(dimStyle.Render(" More"))
	return b.String()
}

// tooltipLine centers the tooltip text on the hovered column.
func (a *App) tooltipLine() string {
	t, ok := a.tooltip.Current()
	if !ok {
		return ""
	}
	text := " " + t.Text() + " "
	width := lipgloss.Width(text)

	left := int(t.X) - width/2
	limit := int(gridRect(len(a.calendar.Weeks)).Width)
	if a.width > 0 && a.width < limit {
		limit = a.width
	}
	if left+width > limit {
		left = limit - width
	}
	if left < 0 {
		left = 0
	}
	return strings.Repeat(" ", left) + tooltipStyle.Render(text)
}

// monthLine places each month label above its anchor week.
func monthLine(cal heatmap.Calendar) string {
	line := []rune(strings.Repeat(" ", labelWidth+len(cal.Weeks)*cellWidth))
	for _, m := range cal.Months {
		pos := labelWidth + m.WeekIndex*cellWidth
		for i, r := range m.Text {
			if pos+i < len(line) {
				line[pos+i] = r
			}
		}
	}
	return strings.TrimRight(string(line), " ")
}
