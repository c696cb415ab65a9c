package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/timekeeper/internal/payroll"
)

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	cell     lipgloss.Style
	amount   lipgloss.Style
	muted    lipgloss.Style
	box      lipgloss.Style
	slotFree lipgloss.Style
	slots    map[payroll.SlotStatus]lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		header: lipgloss.NewStyle().Bold(true).Underline(true),
		cell:   lipgloss.NewStyle().PaddingRight(2),
		amount: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		slots: map[payroll.SlotStatus]lipgloss.Style{
			payroll.SlotRegisteredWork:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			payroll.SlotUnregisteredWork:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			payroll.SlotRegisteredOutside:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			payroll.SlotUnregisteredOutside: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

// slotGlyph keeps the grid readable without colours.
var slotGlyph = map[payroll.SlotStatus]string{
	payroll.SlotRegisteredWork:      "#",
	payroll.SlotUnregisteredWork:    "!",
	payroll.SlotRegisteredOutside:   "+",
	payroll.SlotUnregisteredOutside: ".",
}

// table lays rows out in padded columns; the first row is the header.
func (s styles) table(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	widths := make([]int, len(rows[0]))
	for _, r := range rows {
		for i, c := range r {
			if w := lipgloss.Width(c); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for ri, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			st := s.cell.Width(widths[i] + 2)
			if ri == 0 {
				st = st.Inherit(s.header)
			}
			cells[i] = st.Render(c)
		}
		b.WriteString(strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
		if ri < len(rows)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (s styles) timeline(slots []payroll.Slot) string {
	var grid, ruler strings.Builder
	for _, sl := range slots {
		grid.WriteString(s.slots[sl.Status].Render(slotGlyph[sl.Status]))
		if sl.Hour%6 == 0 {
			ruler.WriteString("|")
		} else {
			ruler.WriteString(" ")
		}
	}
	legend := s.muted.Render("# registered in schedule  ! missing in schedule  + registered outside  . free")
	return lipgloss.JoinVertical(lipgloss.Left, ruler.String(), grid.String(), legend)
}
