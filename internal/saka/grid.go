package saka

import (
	"fmt"
	"strings"
	"time"

	"github.com/starford/saka/internal/julian"
)

const gridWidth = 20 // seven 2-column cells separated by single spaces

var weekdayHeader = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// MonthGrid lays out a Saka month in Sunday-first weeks. Cells outside
// the month hold zero.
type MonthGrid struct {
	Year         int          `json:"year"`
	Month        int          `json:"month"`
	Name         string       `json:"name"`
	Days         int          `json:"days"`
	FirstWeekday time.Weekday `json:"first_weekday"`
	Weeks        [][7]int     `json:"weeks"`
}

func newMonthGrid(year, month int) MonthGrid {
	g := MonthGrid{
		Year:         year,
		Month:        month,
		Name:         monthNames[month-1],
		Days:         monthLength(year, month),
		FirstWeekday: julian.Weekday(ToJulian(year, month, 1)),
	}
	var week [7]int
	col := int(g.FirstWeekday)
	for day := 1; day <= g.Days; day++ {
		week[col] = day
		col++
		if col == 7 {
			g.Weeks = append(g.Weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		g.Weeks = append(g.Weeks, week)
	}
	return g
}

// NewMonthGrid returns the grid of the given Saka month.
func NewMonthGrid(year, month int) (MonthGrid, error) {
	if err := validateYear(year); err != nil {
		return MonthGrid{}, err
	}
	if err := validateMonth(month); err != nil {
		return MonthGrid{}, err
	}
	return newMonthGrid(year, month), nil
}

// String renders the grid as text in the style of cal(1): a centred
// title line, a weekday header and one line per week.
func (g MonthGrid) String() string {
	var out strings.Builder
	title := fmt.Sprintf("%s %d", g.Name, g.Year)
	if pad := (gridWidth - len(title)) / 2; pad > 0 {
		out.WriteString(strings.Repeat(" ", pad))
	}
	out.WriteString(title)
	out.WriteByte('\n')
	out.WriteString(strings.Join(weekdayHeader[:], " "))
	out.WriteByte('\n')
	cells := make([]string, 7)
	for _, week := range g.Weeks {
		for i, day := range week {
			if day == 0 {
				cells[i] = "  "
				continue
			}
			cells[i] = fmt.Sprintf("%2d", day)
		}
		out.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
		out.WriteByte('\n')
	}
	return out.String()
}

// RenderMonthGrid returns the text calendar of the given Saka month.
func RenderMonthGrid(year, month int) (string, error) {
	g, err := NewMonthGrid(year, month)
	if err != nil {
		return "", err
	}
	return g.String(), nil
}
