package saka

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/starford/saka/internal/apperr"
	"github.com/starford/saka/internal/julian"
)

var monthNames = [12]string{
	"Chaitra", "Vaisakha", "Jyaishtha", "Ashadha", "Shravana", "Bhadra",
	"Ashwin", "Kartika", "Agrahayana", "Pausha", "Magha", "Phalguna",
}

// Date is a Saka calendar date. Dates returned by New and by the arithmetic
// methods are always valid; a Date built as a literal can be checked with
// Validate. Date is a value: the arithmetic methods return a new Date and
// leave the receiver untouched.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// New returns the validated Saka date year-month-day.
func New(year, month, day int) (Date, error) {
	if err := Validate(year, month, day); err != nil {
		return Date{}, err
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// Today returns the Saka date of the civil day containing now, in now's location.
func Today(now time.Time) Date {
	y, m, d := now.Date()
	return FromGregorianDate(julian.Date{Year: y, Month: int(m), Day: d})
}

// FromGregorianDate converts g without validating it.
func FromGregorianDate(g julian.Date) Date {
	return FromJulianDay(julian.FromDate(g))
}

// FromJulianDay returns the Saka date containing jd.
func FromJulianDay(jd julian.Day) Date {
	y, m, d := FromJulian(jd)
	return Date{Year: y, Month: m, Day: d}
}

// Validate reports whether d is a valid date with a four digit year.
func (d Date) Validate() error {
	return Validate(d.Year, d.Month, d.Day)
}

// String formats d as "DD, MonthName YYYY".
func (d Date) String() string {
	name := ""
	if d.Month >= 1 && d.Month <= 12 {
		name = monthNames[d.Month-1]
	}
	return fmt.Sprintf("%02d, %s %04d", d.Day, name, d.Year)
}

// JulianDay returns the Julian day at midnight of d.
func (d Date) JulianDay() julian.Day {
	return ToJulian(d.Year, d.Month, d.Day)
}

// Gregorian returns the Gregorian date corresponding to d.
func (d Date) Gregorian() julian.Date {
	return julian.ToDate(d.JulianDay())
}

// MonthName returns the name of d's month.
func (d Date) MonthName() string {
	return monthNames[d.Month-1]
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return julian.Weekday(d.JulianDay())
}

// DaysInMonth returns the length of d's month.
func (d Date) DaysInMonth() int {
	return monthLength(d.Year, d.Month)
}

// Grid returns the calendar grid of d's month.
func (d Date) Grid() MonthGrid {
	return newMonthGrid(d.Year, d.Month)
}

// AddDays returns d moved by n days; n may be negative.
func (d Date) AddDays(n int) (Date, error) {
	nd := FromJulianDay(d.JulianDay() + julian.Day(n))
	if err := validateYear(nd.Year); err != nil {
		return d, err
	}
	return nd, nil
}

// SubtractDays returns d moved back by n days, n >= 0.
func (d Date) SubtractDays(n int) (Date, error) {
	if err := validateCount("days", n); err != nil {
		return d, err
	}
	return d.AddDays(-n)
}

// AddMonths returns d moved forward by n months, n >= 0, carrying into
// following years. The day is clamped to the length of the target month.
func (d Date) AddMonths(n int) (Date, error) {
	if err := validateCount("months", n); err != nil {
		return d, err
	}
	return d.shiftMonths(n)
}

// SubtractMonths returns d moved back by n months, n >= 0, borrowing from
// preceding years. The day is clamped to the length of the target month.
func (d Date) SubtractMonths(n int) (Date, error) {
	if err := validateCount("months", n); err != nil {
		return d, err
	}
	return d.shiftMonths(-n)
}

func (d Date) shiftMonths(n int) (Date, error) {
	total := d.Month - 1 + n
	year := d.Year + total/12
	month := total%12 + 1
	if month < 1 {
		year--
		month += 12
	}
	if err := validateYear(year); err != nil {
		return d, err
	}
	return Date{Year: year, Month: month, Day: min(d.Day, monthLength(year, month))}, nil
}

// AddYears returns d moved forward by n years, n >= 0. Chaitra 31 becomes
// Chaitra 30 when the target year is not a leap year.
func (d Date) AddYears(n int) (Date, error) {
	if err := validateCount("years", n); err != nil {
		return d, err
	}
	return d.shiftYears(n)
}

// SubtractYears returns d moved back by n years, n >= 0.
func (d Date) SubtractYears(n int) (Date, error) {
	if err := validateCount("years", n); err != nil {
		return d, err
	}
	return d.shiftYears(-n)
}

func (d Date) shiftYears(n int) (Date, error) {
	year := d.Year + n
	if err := validateYear(year); err != nil {
		return d, err
	}
	return Date{Year: year, Month: d.Month, Day: min(d.Day, monthLength(year, d.Month))}, nil
}

// MonthName returns the name of the given month, 1 to 12.
func MonthName(month int) (string, error) {
	if err := validateMonth(month); err != nil {
		return "", err
	}
	return monthNames[month-1], nil
}

// ParseMonth parses a month number or a case-insensitive prefix of a month name.
func ParseMonth(val string) (int, error) {
	if n, err := strconv.Atoi(val); err == nil {
		if err := validateMonth(n); err != nil {
			return 0, err
		}
		return n, nil
	}
	lc := strings.ToLower(val)
	if lc != "" {
		for i, name := range monthNames {
			if strings.HasPrefix(strings.ToLower(name), lc) {
				return i + 1, nil
			}
		}
	}
	return 0, &apperr.FieldError{Field: "month", Value: val, Err: apperr.ErrInvalidMonth}
}

// DayOfWeek returns the day of the week of the given Saka date.
func DayOfWeek(year, month, day int) (time.Weekday, error) {
	d, err := New(year, month, day)
	if err != nil {
		return 0, err
	}
	return d.Weekday(), nil
}

// DaysInMonth returns the number of days in the given Saka month.
func DaysInMonth(year, month int) (int, error) {
	if err := validateYear(year); err != nil {
		return 0, err
	}
	if err := validateMonth(month); err != nil {
		return 0, err
	}
	return monthLength(year, month), nil
}
