// Package julian converts proleptic Gregorian calendar dates to and from
// Julian day numbers.
//
// Years use astronomical numbering (year 0 is 1 BCE) and every division
// rounds toward negative infinity, so dates before the common era convert
// consistently. None of the functions validate their input.
package julian

import (
	"fmt"
	"math"
	"time"
)

// GregorianEpoch is the Julian day of midnight, 1 January 1 CE (proleptic Gregorian).
const GregorianEpoch Day = 1721425.5

// Day is a Julian day number. Midnight falls on the .5 boundary.
type Day float64

// Date is a proleptic Gregorian calendar date.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && !(year%100 == 0 && year%400 != 0)
}

// floorDiv divides a by b rounding toward negative infinity; b must be positive.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

// fixed returns the ordinal day of the given date counted from
// 1 January 1 CE, which is day 1.
func fixed(year, month, day int) int {
	y := year - 1
	n := 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400)
	n += floorDiv(367*month-362, 12)
	switch {
	case month <= 2:
	case IsLeap(year):
		n--
	default:
		n -= 2
	}
	return n + day
}

func fromFixed(n int) Day {
	return GregorianEpoch - 1 + Day(n)
}

// toFixed truncates jd to the start of its civil day.
func toFixed(jd Day) int {
	return int(math.Floor(float64(jd-0.5))) - int(GregorianEpoch-1.5)
}

// GregorianToJulian returns the Julian day at midnight of the given date.
func GregorianToJulian(year, month, day int) Day {
	return fromFixed(fixed(year, month, day))
}

// JulianToGregorian returns the Gregorian date containing jd.
func JulianToGregorian(jd Day) (year, month, day int) {
	n := toFixed(jd)
	depoch := n - 1

	quadricent := floorDiv(depoch, 146097)
	dqc := floorMod(depoch, 146097)
	cent := floorDiv(dqc, 36524)
	dcent := floorMod(dqc, 36524)
	quad := floorDiv(dcent, 1461)
	dquad := floorMod(dcent, 1461)
	yindex := floorDiv(dquad, 365)

	year = quadricent*400 + cent*100 + quad*4 + yindex
	if cent != 4 && yindex != 4 {
		year++
	}

	yearday := n - fixed(year, 1, 1)
	leapadj := 0
	if n >= fixed(year, 3, 1) {
		leapadj = 2
		if IsLeap(year) {
			leapadj = 1
		}
	}
	month = floorDiv((yearday+leapadj)*12+373, 367)
	day = n - fixed(year, month, 1) + 1
	return year, month, day
}

// ToDate is JulianToGregorian returning a Date.
func ToDate(jd Day) Date {
	y, m, d := JulianToGregorian(jd)
	return Date{Year: y, Month: m, Day: d}
}

// FromDate is GregorianToJulian for a Date.
func FromDate(d Date) Day {
	return GregorianToJulian(d.Year, d.Month, d.Day)
}

// Weekday returns the day of the week of jd.
func Weekday(jd Day) time.Weekday {
	return time.Weekday(floorMod(int(math.Floor(float64(jd+1.5))), 7))
}

// DaysInMonth returns the length of the given Gregorian month.
func DaysInMonth(year, month int) int {
	ny, nm := year, month+1
	if nm > 12 {
		ny, nm = year+1, 1
	}
	return fixed(ny, nm, 1) - fixed(year, month, 1)
}
