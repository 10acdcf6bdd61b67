// Package saka implements the Indian national (Saka) calendar.
//
// Saka year Y begins on Chaitra 1, which is 22 March of Gregorian year Y+78,
// or 21 March when Y+78 is a leap year. Chaitra has 30 days (31 in leap years),
// months 2 to 6 have 31 days and months 7 to 12 have 30 days.
//
// The conversion functions in this file accept any year and perform no
// validation; Date and the validated helpers in date.go check their input.
package saka

import (
	"math"

	"github.com/starford/saka/internal/julian"
)

// Era is the offset between a Saka year and the Gregorian year in which it begins.
const Era = 78

const (
	// yearStart is the zero-based Gregorian day of year on which Chaitra 1
	// falls, in both common and leap years.
	yearStart   = 80
	longMonths  = 5 // Vaisakha to Bhadra, 31 days each
	longLength  = 31
	shortLength = 30
)

// DaysInChaitra returns the length of Chaitra in the Saka year that begins
// in the given Gregorian year.
func DaysInChaitra(gregorianYear int) int {
	if julian.IsLeap(gregorianYear) {
		return 31
	}
	return 30
}

// IsLeap reports whether the Saka year has a 31 day Chaitra.
func IsLeap(year int) bool {
	return julian.IsLeap(year + Era)
}

// ToJulian returns the Julian day at midnight of the given Saka date.
func ToJulian(year, month, day int) julian.Day {
	gyear := year + Era
	startDay := 22
	if julian.IsLeap(gyear) {
		startDay = 21
	}
	start := julian.GregorianToJulian(gyear, 3, startDay)
	if month == 1 {
		return start + julian.Day(day-1)
	}
	offset := DaysInChaitra(gyear)
	offset += min(month-2, longMonths) * longLength
	if month >= 8 {
		offset += (month - 7) * shortLength
	}
	return start + julian.Day(offset+day-1)
}

// FromJulian returns the Saka date containing jd.
func FromJulian(jd julian.Day) (year, month, day int) {
	jd = julian.Day(math.Floor(float64(jd-0.5))) + 0.5
	gyear, _, _ := julian.JulianToGregorian(jd)
	yday := int(jd - julian.GregorianToJulian(gyear, 1, 1))
	chaitra := DaysInChaitra(gyear)
	year = gyear - Era

	if yday < yearStart {
		// Before Chaitra 1: the date belongs to the Saka year that began in
		// the previous Gregorian year, so its Chaitra length applies.
		year--
		chaitra = DaysInChaitra(gyear - 1)
		yday += chaitra + longMonths*longLength + 3*shortLength + 10 + yearStart
	}
	yday -= yearStart

	if yday < chaitra {
		return year, 1, yday + 1
	}
	mday := yday - chaitra
	if mday < longMonths*longLength {
		return year, mday/longLength + 2, mday%longLength + 1
	}
	mday -= longMonths * longLength
	return year, mday/shortLength + 7, mday%shortLength + 1
}

// ToGregorian converts a Saka date to the Gregorian calendar.
func ToGregorian(year, month, day int) (gyear, gmonth, gday int) {
	return julian.JulianToGregorian(ToJulian(year, month, day))
}

// FromGregorian converts a Gregorian date to the Saka calendar.
func FromGregorian(gyear, gmonth, gday int) (year, month, day int) {
	return FromJulian(julian.GregorianToJulian(gyear, gmonth, gday))
}

// monthLength returns the number of days in the Saka month as the
// difference between the Julian days of its first day and the next month's.
func monthLength(year, month int) int {
	ny, nm := year, month+1
	if nm > 12 {
		ny, nm = year+1, 1
	}
	return int(ToJulian(ny, nm, 1) - ToJulian(year, month, 1))
}
