package julian_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/saka/internal/julian"
)

func TestGregorianToJulianKnownValues(t *testing.T) {
	for _, tc := range []struct {
		y, m, d int
		jd      julian.Day
	}{
		{1, 1, 1, julian.GregorianEpoch},
		{1858, 11, 17, 2400000.5},
		{1970, 1, 1, 2440587.5},
		{2000, 1, 1, 2451544.5},
		{-4713, 11, 24, -0.5},
	} {
		assert.Equal(t, tc.jd, julian.GregorianToJulian(tc.y, tc.m, tc.d), "%04d-%02d-%02d", tc.y, tc.m, tc.d)
	}
}

func TestJulianToGregorianWithinDay(t *testing.T) {
	for _, jd := range []julian.Day{2451544.5, 2451544.9, 2451545.0, 2451545.49} {
		assert.Equal(t, julian.Date{Year: 2000, Month: 1, Day: 1}, julian.ToDate(jd), "jd %v", jd)
	}
	assert.Equal(t, julian.Date{Year: -4713, Month: 11, Day: 24}, julian.ToDate(0))
}

func TestGregorianRoundTripAgainstTime(t *testing.T) {
	start := time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	for tm := start; !tm.After(end); tm = tm.AddDate(0, 0, 97) {
		d := julian.FromTime(tm)
		jd := julian.FromDate(d)
		require.Equal(t, d, julian.ToDate(jd), "%v", d)
		require.Equal(t, tm.Weekday(), julian.Weekday(jd), "%v", d)
	}
}

func TestNegativeYearsRoundTrip(t *testing.T) {
	for y := -500; y < 500; y++ {
		for m := 1; m <= 12; m++ {
			for _, d := range []int{1, 15, julian.DaysInMonth(y, m)} {
				yy, mm, dd := julian.JulianToGregorian(julian.GregorianToJulian(y, m, d))
				require.Equal(t, [3]int{y, m, d}, [3]int{yy, mm, dd})
			}
		}
	}
}

func TestIsLeap(t *testing.T) {
	for _, tc := range []struct {
		year int
		leap bool
	}{
		{1900, false},
		{2000, true},
		{2023, false},
		{2024, true},
		{2100, false},
		{0, true},
		{-4, true},
		{-100, false},
		{-400, true},
	} {
		assert.Equal(t, tc.leap, julian.IsLeap(tc.year), "%v", tc.year)
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, julian.DaysInMonth(2024, 2))
	assert.Equal(t, 28, julian.DaysInMonth(2023, 2))
	assert.Equal(t, 28, julian.DaysInMonth(1900, 2))
	assert.Equal(t, 31, julian.DaysInMonth(2023, 12))
	assert.Equal(t, 30, julian.DaysInMonth(2023, 11))
}

func TestDateString(t *testing.T) {
	d := julian.Date{Year: 2011, Month: 3, Day: 17}
	assert.Equal(t, "2011-03-17", d.String())
	assert.Equal(t, time.Date(2011, 3, 17, 0, 0, 0, 0, time.UTC), d.Time())
}
