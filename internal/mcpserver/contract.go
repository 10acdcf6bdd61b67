package mcpserver

// CalendarRules describes the Saka calendar arithmetic that the tools apply,
// so LLM consumers can explain results or anticipate edge cases.
const CalendarRules = `# Saka Calendar Rules

The Saka calendar is the Indian national civil calendar. Saka year Y begins
in Gregorian year Y+78.

## Months

| # | Name       | Days                         |
|---|------------|------------------------------|
| 1 | Chaitra    | 30, or 31 when Y+78 is leap  |
| 2 | Vaisakha   | 31                           |
| 3 | Jyaishtha  | 31                           |
| 4 | Ashadha    | 31                           |
| 5 | Shravana   | 31                           |
| 6 | Bhadra     | 31                           |
| 7 | Ashwin     | 30                           |
| 8 | Kartika    | 30                           |
| 9 | Agrahayana | 30                           |
| 10| Pausha     | 30                           |
| 11| Magha      | 30                           |
| 12| Phalguna   | 30                           |

## New year

Chaitra 1 falls on 22 March, or on 21 March when Y+78 is a Gregorian leap
year (divisible by 4, not by 100 unless also by 400).

## Arithmetic

- Adding or subtracting days moves through the Julian day count.
- Adding or subtracting months carries or borrows whole years; a day that
  does not exist in the target month is clamped to its last day.
- Adding or subtracting years keeps month and day, clamping Chaitra 31 to
  Chaitra 30 in non-leap years.
- Years must have four digits (1000 to 9999).

## Formatting

Dates are written "DD, MonthName YYYY", e.g. "26, Phalguna 1932"
(17 March 2011).
`
