// Package apiversion resolves which entities of a versioned API description are
// visible at a given point in time and release channel.
//
// Dates are plain (year, month, day) triples compared lexicographically. A
// Target pairs a Date with a Channel and is the unit a document is generated
// for. A Lifetime records when an entity entered preview, reached general
// availability and was deprecated.
package apiversion

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date. No calendar validation is performed on construction.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate returns the date year-month-day.
func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses YYYY-MM-DD. Zero padding of month and day is optional.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Date{}, fmt.Errorf("invalid date %q: %q is not a number", s, part)
		}
		nums[i] = n
	}

	if nums[1] < 1 || nums[1] > 12 {
		return Date{}, fmt.Errorf("invalid date %q: month out of range", s)
	}
	if nums[2] < 1 || nums[2] > 31 {
		return Date{}, fmt.Errorf("invalid date %q: day out of range", s)
	}

	return NewDate(nums[0], nums[1], nums[2]), nil
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	default:
		return sign(d.Day - other.Day)
	}
}

// AtMost reports whether a is not later than b.
func AtMost(a, b Date) bool {
	return a.Compare(b) <= 0
}

// AddMonths moves d forward by n months. Months past December roll over into
// the following year, and the day is clamped to the last day of the resulting
// month (2021-08-31 plus six months is 2022-02-28).
func (d Date) AddMonths(n int) Date {
	total := d.Year*12 + (d.Month - 1) + n
	year, month := total/12, total%12+1

	day := d.Day
	if last := daysIn(year, month); day > last {
		day = last
	}
	return NewDate(year, month, day)
}

// AddYears moves d forward by n years, clamping February 29 in non-leap years.
func (d Date) AddYears(n int) Date {
	return d.AddMonths(12 * n)
}

// String formats the date as zero-padded YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func daysIn(year, month int) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
