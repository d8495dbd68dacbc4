package month

import (
	"fmt"
	"regexp"
	"time"
)

// Month is a calendar month. It replaces raw "YYYY-MM" strings so that
// ordering is calendar ordering and never depends on string formatting.
type Month struct {
	Year  int
	Month time.Month
}

var keyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Parse parses a zero-padded "YYYY-MM" key into a Month.
func Parse(key string) (Month, error) {
	if !keyPattern.MatchString(key) {
		return Month{}, fmt.Errorf("invalid month key %q, expected YYYY-MM", key)
	}
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MustParse is Parse for statically known keys. It panics on error.
func MustParse(key string) Month {
	m, err := Parse(key)
	if err != nil {
		panic(err)
	}
	return m
}

// FromTime returns the Month containing t.
func FromTime(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Compare returns -1, 0, or 1 depending on whether m is before, equal to,
// or after other.
func (m Month) Compare(other Month) int {
	if m.Year != other.Year {
		if m.Year < other.Year {
			return -1
		}
		return 1
	}
	if m.Month != other.Month {
		if m.Month < other.Month {
			return -1
		}
		return 1
	}
	return 0
}

func (m Month) Before(other Month) bool {
	return m.Compare(other) < 0
}

func (m Month) After(other Month) bool {
	return m.Compare(other) > 0
}

// Next returns the month following m.
func (m Month) Next() Month {
	return FromTime(m.FirstDay().AddDate(0, 1, 0))
}

// Prev returns the month preceding m.
func (m Month) Prev() Month {
	return FromTime(m.FirstDay().AddDate(0, -1, 0))
}

// FirstDay returns midnight UTC on the first day of the month.
func (m Month) FirstDay() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}
