package dates

import (
	"errors"
	"fmt"
	"time"

	// Embedded zone database so conversions work on hosts without one.
	_ "time/tzdata"
)

// MaxAgeYears is the largest plausible age CalculateAge accepts.
const MaxAgeYears = 150

var (
	// ErrFutureBirthdate is returned when the birthdate is after the reference date.
	ErrFutureBirthdate = errors.New("birthdate cannot be in the future")

	// ErrUnrealisticAge is returned when the age exceeds MaxAgeYears.
	ErrUnrealisticAge = errors.New("calculated age seems unrealistic")

	// ErrNegativeDuration is returned by MeetingEnd for negative hours or minutes.
	ErrNegativeDuration = errors.New("duration must be non-negative")

	// ErrUnknownTimezone is returned when a zone name cannot be loaded.
	ErrUnknownTimezone = errors.New("unknown timezone")
)

// Date returns the civil date y-m-d.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Civil strips the clock and zone from t, keeping its calendar date.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year int, month time.Month) int {
	// Day zero of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths adds months to d, clamping the day to the end of the target
// month, so Jan 31 plus one month is the last day of February.
func AddMonths(d time.Time, months int) time.Time {
	idx := int(d.Month()) - 1 + months
	y := d.Year() + floorDiv(idx, 12)
	m := time.Month(floorMod(idx, 12) + 1)
	return Date(y, m, min(d.Day(), LastDayOfMonth(y, m)))
}

// Age is an age broken down into whole years, months and days.
type Age struct {
	Years     int `json:"years"`
	Months    int `json:"months"`
	Days      int `json:"days"`
	TotalDays int `json:"total_days"`
}

// CalculateAge returns the age of someone born on birth as of on. Birthdays
// on Feb 29 fall on Feb 28 in common years.
func CalculateAge(birth, on time.Time) (Age, error) {
	birth, on = Civil(birth), Civil(on)
	if birth.After(on) {
		return Age{}, fmt.Errorf("%w: birthdate %s, reference date %s",
			ErrFutureBirthdate, birth.Format(time.DateOnly), on.Format(time.DateOnly))
	}

	totalDays := daysBetween(birth, on)
	if approx := totalDays / 365; approx > MaxAgeYears {
		return Age{}, fmt.Errorf("%w: ~%d years (birth year %d)", ErrUnrealisticAge, approx, birth.Year())
	}

	years := on.Year() - birth.Year()
	if on.Month() < birth.Month() || (on.Month() == birth.Month() && on.Day() < birth.Day()) {
		years--
	}

	anniversary := AddMonths(birth, years*12)
	months := (on.Year()-anniversary.Year())*12 + int(on.Month()-anniversary.Month())
	if on.Day() < anniversary.Day() {
		months--
	}
	months = max(months, 0)
	if months > 11 {
		// A clamped Feb 29 anniversary can leave a full year uncounted.
		anniversary = AddMonths(anniversary, months/12*12)
		years += months / 12
		months %= 12
	}

	return Age{
		Years:     years,
		Months:    months,
		Days:      daysBetween(AddMonths(anniversary, months), on),
		TotalDays: totalDays,
	}, nil
}

// DaysUntilNextBirthday counts the days from from until the next birthday,
// which is 0 when from is the birthday itself.
func DaysUntilNextBirthday(birth, from time.Time) int {
	from = Civil(from)
	next := birthdayIn(birth, from.Year())
	if next.Before(from) {
		next = birthdayIn(birth, from.Year()+1)
	}
	return daysBetween(from, next)
}

func birthdayIn(birth time.Time, year int) time.Time {
	return Date(year, birth.Month(), min(birth.Day(), LastDayOfMonth(year, birth.Month())))
}

// MeetingEnd returns start plus the given duration.
func MeetingEnd(start time.Time, hours, minutes int) (time.Time, error) {
	if hours < 0 || minutes < 0 {
		return time.Time{}, fmt.Errorf("%w: %dh %dm", ErrNegativeDuration, hours, minutes)
	}
	return start.Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute), nil
}

// ConvertTimezone interprets the wall clock of t in fromTZ and returns the
// same instant in toTZ. Any location already attached to t is ignored.
func ConvertTimezone(t time.Time, fromTZ, toTZ string) (time.Time, error) {
	src, err := LoadLocation(fromTZ)
	if err != nil {
		return time.Time{}, err
	}
	dst, err := LoadLocation(toTZ)
	if err != nil {
		return time.Time{}, err
	}
	local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), src)
	return local.In(dst), nil
}

// LoadLocation loads an IANA zone such as "Europe/Berlin".
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownTimezone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return loc, nil
}

// RemainingUntil returns the time left from now until target. It is negative
// once target has passed.
func RemainingUntil(target, now time.Time) time.Duration {
	return target.Sub(now)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
