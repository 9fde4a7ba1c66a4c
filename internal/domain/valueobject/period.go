// Package valueobject contains immutable domain values.
package valueobject

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	domainerror "github.com/asistente-contable/backend/internal/domain/error"
)

const (
	// PeriodLayout is the time layout of a period token.
	PeriodLayout = "2006-01"
	// DateLayout is the time layout of a calendar day.
	DateLayout = "2006-01-02"
)

var (
	periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
	datePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Period is a calendar month identified by a YYYY-MM token.
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses a YYYY-MM token. The month must be zero-padded and within 01-12.
func ParsePeriod(token string) (Period, error) {
	token = strings.TrimSpace(token)
	if !periodPattern.MatchString(token) {
		return Period{}, invalidPeriod(token)
	}

	year, _ := strconv.Atoi(token[:4])
	month, _ := strconv.Atoi(token[5:])
	if month < 1 || month > 12 {
		return Period{}, invalidPeriod(token)
	}

	return Period{Year: year, Month: time.Month(month)}, nil
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// CurrentPeriod returns the period containing now, evaluated in UTC.
func CurrentPeriod(now time.Time) Period {
	return PeriodOf(now.UTC())
}

// ResolvePeriod parses token, or returns the current period when token is blank.
func ResolvePeriod(token string, now time.Time) (Period, error) {
	if strings.TrimSpace(token) == "" {
		return CurrentPeriod(now), nil
	}
	return ParsePeriod(token)
}

// String renders the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Bounds returns the first and last calendar day of the period, both inclusive.
func (p Period) Bounds() (start, end time.Time) {
	start = time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// Contains reports whether the calendar day of t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

// ParseDate parses a strict YYYY-MM-DD calendar day.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if !datePattern.MatchString(value) {
		return time.Time{}, fmt.Errorf("date %q must have format YYYY-MM-DD", value)
	}
	return time.Parse(DateLayout, value)
}

// AvailablePeriods returns the distinct periods of dates plus the current period, newest first.
func AvailablePeriods(dates []time.Time, now time.Time) []string {
	seen := map[string]struct{}{CurrentPeriod(now).String(): {}}
	for _, d := range dates {
		seen[PeriodOf(d).String()] = struct{}{}
	}

	periods := make([]string, 0, len(seen))
	for p := range seen {
		periods = append(periods, p)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(periods)))
	return periods
}

func invalidPeriod(token string) error {
	return domainerror.NewKPIError(
		domainerror.ErrCodeInvalidPeriod,
		fmt.Sprintf("periodo %q debe tener formato YYYY-MM con mes entre 01 y 12", token),
		domainerror.ErrInvalidPeriod,
	)
}
