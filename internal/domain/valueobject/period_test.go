package valueobject

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/asistente-contable/backend/internal/domain/error"
)

func TestParsePeriodBounds(t *testing.T) {
	tests := []struct {
		token   string
		lastDay int
	}{
		{"2024-01", 31},
		{"2024-02", 29},
		{"2023-02", 28},
		{"1900-02", 28},
		{"2000-02", 29},
		{"2024-04", 30},
		{"2024-06", 30},
		{"2024-12", 31},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			p, err := ParsePeriod(tt.token)
			if err != nil {
				t.Fatalf("ParsePeriod(%q) returned error: %v", tt.token, err)
			}

			start, end := p.Bounds()
			if start.Day() != 1 {
				t.Errorf("start day = %d, want 1", start.Day())
			}
			if end.Day() != tt.lastDay {
				t.Errorf("end day = %d, want %d", end.Day(), tt.lastDay)
			}
			if start.Month() != end.Month() || start.Year() != end.Year() {
				t.Errorf("bounds %v..%v span more than one month", start, end)
			}
			if p.String() != tt.token {
				t.Errorf("String() = %q, want %q", p.String(), tt.token)
			}
		})
	}
}

func TestParsePeriodRejectsMalformedTokens(t *testing.T) {
	tests := []string{
		"",
		"2024-00",
		"2024-13",
		"2024-1",
		"24-01",
		"2024/01",
		"2024-01-01",
		"abcd-ef",
		"2024-011",
	}

	for _, token := range tests {
		t.Run(token, func(t *testing.T) {
			_, err := ParsePeriod(token)
			if err == nil {
				t.Fatalf("ParsePeriod(%q) expected error", token)
			}
			if !errors.Is(err, domainerror.ErrInvalidPeriod) {
				t.Errorf("expected ErrInvalidPeriod, got %v", err)
			}
			var kpiErr *domainerror.KPIError
			if !errors.As(err, &kpiErr) || kpiErr.Code != domainerror.ErrCodeInvalidPeriod {
				t.Errorf("expected KPIError with code %s, got %v", domainerror.ErrCodeInvalidPeriod, err)
			}
		})
	}
}

func TestResolvePeriodDefaultsToCurrentMonth(t *testing.T) {
	now := time.Date(2025, time.March, 17, 22, 10, 0, 0, time.UTC)

	p, err := ResolvePeriod("  ", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.String() != "2025-03" {
		t.Errorf("got %s, want 2025-03", p)
	}

	p, err = ResolvePeriod("2024-11", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.String() != "2024-11" {
		t.Errorf("got %s, want 2024-11", p)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"2024-05-01", false},
		{"2024-02-29", false},
		{"2023-02-29", true},
		{"2024-5-1", true},
		{"01/05/2024", true},
		{"2024-05-01T10:00:00Z", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			_, err := ParseDate(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestAvailablePeriods(t *testing.T) {
	now := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{
		time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}

	got := AvailablePeriods(dates, now)
	want := []string{"2024-06", "2024-03", "2024-01", "2023-12"}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
