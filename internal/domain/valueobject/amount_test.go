package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"12.5", "12.5", true},
		{"12.345", "12.35", true},
		{"0.005", "0.01", true},
		{"0.004", "0", false},
		{"0", "0", false},
		{"-3", "-3", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizeAmount(decimal.RequireFromString(tt.raw))
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("rounded = %s, want %s", got, tt.want)
			}
		})
	}
}
