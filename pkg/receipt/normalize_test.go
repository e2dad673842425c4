package receipt

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToDate(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string // empty means nil
	}{
		{"valid date", "2024-03-15", "2024-03-15"},
		{"placeholder", "NULL", ""},
		{"empty", "", ""},
		{"nil", nil, ""},
		{"garbage", "15/03/2024", ""},
		{"datetime not accepted", "2024-03-15T10:00:00Z", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDate(tt.input)
			if tt.want == "" {
				if got != nil {
					t.Errorf("ToDate(%v) = %v, want nil", tt.input, got)
				}
				return
			}
			if got == nil || got.Format("2006-01-02") != tt.want {
				t.Errorf("ToDate(%v) = %v, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    string
		wantErr bool
	}{
		{"placeholder", "NULL", "0", false},
		{"empty", "", "0", false},
		{"nil", nil, "0", false},
		{"string number", "12.5", "12.5", false},
		{"json float", 12.5, "12.5", false},
		{"int", 7, "7", false},
		{"malformed", "abc", "", true},
		{"currency-prefixed", "$12.50", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToDecimal(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ToDecimal(%v) expected error, got %s", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToDecimal(%v) unexpected error: %v", tt.input, err)
			}
			if want, _ := decimal.NewFromString(tt.want); !got.Equal(want) {
				t.Errorf("ToDecimal(%v) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestToText(t *testing.T) {
	if got := ToText("NULL"); got != nil {
		t.Errorf("ToText(NULL) = %v, want nil", *got)
	}
	if got := ToText(nil); got != nil {
		t.Errorf("ToText(nil) = %v, want nil", *got)
	}
	if got := ToText("abc"); got == nil || *got != "abc" {
		t.Errorf("ToText(abc) = %v, want abc", got)
	}
}

func TestToInteger(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int
	}{
		{"placeholder", "NULL", 0},
		{"empty", "", 0},
		{"nil", nil, 0},
		{"string number", "7", 7},
		{"json float", 3.0, 3},
		{"int", 5, 5},
		// unparsable text degrades to zero instead of erroring, unlike
		// ToDecimal
		{"garbage", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToInteger(tt.input); got != tt.want {
				t.Errorf("ToInteger(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
