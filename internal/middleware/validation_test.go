package middleware

import (
	"strings"
	"testing"
)

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid sha256", strings.Repeat("a1b2", 16), strings.Repeat("a1b2", 16), false},
		{"uppercase normalized", "ABCD1234", "abcd1234", false},
		{"trims whitespace", "  abcd  ", "abcd", false},
		{"empty", "", "", true},
		{"too long 65", strings.Repeat("a", 65), "", true},
		{"non-hex chars", "xyz123", "", true},
		{"sql injection", "abc'; DROP--", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateUserID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateChannelName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple", "MyChannel", "MyChannel", false},
		{"spaces allowed", "Tech Reviews DE", "Tech Reviews DE", false},
		{"unicode allowed", "Café Vlogs", "Café Vlogs", false},
		{"trims whitespace", "  Channel  ", "Channel", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"too long", strings.Repeat("x", 129), "", true},
		{"exactly 128", strings.Repeat("x", 128), strings.Repeat("x", 128), false},
		{"control chars", "bad\x00name", "", true},
		{"newline", "bad\nname", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateChannelName(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateRangeExpr(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"relative", "28d", "28d", false},
		{"all", "all", "all", false},
		{"year", "year:2024", "year:2024", false},
		{"month", "month:2024-7", "month:2024-7", false},
		{"range", "range:2024-01-01..2024-03-31", "range:2024-01-01..2024-03-31", false},
		{"empty defaults", "", "28d", false},
		{"unknown passes through", "14d", "14d", false},
		{"too long", "range:" + strings.Repeat("1", 64), "", true},
		{"invalid characters", "28d; DROP TABLE", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateRangeExpr(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
