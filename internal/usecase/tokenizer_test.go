package usecase

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain words", "прясно мляко", []string{"прясно", "мляко"}},
		{"strips edge punctuation", "мляко, *Верея*", []string{"мляко", "Верея"}},
		{"keeps percent sign", "мляко 3.6%", []string{"мляко", "3.6%"}},
		{"keeps fused size token", "мляко 1л", []string{"мляко", "1л"}},
		{"collapses whitespace", "  мляко \t 1л  ", []string{"мляко", "1л"}},
		{"empty input", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenize(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFoldToken(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"МЛЯКО", "мляко"},
		{"Vereia", "vereia"},
		{"café", "cafe"},
		{"йогурт", "иогурт"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := foldToken(tt.input); got != tt.want {
			t.Errorf("foldToken(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	if v, err := parseDecimal("3,6"); err != nil || v != 3.6 {
		t.Errorf("parseDecimal(3,6) = %v, %v", v, err)
	}
	if v, err := parseDecimal("3.6"); err != nil || v != 3.6 {
		t.Errorf("parseDecimal(3.6) = %v, %v", v, err)
	}
	if _, err := parseDecimal("abc"); err == nil {
		t.Error("parseDecimal(abc) should fail")
	}
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{1, "1"},
		{3.6, "3.6"},
		{0.5, "0.5"},
		{650, "650"},
	}
	for _, tt := range tests {
		if got := formatDecimal(tt.input); got != tt.want {
			t.Errorf("formatDecimal(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
