package i18n

import (
	"strings"
	"testing"
)

func TestDigitsTransliteration(t *testing.T) {
	tests := []struct {
		lang string
		in   string
		want string
	}{
		{"hi_IN", "123", "१२३"},
		{"mr_IN", "2024", "२०२४"},
		{"bn_IN", "90", "৯০"},
		{"ta_IN", "45", "௪௫"},
		{"ur_IN", "7", "۷"},
		{"en_XX", "123", "123"},
		{"hi_IN", "Age: 34 years", "Age: ३४ years"},
		{"hi_IN", "", ""},
	}
	for _, tt := range tests {
		if got := Digits(tt.lang, tt.in); got != tt.want {
			t.Errorf("Digits(%q, %q) = %q, want %q", tt.lang, tt.in, tt.want, got)
		}
	}
}

func TestFormatInt(t *testing.T) {
	if got := FormatInt("hi_IN", 101); got != "१०१" {
		t.Errorf("FormatInt(hi_IN, 101) = %q", got)
	}
	if got := FormatInt("te_IN", 5); got != "౫" {
		t.Errorf("FormatInt(te_IN, 5) = %q", got)
	}
}

func TestFormatAmountGroupsAndTransliterates(t *testing.T) {
	if got := FormatAmount("en_XX", 250000); got != "250,000" {
		t.Errorf("FormatAmount(en_XX, 250000) = %q", got)
	}
	got := FormatAmount("hi_IN", 250000)
	if strings.ContainsAny(got, "0123456789") {
		t.Errorf("FormatAmount(hi_IN, 250000) = %q, contains Latin digits", got)
	}
	if !strings.Contains(got, "५०") {
		t.Errorf("FormatAmount(hi_IN, 250000) = %q, missing native digits", got)
	}
}

func TestAgeOptions(t *testing.T) {
	opts := AgeOptions("hi_IN")
	if len(opts) != 101 {
		t.Fatalf("AgeOptions() has %d entries, want 101", len(opts))
	}
	if opts[0].Value != 0 || opts[100].Value != 100 {
		t.Errorf("value range = %d..%d", opts[0].Value, opts[100].Value)
	}
	if opts[9].Label != "९" {
		t.Errorf("label for 9 = %q", opts[9].Label)
	}
	if opts[100].Label != "१००" {
		t.Errorf("label for 100 = %q", opts[100].Label)
	}
}
