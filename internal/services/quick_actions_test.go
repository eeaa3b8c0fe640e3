package services

import (
	"reflect"
	"testing"
)

func TestExtractSchemeNames(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     []string
	}{
		{
			name:     "single bold scheme",
			markdown: "You may be eligible for **PM-Kisan Samman Nidhi Yojana**, which pays ₹6000 a year.",
			want:     []string{"PM-Kisan Samman Nidhi Yojana"},
		},
		{
			name: "multiple schemes deduped case-insensitively",
			markdown: "Consider **Ayushman Bharat Scheme** for health cover.\n" +
				"**AYUSHMAN BHARAT SCHEME** again, plus **Atal Pension Yojana**.",
			want: []string{"Ayushman Bharat Scheme", "Atal Pension Yojana"},
		},
		{
			name:     "bold emphasis without scheme words ignored",
			markdown: "This is **very important**: apply before **March 31**.",
			want:     nil,
		},
		{
			name:     "trailing punctuation trimmed",
			markdown: "Apply for **Sukanya Samriddhi Yojana:** today.",
			want:     []string{"Sukanya Samriddhi Yojana"},
		},
		{
			name: "capped at four",
			markdown: "**A Scheme** **B Scheme** **C Scheme** **D Scheme** **E Scheme**",
			want: []string{"A Scheme", "B Scheme", "C Scheme", "D Scheme"},
		},
		{
			name:     "no bold spans",
			markdown: "Plain text about pensions and scholarships.",
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSchemeNames(tt.markdown)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractSchemeNames() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuickActionsPreferStructuredSources(t *testing.T) {
	res := &ChatResult{
		Reply:   "See **Atal Pension Yojana** for details.",
		Sources: []string{"PM Awas Yojana", "PM Awas Yojana", "Ujjwala Yojana"},
	}
	got := QuickActionsFor(res)
	want := []string{"PM Awas Yojana", "Ujjwala Yojana"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("QuickActionsFor() = %v, want %v", got, want)
	}
}
