package wildcard

import "testing"

func TestMatch(t *testing.T) {
	testCases := []struct {
		pattern string
		value   string
		want    bool
	}{
		{"*", "anything", true},
		{"*", "#", true},
		{"*", "", true},
		{"***", "apple", true},
		{"apple", "apple", true},
		{"apple", "apples", false},
		{"ap*", "apple", true},
		{"ap*", "pineapple", false},
		{"*ple", "apple", true},
		{"*ple", "apples", false},
		{"*pl*", "apple", true},
		{"*pl*", "pineapple", true},
		{"a*e", "apple", true},
		{"a*e", "ae", true},
		{"a*e", "a", false},
		{"a**e", "apple", true},
		{"a*p*e", "apple", true},
		{"a*x*e", "apple", false},
		{"ab*ba", "aba", false},
		{"a*b*c*d", "aXbYcZd", true},
		{"a*c*b*d", "aXbYcZd", false},
		{"a*", "#", false},
	}
	for _, tc := range testCases {
		t.Run(tc.pattern+"/"+tc.value, func(t *testing.T) {
			if got := Match(tc.pattern, tc.value); got != tc.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tc.pattern, tc.value, got, tc.want)
			}
		})
	}
}

func TestCollapse(t *testing.T) {
	testCases := map[string]string{
		"":        "",
		"abc":     "abc",
		"**":      "*",
		"a***b":   "a*b",
		"**a**b*": "*a*b*",
	}
	for in, want := range testCases {
		if got := Collapse(in); got != want {
			t.Errorf("Collapse(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsBare(t *testing.T) {
	if IsBare("") {
		t.Error("IsBare(\"\") = true, want false")
	}
	if !IsBare("**") {
		t.Error("IsBare(\"**\") = false, want true")
	}
	if IsBare("a*") {
		t.Error("IsBare(\"a*\") = true, want false")
	}
}
