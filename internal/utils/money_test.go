package utils

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1500", 1500},
		{"1.500", 1500},
		{"1,500", 1500},
		{"1.234.567", 1234567},
		{"1.500,50", 1500.50},
		{"1,500.50", 1500.50},
		{"1500.5", 1500.5},
		{"$ 150", 150},
		{"0", 0},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "12a"} {
		if _, err := ParseAmount(in); err == nil {
			t.Fatalf("ParseAmount(%q) should fail", in)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1500, "$1.500"},
		{1500.5, "$1.500,50"},
		{0, "$0"},
		{1234567, "$1.234.567"},
		{-200, "-$200"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Fatalf("FormatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
