package booking

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"0412345678", "+61412345678"},
		{"04 1234 5678", "+61412345678"},
		{"(04) 1234-5678", "+61412345678"},
		{"+14155551234", "+14155551234"},
		{"+61 412 345 678", "+61412345678"},
		{"61412345678", "+61412345678"},
		{"abc", ""},
		{"", ""},
		{"   ", ""},
		{"+123", ""},     // too short to be a real E.164 number
		{"12345", ""},    // no trunk zero, no country code
	}
	for _, tc := range cases {
		if got := NormalizePhone(tc.raw, "+61"); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizePhoneNoCountryCode(t *testing.T) {
	if got := NormalizePhone("0412345678", ""); got != "" {
		t.Errorf("expected empty result without a default country code, got %q", got)
	}
	// International numbers still pass through.
	if got := NormalizePhone("+14155551234", ""); got != "+14155551234" {
		t.Errorf("expected passthrough, got %q", got)
	}
}
