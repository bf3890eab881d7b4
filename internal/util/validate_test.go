package util

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"first.last@example.com",
		"  padded@example.org  ",
		"plus+tag@mail.example.com",
	}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = false, want true", e)
		}
	}

	invalid := []string{
		"",
		"plain",
		"no@tld",
		"two@@example.com",
		"spaces in@example.com",
		"@example.com",
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = true, want false", e)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  Lina "); got != "Lina" {
		t.Errorf("NormalizeName = %q, want %q", got, "Lina")
	}
	if got := NormalizeName("   "); got != "" {
		t.Errorf("NormalizeName(blank) = %q, want empty", got)
	}
}
