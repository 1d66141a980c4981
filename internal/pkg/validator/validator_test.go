package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidHours(t *testing.T) {
	cases := []struct {
		hours float64
		want  bool
	}{
		{0, true},
		{8, true},
		{24, true},
		{24.5, false},
		{-1, false},
	}
	for _, c := range cases {
		if got := IsValidHours(c.hours); got != c.want {
			t.Errorf("IsValidHours(%v) = %v, want %v", c.hours, got, c.want)
		}
	}
}

func TestIsValidAmount(t *testing.T) {
	if _, ok := IsValidAmount("1234.56"); !ok {
		t.Error("IsValidAmount(\"1234.56\") = false, want true")
	}
	if _, ok := IsValidAmount("-5"); !ok {
		t.Error("IsValidAmount(\"-5\") = false, want true (sign is validated separately)")
	}
	if _, ok := IsValidAmount("12,50"); ok {
		t.Error("IsValidAmount(\"12,50\") = true, want false")
	}
	if _, ok := IsValidAmount(""); ok {
		t.Error("IsValidAmount(\"\") = true, want false")
	}
}

func TestIsValidInvoiceNumber(t *testing.T) {
	valid := []string{"INV-2024-001", "1099", "A-1"}
	invalid := []string{"", "ab", "inv 001", "inv-001", "INV_001"}
	for _, n := range valid {
		if !IsValidInvoiceNumber(n) {
			t.Errorf("IsValidInvoiceNumber(%q) = false, want true", n)
		}
	}
	for _, n := range invalid {
		if IsValidInvoiceNumber(n) {
			t.Errorf("IsValidInvoiceNumber(%q) = true, want false", n)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-02-29"); !ok {
		t.Error("IsValidDate(\"2024-02-29\") = false, want true")
	}
	for _, s := range []string{"2023-02-29", "2024-13-01", "20240101", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}
