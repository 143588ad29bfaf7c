package payload

import (
	"errors"
	"testing"
)

func TestMECARDFull(t *testing.T) {
	c := Contact{
		LastName:     "Doe",
		FirstName:    "Jane",
		Nickname:     "jd",
		WorkPhone:    "+1 555 0100",
		PrivatePhone: "+1 555 0101",
		Phone:        "+1 555 0102",
		Email:        "jane@example.com",
		Birthday:     "19900101",
		URL:          "https://example.com",
		Note:         "hello",
		Street:       "1 Main St",
		City:         "Springfield",
		State:        "IL",
		Zip:          "62701",
		Country:      "US",
	}
	got, err := c.MECARD()
	if err != nil {
		t.Fatal(err)
	}
	want := `MECARD:N:Doe,Jane;NICKNAME:jd;TEL:+1 555 0100;TEL:+1 555 0101;TEL:+1 555 0102;` +
		`EMAIL:jane@example.com;BDAY:19900101;URL:https\://example.com;NOTE:hello;` +
		`ADR:,,1 Main St,Springfield,IL,62701,US;;`
	if got != want {
		t.Errorf("MECARD mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestMECARDOmitsEmptyFields(t *testing.T) {
	got, err := Contact{FirstName: "Ann", Email: "ann@example.com"}.MECARD()
	if err != nil {
		t.Fatal(err)
	}
	if want := "MECARD:N:,Ann;EMAIL:ann@example.com;;"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMECARDEscapes(t *testing.T) {
	got, err := Contact{LastName: `O;Brien,Jr\`, Note: "a:b"}.MECARD()
	if err != nil {
		t.Fatal(err)
	}
	if want := `MECARD:N:O\;Brien\,Jr\\;NOTE:a\:b;;`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMECARDNeedsName(t *testing.T) {
	if _, err := (Contact{Email: "x@example.com"}).MECARD(); !errors.Is(err, ErrEmptyContact) {
		t.Errorf("expected ErrEmptyContact, got %v", err)
	}
	if !(Contact{}).IsZero() {
		t.Errorf("zero contact should report IsZero")
	}
}
