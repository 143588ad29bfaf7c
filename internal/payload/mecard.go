// Package payload builds the text that gets encoded into a QR code.
package payload

import (
	"errors"
	"strings"
)

// ErrEmptyContact is returned when a contact has no name.
var ErrEmptyContact = errors.New("contact needs at least a first or last name")

// Contact is a business card encoded as a MECARD string.
type Contact struct {
	LastName     string `yaml:"last_name"`
	FirstName    string `yaml:"first_name"`
	Nickname     string `yaml:"nickname"`
	WorkPhone    string `yaml:"work_phone"`
	PrivatePhone string `yaml:"private_phone"`
	Phone        string `yaml:"phone"`
	Email        string `yaml:"email"`
	// Birthday is YYYYMMDD.
	Birthday string `yaml:"birthday"`
	URL      string `yaml:"url"`
	Note     string `yaml:"note"`
	Street   string `yaml:"street"`
	City     string `yaml:"city"`
	State    string `yaml:"state"`
	Zip      string `yaml:"zip"`
	Country  string `yaml:"country"`
}

// IsZero reports whether no field is set.
func (c Contact) IsZero() bool {
	return c == Contact{}
}

// MECARD returns the contact in MECARD format. Empty fields are left out.
func (c Contact) MECARD() (string, error) {
	if strings.TrimSpace(c.LastName) == "" && strings.TrimSpace(c.FirstName) == "" {
		return "", ErrEmptyContact
	}

	var b strings.Builder
	b.WriteString("MECARD:")

	name := escape(c.LastName)
	if c.FirstName != "" {
		name += "," + escape(c.FirstName)
	}
	field(&b, "N", name)
	field(&b, "NICKNAME", escape(c.Nickname))
	for _, tel := range []string{c.WorkPhone, c.PrivatePhone, c.Phone} {
		field(&b, "TEL", escape(tel))
	}
	field(&b, "EMAIL", escape(c.Email))
	field(&b, "BDAY", escape(c.Birthday))
	field(&b, "URL", escape(c.URL))
	field(&b, "NOTE", escape(c.Note))

	adr := []string{c.Street, c.City, c.State, c.Zip, c.Country}
	if strings.Join(adr, "") != "" {
		parts := make([]string, len(adr))
		for i, p := range adr {
			parts[i] = escape(p)
		}
		// PO box and extended address are never filled.
		field(&b, "ADR", ",,"+strings.Join(parts, ","))
	}

	b.WriteString(";")
	return b.String(), nil
}

func field(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(key)
	b.WriteString(":")
	b.WriteString(value)
	b.WriteString(";")
}

var escaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, `:`, `\:`, `"`, `\"`)

func escape(s string) string {
	return escaper.Replace(strings.TrimSpace(s))
}
