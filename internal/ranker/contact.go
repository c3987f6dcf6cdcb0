package ranker

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NotFound is reported for contact fields that could not be extracted.
const NotFound = "Not Found"

var (
	reContactEmail = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	reContactPhone = regexp.MustCompile(`(\+?\p{Nd}{1,3}[-\s]?)?\p{Nd}{10}`)
)

// Contact is the identity block pulled from a resume.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ExtractContact finds an email, a phone number, and a likely name in raw
// (uncleaned) resume text. The name is the first line of two to four words
// whose first word starts with an uppercase letter.
func ExtractContact(raw string) Contact {
	c := Contact{Name: NotFound, Email: NotFound, Phone: NotFound}

	if m := reContactEmail.FindString(raw); m != "" {
		c.Email = m
	}
	if m := reContactPhone.FindString(raw); m != "" {
		c.Phone = m
	}

	for _, line := range strings.Split(raw, "\n") {
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		first, _ := utf8.DecodeRuneInString(words[0])
		if unicode.IsUpper(first) {
			c.Name = strings.TrimSpace(line)
			break
		}
	}

	return c
}
