// Package textproc cleans raw document text and pulls out structured contact fields.
package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

var (
	nonASCIIRegex   = regexp.MustCompile(`[^\x00-\x7F]+`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	emailRegex      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRegex      = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?(\(?\d{3}\)?[-.\s]?)?\d{3}[-.\s]?\d{4}`)
	nonDigitRegex   = regexp.MustCompile(`\D`)
)

// minPhoneDigits filters out short numeric runs such as years or zip codes
const minPhoneDigits = 10

// FoldAccents strips combining marks so "Café" becomes "Cafe".
func FoldAccents(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return result
}

// Clean folds accents, replaces the remaining non-ASCII runs (bullets, dashes, emoji) with
// spaces and collapses all whitespace, newlines included, into single spaces.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = FoldAccents(text)
	text = nonASCIIRegex.ReplaceAllString(text, " ")
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Normalize cleans and lower-cases text
func Normalize(text string) string {
	return strings.ToLower(Clean(text))
}

// IsBlank reports whether text has no visible content
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Emails returns the distinct email addresses in order of first appearance
func Emails(text string) []string {
	found := emailRegex.FindAllString(text, -1)
	seen := make(map[string]bool, len(found))
	emails := make([]string, 0, len(found))
	for _, email := range found {
		if seen[email] {
			continue
		}
		seen[email] = true
		emails = append(emails, email)
	}
	return emails
}

// Phones returns phone-number-like sequences carrying at least ten digits.
// Accepts forms like "(555) 123-4567", "555-123-4567" and "+1 555 123 4567".
func Phones(text string) []string {
	matches := phoneRegex.FindAllString(text, -1)
	phones := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(nonDigitRegex.ReplaceAllString(m, "")) < minPhoneDigits {
			continue
		}
		phones = append(phones, strings.TrimSpace(m))
	}
	return phones
}

// Contact extracts every structured contact field from raw (uncleaned) text
func Contact(text string) types.ContactInfo {
	return types.ContactInfo{
		Emails: Emails(text),
		Phones: Phones(text),
	}
}

// CandidateName derives a display name from the first email's local part.
// Without an email it falls back to "Candidate-" and the first four characters of id.
func CandidateName(contact types.ContactInfo, id string) string {
	if len(contact.Emails) > 0 {
		if local, _, ok := strings.Cut(contact.Emails[0], "@"); ok && local != "" {
			return local
		}
	}
	short := id
	if len(short) > 4 {
		short = short[:4]
	}
	return "Candidate-" + short
}
