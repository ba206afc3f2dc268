package drills

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/phrazzld/lessonkit/internal/password"
)

const vowels = "aeiou"

// Reverse reverses s by rune.
func Reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// CountVowels counts a, e, i, o and u in either case.
func CountVowels(s string) int {
	n := 0
	for _, r := range strings.ToLower(s) {
		if strings.ContainsRune(vowels, r) {
			n++
		}
	}
	return n
}

// IsPalindrome reports whether s reads the same backwards, ignoring case and
// anything that is not a letter or digit.
func IsPalindrome(s string) bool {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	normalized := cases.Fold().String(b.String())
	return normalized == Reverse(normalized)
}

// EmailDomain returns the part after the last '@'.
func EmailDomain(email string) (string, bool) {
	email = strings.TrimSpace(email)
	i := strings.LastIndexByte(email, '@')
	if i < 0 {
		return "", false
	}
	return email[i+1:], true
}

// EveryOther returns every second rune of s starting at offset 0 or 1, which
// untangles two words woven together letter by letter.
func EveryOther(s string, offset int) string {
	var b strings.Builder
	for i, r := range []rune(s) {
		if i%2 == offset {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GeneratePassword returns a random password; see password.Generate.
func GeneratePassword(length int) (string, error) {
	return password.Generate(length)
}
