package textutil

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// IsWordRune reports whether r belongs inside a word: a letter, mark, digit
// or underscore in any script.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r)
}

// FindWordOccurrences returns the byte offsets at which word appears as a
// whole word in text. Word boundaries follow IsWordRune, so accented and
// non-Latin letters count as word characters.
func FindWordOccurrences(text, word string, caseSensitive bool) []int {
	if word == "" {
		return []int{}
	}
	pattern := regexp.QuoteMeta(word)
	if !caseSensitive {
		pattern = `(?i)` + pattern
	}
	re := regexp.MustCompile(pattern)

	out := []int{}
	for pos := 0; pos < len(text); {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if atBoundary(text, start) && atBoundary(text, end) {
			out = append(out, start)
			pos = end
			continue
		}
		// Retry one rune later so an overlapping whole-word match is not skipped.
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return out
}

// atBoundary reports whether exactly one side of byte offset i is a word rune.
func atBoundary(text string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:i])
		before = IsWordRune(r)
	}
	if i < len(text) {
		r, _ := utf8.DecodeRuneInString(text[i:])
		after = IsWordRune(r)
	}
	return before != after
}
