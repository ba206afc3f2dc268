package textutil

import (
	"regexp"
	"time"
)

// Default year bounds for ExtractDates.
const (
	DefaultMinYear = 1900
	DefaultMaxYear = 2100
)

const monthNames = `January|February|March|April|May|June|July|August|September|October|November|December`
const monthAbbrevs = `Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec`

type datePattern struct {
	re     *regexp.Regexp
	layout string
	label  string
}

// datePatterns are tried in order; an earlier match claims its span.
var datePatterns = []datePattern{
	{regexp.MustCompile(`(?i)\b(\d{4})-(\d{2})-(\d{2})\b`), "2006-01-02", "ISO"},
	{regexp.MustCompile(`(?i)\b(\d{1,2})\s+(` + monthNames + `)\s+(\d{4})\b`), "2 January 2006", "DMY_FULL"},
	{regexp.MustCompile(`(?i)\b(` + monthNames + `)\s+(\d{1,2}),?\s+(\d{4})\b`), "January 2, 2006", "MDY_FULL"},
	{regexp.MustCompile(`(?i)\b(\d{1,2})\s+(` + monthAbbrevs + `)[a-z]*\s+(\d{4})\b`), "2 Jan 2006", "DMY_ABV"},
	{regexp.MustCompile(`(?i)\b(` + monthAbbrevs + `)[a-z]*\s+(\d{1,2}),?\s+(\d{4})\b`), "Jan 2, 2006", "MDY_ABV"},
	{regexp.MustCompile(`(?i)\b(\d{1,2})/(\d{1,2})/(\d{4})\b`), "1/2/2006", "US_NUMERIC"},
	{regexp.MustCompile(`(?i)\b(\d{1,2})\.(\d{1,2})\.(\d{4})\b`), "2.1.2006", "EU_NUMERIC"},
}

// whitespace runs collapse to one space before parsing
var spaceRun = regexp.MustCompile(`\s+`)

// ExtractedDate is one date found in text.
type ExtractedDate struct {
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
	Format string    `json:"format"`
}

// ExtractDates finds dates written in ISO, day-month-year, month-day-year
// (full or abbreviated month names), US numeric and European numeric forms.
//
// Patterns are applied in that order and a match overlapping an already
// accepted one is skipped. Matches that are not real calendar dates, or
// whose year is outside minYear..maxYear, are dropped. When the same date
// appears more than once only its first occurrence is kept.
func ExtractDates(text string, minYear, maxYear int) []ExtractedDate {
	used := make([]bool, len(text))
	var found []ExtractedDate

	for _, p := range datePatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			if overlaps(used, start, end) {
				continue
			}
			s := text[start:end]
			d, err := time.Parse(p.layout, spaceRun.ReplaceAllString(s, " "))
			if err != nil || d.Year() < minYear || d.Year() > maxYear {
				continue
			}
			found = append(found, ExtractedDate{Text: s, Date: d, Format: p.label})
			for i := start; i < end; i++ {
				used[i] = true
			}
		}
	}

	seen := make(map[time.Time]bool, len(found))
	unique := []ExtractedDate{}
	for _, f := range found {
		if !seen[f.Date] {
			seen[f.Date] = true
			unique = append(unique, f)
		}
	}
	return unique
}

func overlaps(used []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if used[i] {
			return true
		}
	}
	return false
}
