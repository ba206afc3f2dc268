package password

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Strength levels
const (
	LevelVeryWeak   = "Very Weak"
	LevelWeak       = "Weak"
	LevelFair       = "Fair"
	LevelGood       = "Good"
	LevelStrong     = "Strong"
	LevelVeryStrong = "Very Strong"
)

var (
	lowerRe      = regexp.MustCompile(`[a-z]`)
	upperRe      = regexp.MustCompile(`[A-Z]`)
	digitRe      = regexp.MustCompile(`\d`)
	specialRe    = regexp.MustCompile("[!@#$%^&*(),.?\":{}|<>_\\-+=\\[\\]\\\\/~`]")
	substituteRe = regexp.MustCompile(`[o0]{2,}|[i1]{2,}|[e3]{2,}|[a4]{2,}|[s5$]{2,}`)
	yearRe       = regexp.MustCompile(`19\d{2}|20[012]\d`)
	keyboardRuns = []string{"abc", "bcd", "cde", "123", "234", "345", "678", "789", "qwe", "wer", "ert", "asd", "sdf", "dfg"}
	commonWords  = []string{"password", "admin", "user", "login", "welcome", "hello", "letmein", "monkey", "dragon", "master", "sunshine"}
)

// Strength is the result of CheckStrength.
type Strength struct {
	Score       int      `json:"score"`
	Level       string   `json:"level"`
	Entropy     float64  `json:"entropy"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// Entropy returns the Shannon entropy of the password's characters in bits
// per character, multiplied by its length.
func Entropy(password string) float64 {
	runes := []rune(password)
	if len(runes) == 0 {
		return 0
	}
	freq := make(map[rune]int)
	for _, r := range runes {
		freq[r]++
	}
	n := float64(len(runes))
	var h float64
	for _, c := range freq {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h * n
}

// CheckStrength scores a password from 0 to 100 as the sum of length
// (0..30), character variety (0..25), entropy (0..25) and pattern (0..20)
// components.
func CheckStrength(password string) Strength {
	var issues []string
	suggestions := []string{}

	length := len([]rune(password))
	var lengthScore int
	switch {
	case length < 8:
		issues = append(issues, fmt.Sprintf("Too short: %d chars (min 8)", length))
		suggestions = append(suggestions, "Use at least 8 characters (12+ recommended)")
	case length < 12:
		lengthScore = 15
		suggestions = append(suggestions, "Consider 12+ characters for better security")
	case length < 16:
		lengthScore = 25
	default:
		lengthScore = 30
	}

	classes := []struct {
		present    bool
		suggestion string
	}{
		{lowerRe.MatchString(password), "Add lowercase letters (a-z)"},
		{upperRe.MatchString(password), "Add uppercase letters (A-Z)"},
		{digitRe.MatchString(password), "Add numbers (0-9)"},
		{specialRe.MatchString(password), "Add special characters (!@#$%^&*)"},
	}
	var variety int
	for _, c := range classes {
		if c.present {
			variety++
		} else {
			suggestions = append(suggestions, c.suggestion)
		}
	}
	varietyScore := float64(variety) * 6.25

	entropy := Entropy(password)
	var entropyScore float64
	if entropy > 0 {
		entropyScore = math.Min(25, entropy/40*25)
	}
	if entropy < 20 {
		suggestions = append(suggestions,
			fmt.Sprintf("Low randomness (entropy: %.1f bits), increase variety/length", entropy))
	}

	patternScore := 20
	lower := strings.ToLower(password)
	if hasRepeatedRun(password, 3) {
		issues = append(issues, "Repeated characters (e.g., aaa, 111)")
		patternScore -= 5
	}
	if containsAny(lower, keyboardRuns) {
		issues = append(issues, "Keyboard/sequential patterns detected")
		patternScore -= 5
	}
	if substituteRe.MatchString(lower) {
		suggestions = append(suggestions, "Simple substitutions (0→O, 1→I) are predictable")
		patternScore -= 3
	}
	if containsAny(lower, commonWords) {
		issues = append(issues, "Contains common dictionary word")
		patternScore -= 10
	}
	if yearRe.MatchString(password) {
		suggestions = append(suggestions, "Avoid using years/dates")
		patternScore -= 3
	}
	patternScore = max(0, patternScore)

	total := int(float64(lengthScore) + varietyScore + entropyScore + float64(patternScore))
	total = max(0, min(100, total))

	if total < 90 {
		suggestions = append(suggestions, fmt.Sprintf(
			"Score breakdown: Length=%d/30, Variety=%.0f/25, Entropy=%.0f/25, Patterns=%d/20",
			lengthScore, varietyScore, entropyScore, patternScore))
	}
	if issues == nil {
		issues = []string{}
	}

	return Strength{
		Score:       total,
		Level:       levelFor(total),
		Entropy:     entropy,
		Issues:      issues,
		Suggestions: suggestions,
	}
}

func levelFor(score int) string {
	switch {
	case score < 25:
		return LevelVeryWeak
	case score < 40:
		return LevelWeak
	case score < 60:
		return LevelFair
	case score < 75:
		return LevelGood
	case score < 90:
		return LevelStrong
	default:
		return LevelVeryStrong
	}
}

// hasRepeatedRun reports whether any character occurs n or more times in a row.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for i, r := range []rune(s) {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		if run >= n {
			return true
		}
		prev = r
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
