package textutil

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email   string
		valid   bool
		message string
	}{
		{"user@example.com", true, "Valid email format"},
		{"  user.name+tag@mail.example.org ", true, "Valid email format"},
		{"", false, "Email cannot be empty"},
		{"a@b@c.com", false, "Email must contain exactly one @"},
		{"@example.com", false, "Missing local part (before @)"},
		{".user@example.com", false, "Local part cannot start or end with a dot"},
		{"us..er@example.com", false, "Local part cannot contain consecutive dots"},
		{"user@domain", false, "Domain missing top-level domain (e.g., .com)"},
		{"user@domain..com", false, "Domain has empty segments between dots"},
		{"us er@example.com", false, "Invalid characters or format"},
		{"user@example.c", false, "Invalid characters or format"},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			t.Parallel()
			res := ValidateEmail(tt.email)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.message, res.Message)
			if !tt.valid {
				assert.NotEmpty(t, res.Suggestions)
			}
		})
	}
}

func TestValidateEmail_LocalPartTooLong(t *testing.T) {
	t.Parallel()
	local := ""
	for range 65 {
		local += "a"
	}
	res := ValidateEmail(local + "@example.com")
	assert.False(t, res.Valid)
	assert.Equal(t, "Local part too long (max 64)", res.Message)
}

func TestValidateEmail_TypoSuggestions(t *testing.T) {
	t.Parallel()

	res := ValidateEmail("ann@gmail.co")
	assert.True(t, res.Valid)
	assert.Equal(t, []string{"Did you mean ann@gmail.com?"}, res.Suggestions)

	res = ValidateEmail("ann@gmail.com")
	assert.Empty(t, res.Suggestions)
}

func TestFormatPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		number string
		format string
		want   string
	}{
		{"1234567890", "us", "(123) 456-7890"},
		{"11234567890", "us_intl", "+1 (123) 456-7890"},
		{"123-456 7890", "dots", "123.456.7890"},
		{"2012345678", "uk", "+44 201 2345678"},
	}
	for _, tt := range tests {
		got, padded, err := FormatPhone(tt.number, tt.format, true)
		require.NoError(t, err, tt.number)
		assert.Equal(t, tt.want, got)
		assert.False(t, padded)
	}
}

func TestFormatPhone_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := FormatPhone("1234567890", "fr", true)
	assert.ErrorIs(t, err, ErrUnknownPhoneFormat)
	assert.Contains(t, err.Error(), "dots, uk, us, us_intl")

	_, _, err = FormatPhone("12345", "us", true)
	assert.ErrorIs(t, err, ErrPhoneTooShort)

	_, _, err = FormatPhone("21234567890", "us", true)
	assert.ErrorIs(t, err, ErrPhoneCountryCode)

	_, _, err = FormatPhone("11234567890", "uk", true)
	assert.ErrorIs(t, err, ErrPhoneTooLong)

	got, padded, err := FormatPhone("4567890", "us", false)
	require.NoError(t, err)
	assert.True(t, padded)
	assert.Equal(t, "(000) 456-7890", got)
}

func TestFindWordOccurrences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		text          string
		word          string
		caseSensitive bool
		want          []int
	}{
		{"ascii sentence", "The cat sat. The cat!", "cat", false, []int{4, 19}},
		{"case sensitive", "Cat cat cater", "cat", true, []int{4}},
		{"case insensitive", "Cat cat cater", "cat", false, []int{0, 4}},
		{"punctuation inside word", "is a.b here", "a.b", false, []int{3}},
		{"empty word", "anything", "", false, []int{}},
		{"accented word", "le café noir", "café", false, []int{3}},
		{"accented prefix is part of the word", "écat cat", "cat", false, []int{6}},
		{"accented suffix is part of the word", "caté cat", "cat", false, []int{6}},
		{"accented case folding", "Le CAFÉ noir", "café", false, []int{3}},
		{"cyrillic", "котик кот", "кот", true, []int{11}},
		{"underscore joins words", "x_cat cat", "cat", false, []int{6}},
		{"overlapping candidates", "ababa aba", "aba", false, []int{6}},
		{"no match", "concatenate", "cat", false, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FindWordOccurrences(tt.text, tt.word, tt.caseSensitive))
		})
	}
}

func TestIsWordRune(t *testing.T) {
	t.Parallel()

	for _, r := range []rune{'a', 'Z', '7', '_', 'é', 'ж', '\u0301', '٣'} {
		assert.True(t, IsWordRune(r), "%q", r)
	}
	for _, r := range []rune{' ', '.', '-', '!', '\t'} {
		assert.False(t, IsWordRune(r), "%q", r)
	}
}

func TestExtractDates(t *testing.T) {
	t.Parallel()

	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name string
		text string
		want []ExtractedDate
	}{
		{
			name: "iso and abbreviated, invalid dropped",
			text: "Meet on 2024-12-25, or Dec 31, 2024. Invalid: 2024-02-30.",
			want: []ExtractedDate{
				{Text: "2024-12-25", Date: day(2024, 12, 25), Format: "ISO"},
				{Text: "Dec 31, 2024", Date: day(2024, 12, 31), Format: "MDY_ABV"},
			},
		},
		{
			name: "full month names",
			text: "Born 5 March 1990, married June 7, 2015",
			want: []ExtractedDate{
				{Text: "5 March 1990", Date: day(1990, 3, 5), Format: "DMY_FULL"},
				{Text: "June 7, 2015", Date: day(2015, 6, 7), Format: "MDY_FULL"},
			},
		},
		{
			name: "numeric forms and duplicates",
			text: "Due 12/25/2024 (also 25.12.2024) and 2024-12-25",
			want: []ExtractedDate{
				{Text: "2024-12-25", Date: day(2024, 12, 25), Format: "ISO"},
			},
		},
		{
			name: "year out of range",
			text: "Founded 1850-01-01 and closed 31.12.2101",
			want: []ExtractedDate{},
		},
		{
			name: "case insensitive month",
			text: "on 1 JAN 2020",
			want: []ExtractedDate{
				{Text: "1 JAN 2020", Date: day(2020, 1, 1), Format: "DMY_ABV"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractDates(tt.text, DefaultMinYear, DefaultMaxYear)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractDates() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
