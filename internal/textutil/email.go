package textutil

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxLocalPartLength = 64

var emailPattern = regexp.MustCompile(`^(?P<local>[A-Za-z0-9._%+-]+)@(?P<domain>[A-Za-z0-9.-]+)\.(?P<tld>[A-Za-z]{2,})$`)

// commonMailDomains are checked for likely typos, in this order.
var commonMailDomains = []string{"gmail.com", "hotmail.com", "icloud.com", "outlook.com", "yahoo.com"}

// EmailResult is the outcome of ValidateEmail.
type EmailResult struct {
	Valid       bool     `json:"valid"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// ValidateEmail applies pragmatic form rules to an address and explains the
// first rule it breaks. A valid address may still carry suggestions when its
// domain looks like a misspelt popular mail provider.
func ValidateEmail(email string) EmailResult {
	email = strings.TrimSpace(email)
	invalid := func(msg string, suggestions ...string) EmailResult {
		return EmailResult{Message: msg, Suggestions: suggestions}
	}

	if email == "" {
		return invalid("Email cannot be empty", "Example: user@example.com")
	}
	if strings.Count(email, "@") != 1 {
		return invalid("Email must contain exactly one @", "Format: local@domain.tld")
	}

	local, domain, _ := strings.Cut(email, "@")
	switch {
	case local == "":
		return invalid("Missing local part (before @)", "Add username before @")
	case strings.HasPrefix(local, ".") || strings.HasSuffix(local, "."):
		return invalid("Local part cannot start or end with a dot",
			"Valid: user.name@domain.com", "Invalid: .user@domain.com")
	case strings.Contains(local, ".."):
		return invalid("Local part cannot contain consecutive dots", "Replace '..' with '.'")
	case utf8.RuneCountInString(local) > maxLocalPartLength:
		return invalid(fmt.Sprintf("Local part too long (max %d)", maxLocalPartLength), "Shorten before @")
	case !strings.Contains(domain, "."):
		return invalid("Domain missing top-level domain (e.g., .com)", "Use domain.tld like example.com")
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" {
			return invalid("Domain has empty segments between dots", "Remove extra dots")
		}
	}
	if !emailPattern.MatchString(email) {
		return invalid("Invalid characters or format",
			"Allowed in local: letters, digits, ._%+-",
			"Allowed in domain: letters, digits, - and .")
	}

	suggestions := []string{}
	lower := strings.ToLower(domain)
	for _, d := range commonMailDomains {
		name, _, _ := strings.Cut(d, ".")
		if strings.Contains(lower, name) && d != lower {
			suggestions = append(suggestions, fmt.Sprintf("Did you mean %s@%s?", local, d))
		}
	}
	return EmailResult{Valid: true, Message: "Valid email format", Suggestions: suggestions}
}
