// Package redact strips credentials, file paths, SQL and other internals from
// strings before they are logged or returned to clients. Store and migration
// errors routinely carry DSNs, database file locations and query text.
package redact

import "regexp"

// Placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	re          *regexp.Regexp
	placeholder string
}

// Rules run in order; stack traces go first because they contain paths.
var rules = []rule{
	{regexp.MustCompile(`(?s)goroutine \d+ \[.*`), RedactedStackPlaceholder},
	{regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mysql|database)://[^@\s]+@`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]+`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?i)\b(SELECT\b.+\bFROM|INSERT\s+INTO|UPDATE\s+\w+\s+SET|DELETE\s+FROM)\b[^;]*`), RedactedSQLPlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`), RedactedPathPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), RedactedEmailPlaceholder},
}

// String redacts sensitive fragments of input.
func String(input string) string {
	if input == "" {
		return input
	}
	for _, r := range rules {
		input = r.re.ReplaceAllString(input, r.placeholder)
	}
	return input
}

// Error redacts err.Error(); a nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
