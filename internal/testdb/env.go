package testdb

import "os"

// Environment variables checked for a test database, in order.
const (
	EnvTestDatabaseURL = "LESSONKIT_TEST_DATABASE_URL"
	EnvDatabaseURL     = "DATABASE_URL"
)

// GetTestDatabaseURL returns the first configured test database URL, or ""
// when none is set.
func GetTestDatabaseURL() string {
	for _, name := range []string{EnvTestDatabaseURL, EnvDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// isCIEnvironment reports whether a common CI variable is set.
func isCIEnvironment() bool {
	for _, name := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}
