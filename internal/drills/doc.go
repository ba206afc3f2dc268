// Package drills holds the small list, map, number and string exercises that
// back the CLI's quick commands. Functions are pure and return new values
// rather than mutating their arguments.
package drills
