// Package config loads application settings from LESSONKIT_ environment
// variables on top of built-in defaults, and validates them before use.
package config
