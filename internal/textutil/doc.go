// Package textutil validates and extracts structured values from free text:
// e-mail addresses, phone numbers, word positions and calendar dates.
package textutil
