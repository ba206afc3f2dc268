// Package password generates random passwords, scores their strength and
// hashes them with bcrypt.
package password
