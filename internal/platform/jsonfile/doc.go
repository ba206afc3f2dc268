// Package jsonfile stores todo lists, the book catalogue and student records
// as JSON documents on an afero filesystem. Every save writes a temporary
// file and renames it over the target; the book store also keeps a copy of
// the previous document next to it.
package jsonfile
