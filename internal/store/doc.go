// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying storage (SQLite, PostgreSQL,
// JSON files, bbolt) from the services that orchestrate the lesson models.
package store
