// Package postgres provides the PostgreSQL implementation of the roster
// store. Connections go through the pgx database/sql driver; the schema is
// managed by embedded goose migrations.
package postgres
