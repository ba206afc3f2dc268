// Package testdb provides helpers for PostgreSQL integration tests.
//
// Tests run inside a transaction that is always rolled back, so they do not
// see each other's rows and need no cleanup:
//
//	func TestRoster(t *testing.T) {
//	    db := testdb.Open(t) // skips when no database is configured
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s := postgres.NewPostgresRosterStore(tx, nil)
//	        // ...
//	    })
//	}
//
// The database URL is read from LESSONKIT_TEST_DATABASE_URL, falling back to
// DATABASE_URL.
package testdb
