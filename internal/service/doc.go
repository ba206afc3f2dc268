// Package service contains the application use cases behind the HTTP API and
// the command-line tool. Each service owns the in-memory model of one lesson
// (ledger, roster, library, todo list, blog, students), guards it for
// concurrent callers, and persists it through the interfaces in
// internal/store.
//
// Error handling principles:
//  1. Expected conditions are returned as sentinel errors from internal/domain
//     or internal/store, so callers can use errors.Is.
//  2. Unexpected failures are wrapped in a ServiceError naming the service and
//     operation.
//  3. The API layer maps both to HTTP status codes.
package service
