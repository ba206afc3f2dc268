// Package api adapts the lessonkit services to HTTP. Handlers decode and
// validate JSON requests, call a service and translate domain and store
// errors into status codes with client-safe messages.
package api
