// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber app itself; this package only defines
// the listen port, the API key checked by the auth middleware, and the time
// limit applied to syncs triggered over HTTP.
package server
