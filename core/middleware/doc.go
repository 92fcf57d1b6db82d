// Package middleware groups the Fiber middleware of the HTTP server.
//
//   - auth: rejects requests without the configured X-API-Key.
//   - rayid: tags every request with an X-Ray-ID for log correlation.
//
// Register rayid first so the auth and request logs carry the id.
package middleware
