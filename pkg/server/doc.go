// Package server exposes the solve pipeline as a JSON HTTP API.
//
// Routes:
//
//	GET  /healthz                          liveness and build info
//	POST /v1/layouts                       solve a document, optionally render it
//	GET  /v1/layouts/{key}                 fetch a solved layout by key
//	GET  /v1/layouts/{key}/render/{format} draw a stored layout (svg, text, json)
//
// Every response carries an X-Request-ID header. Errors are JSON objects with
// the coded error message; a rule cycle is 422 Unprocessable Entity.
package server
