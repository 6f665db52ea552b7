// Package httpapi serves the interpreter-facing HTTP API.
//
// Every route lives under /db_queries, optionally behind a configured root
// path, and answers JSON of the form {"status": <code>, "response": <value>}.
// Failures answer {"status": <code>, "detail": <message>}.
package httpapi
