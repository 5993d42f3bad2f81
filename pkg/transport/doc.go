// Package transport serves the blog API over HTTP. It owns routing, JSON
// encoding, session cookies, and the middleware stack (request ID,
// logging, recovery, metrics); domain decisions live in pkg/auth and
// pkg/storage.
package transport
