// Package web provides the server-rendered HTTP layer of the application:
// handlers for the task pages, HTML form decoding and validation, template
// rendering, and request middleware. All responses are HTML pages or
// redirects; there is no JSON API surface.
package web
