// Package api handles incoming HTTP requests for the task extraction
// service: multipart upload parsing, response formatting, and the mapping of
// domain errors to status codes. It adapts HTTP concerns to the extraction
// service and never exposes raw error text to clients.
package api
