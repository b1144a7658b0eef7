// Package api contains the HTTP transport layer: request/response models,
// chi handlers, and the mapping from internal errors to safe HTTP
// responses. Handlers validate input, delegate to the service layer, and
// never encode business rules themselves.
package api
