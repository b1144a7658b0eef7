package api

import (
	"net/http"

	"github.com/mercato/storefront-api/internal/api/shared"
)

// Thin forwarders so handlers in this package read without the shared
// qualifier. The implementations live in the shared package, which the
// middleware also uses.

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	shared.RespondWithJSON(w, r, status, data)
}

// RespondWithError writes a JSON error response with the given status code
// and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	shared.RespondWithError(w, r, status, message)
}

// RespondWithServiceError maps err to a status code and sanitized message,
// writes the error response, and logs the underlying error.
func RespondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
