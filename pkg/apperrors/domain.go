package apperrors

import (
	"net/http"
)

// Domain factories for the notification pipeline error taxonomy.
//
// ProviderError and TransportError never cross the API boundary: provider
// failures are recovered by the template fallback inside the factory, and
// transport failures only get logged by the dispatch worker. They still carry
// an HTTP code so a stray escape degrades into a well-formed 502 response.

// ErrNotFound converts a repository not-found error into a 404
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ProviderError marks an AI vendor failure (text generation or transcription)
func ProviderError(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "ai", "AI provider unavailable", http.StatusBadGateway)
}

// TransportError marks an email delivery failure
func TransportError(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "email", "Email delivery failed", http.StatusBadGateway)
}

// PersistenceError marks a record-store read/write failure. Callers inside a
// batch tick must log it and continue with the next item.
func PersistenceError(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "store", "Storage operation failed", http.StatusInternalServerError)
}

// ErrUnknownNotificationType is returned by the typed-creation API for an
// unrecognized type discriminator
func ErrUnknownNotificationType(notificationType string) *AppError {
	return New(CodeInvalidOperation, "notifications", "Unknown notification type: "+notificationType, http.StatusBadRequest)
}
