package httpadapter

import (
	"net/http"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrMalformedPayload):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrRecognitionFailed):
		return http.StatusUnprocessableEntity
	case domain.IsKind(err, domain.ErrEngineUnavailable):
		return http.StatusServiceUnavailable
	case domain.IsKind(err, domain.ErrPersistenceFailed):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
