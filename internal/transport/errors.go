package transport

import (
	"errors"
	"net/http"

	"shophub/internal/middleware"
	"shophub/internal/repository"
	"shophub/internal/service"

	"go.uber.org/zap"
)

// respondWithServiceError maps service and repository errors onto the error envelope
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error, action string) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, repository.ErrSlugTaken):
		middleware.RespondWithError(w, http.StatusConflict, "product with this slug already exists")
	case errors.Is(err, service.ErrInvalidProduct):
		middleware.RespondWithErrorDetails(w, http.StatusBadRequest, middleware.CodeValidationFailed, err.Error(), nil)
	case errors.Is(err, repository.ErrCartConflict):
		middleware.RespondWithError(w, http.StatusConflict, "cart was modified concurrently, retry the request")
	case errors.Is(err, service.ErrCatalogUnavailable):
		logger.Error("Catalog unavailable", zap.String("action", action), zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "catalog is temporarily unavailable")
	default:
		logger.Error("Request failed", zap.String("action", action), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to "+action)
	}
}
