package handlers

import (
	"net/http"

	"github.com/cmartsolutions/bookstore-api/middleware"
	"github.com/cmartsolutions/bookstore-api/services"
	"github.com/cmartsolutions/bookstore-api/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP statuses. Bodies are
// written as plain text: the response normalizer owns the envelope.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	switch {
	case services.IsNotFoundError(err):
		utils.WriteNotFound(w, err.Error())

	case services.IsValidationError(err):
		utils.WriteBadRequest(w, err.Error())

	case services.IsConflictError(err):
		utils.WriteConflict(w, err.Error())

	case services.IsUnauthorizedError(err):
		utils.WriteUnauthorized(w, err.Error())

	case services.IsForbiddenError(err):
		utils.WriteForbidden(w, err.Error())

	default:
		// Internal and unclassified errors: log the cause, return a
		// generic message.
		logger.Error("internal server error",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
			zap.Error(err))
		utils.WriteInternalServerError(w, "An internal error occurred.")
	}
}
