package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/codegend/pkg/apperrors"
)

// writeError writes a plain {"error": message} envelope with status code.
func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{Error: message})
}

// statusForKind maps a Kind to the HTTP status named in spec §6 "Status
// codes". Kinds surfaced inside a structured {status:"error"} body (rather
// than as a transport-level failure) still return 200 — statusForKind is
// only consulted for the transport-level cases spec §6 lists explicitly.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindInvalidInput:
		return http.StatusBadRequest
	case apperrors.KindJobNotFound:
		return http.StatusNotFound
	case apperrors.KindQueueFull:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// mapEngineError maps an engine error to an HTTP status and a safe message,
// logging anything unexpected. Never includes the wrapped cause in the
// message — only Error.Message, matching the no-raw-payload discipline
// named in spec §7.
func mapEngineError(err error) (int, string) {
	if appErr, ok := apperrors.As(err); ok {
		return statusForKind(appErr.Kind), appErr.Message
	}
	if errors.Is(err, apperrors.ErrJobNotFound) {
		return http.StatusNotFound, "job not found"
	}
	if errors.Is(err, apperrors.ErrQueueFull) {
		return http.StatusConflict, "queue is at capacity"
	}
	if errors.Is(err, apperrors.ErrNotCancellable) {
		return http.StatusConflict, "job is not in a cancellable state"
	}
	slog.Error("unexpected engine error", "error", err)
	return http.StatusInternalServerError, "internal server error"
}
