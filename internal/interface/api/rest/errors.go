package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"project-manager-api/internal/domain/ingest"
)

const (
	codeInternal = "INTERNAL_ERROR"
	codeNotFound = "NOT_FOUND"
)

type (
	ErrorBody struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	ErrorResponse struct {
		Error ErrorBody `json:"error"`
	}
)

func abortWithError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: msg}})
}

// StatusOf maps a pipeline error kind to its HTTP status.
func StatusOf(kind ingest.Kind) int {
	switch kind {
	case ingest.KindUnauthenticated:
		return http.StatusUnauthorized
	case ingest.KindBadRequest, ingest.KindPayloadTooLarge:
		return http.StatusBadRequest
	case ingest.KindStorageUnavailable:
		return http.StatusBadGateway
	case ingest.KindPersistence:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// abortWithIngestError reports false when err carries no pipeline kind.
func abortWithIngestError(c *gin.Context, err error) bool {
	var ie *ingest.Error
	if !errors.As(err, &ie) {
		return false
	}
	abortWithError(c, StatusOf(ie.Kind), string(ie.Kind), ie.Message)
	return true
}
