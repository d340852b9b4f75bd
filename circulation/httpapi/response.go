package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/circulation/engine"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

// GenericResponse is the body of every circulation endpoint.
type GenericResponse struct {
	Success     bool   `json:"success"`
	Response    any    `json:"response"`
	Description string `json:"description"`
}

// StatusCodeOf maps an engine error to its HTTP status code.
func StatusCodeOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidTransition), errors.Is(err, core.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respond[T any](c *gin.Context, result engine.Result[T], payload any) {
	c.JSON(StatusCodeOf(result.Err), GenericResponse{
		Success:     result.Success,
		Response:    payload,
		Description: result.Description,
	})
}

func respondBadRequest(c *gin.Context, description string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, GenericResponse{
		Success:     false,
		Description: description,
	})
}
