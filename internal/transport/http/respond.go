package http

import (
	"errors"
	"net/http"

	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
)

// abortWithServiceError переводит ошибки сервисного слоя в HTTP-статусы.
func abortWithServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCartNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrUnknownKind):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrCartLocked),
		errors.Is(err, service.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, service.ErrQuantityInvalid),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidBuyingType),
		errors.Is(err, service.ErrImageInvalid),
		errors.Is(err, service.ErrImageTooLarge),
		errors.Is(err, service.ErrImageResolution):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
