package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plushmarket/storefront/internal/service"
	"github.com/plushmarket/storefront/internal/store"
)

// respondError maps the service error taxonomy onto HTTP statuses. Remote
// store errors pass their message through; an unconfigured processor gets a
// distinct code so the UI can route to setup instead of asking for a retry.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotAuthorized),
		errors.Is(err, service.ErrOrderAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrMissingAddress),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidProduct),
		errors.Is(err, service.ErrInvalidPaymentConfig):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPaymentNotConfigured):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "payment_not_configured"})
	case errors.Is(err, service.ErrAlreadyDecided),
		errors.Is(err, service.ErrIllegalTransition),
		errors.Is(err, service.ErrSessionWithoutURL):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrSubmissionNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		var storeErr *store.Error
		if errors.As(err, &storeErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": storeErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
