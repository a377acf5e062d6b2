package httpserver

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"grocerystore/internal/domain"
	ordersvc "grocerystore/internal/service/order"
	"github.com/gin-gonic/gin"
)

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"message": message})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
}

// serverError hides the cause from the client and logs it server-side.
func serverError(c *gin.Context, logger *log.Logger, scope string, err error) {
	logger.Printf("%s: %v", scope, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}

// respondOrderError maps placement/update failures onto the API contract.
func respondOrderError(c *gin.Context, logger *log.Logger, scope string, err error) {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		badRequest(c, "Cart is empty")
	case errors.As(err, &stockErr):
		badRequest(c, fmt.Sprintf("Insufficient stock for %s", stockErr.ProductName))
	case errors.Is(err, domain.ErrInvalidStatus):
		badRequest(c, "Invalid order status")
	case errors.Is(err, ordersvc.ErrInvalidDeliveryDate):
		badRequest(c, "Invalid expectedDelivery date")
	case errors.Is(err, domain.ErrNotFound):
		notFound(c, "Order not found")
	default:
		serverError(c, logger, scope, err)
	}
}
