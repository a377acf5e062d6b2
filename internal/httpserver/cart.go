package httpserver

import (
	"errors"
	"log"
	"net/http"

	"grocerystore/internal/domain"
	"github.com/gin-gonic/gin"
)

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func getCartHandler(logger *log.Logger, svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			unauthorized(c)
			return
		}
		cart, err := svc.Get(c.Request.Context(), user.ID)
		if err != nil {
			serverError(c, logger, "get cart", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
	}
}

func addCartItemHandler(logger *log.Logger, svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			unauthorized(c)
			return
		}
		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.Quantity <= 0 {
			badRequest(c, "productId and a positive quantity are required")
			return
		}

		cart, err := svc.Add(c.Request.Context(), user.ID, req.ProductID, req.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFound(c, "Product not found")
				return
			}
			serverError(c, logger, "add cart item", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
	}
}

func updateCartItemHandler(logger *log.Logger, svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			unauthorized(c)
			return
		}
		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
			badRequest(c, "productId is required")
			return
		}

		cart, err := svc.Update(c.Request.Context(), user.ID, req.ProductID, req.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFound(c, "Item not in cart")
				return
			}
			serverError(c, logger, "update cart item", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
	}
}

func removeCartItemHandler(logger *log.Logger, svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			unauthorized(c)
			return
		}
		cart, err := svc.Remove(c.Request.Context(), user.ID, c.Param("productId"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFound(c, "Item not in cart")
				return
			}
			serverError(c, logger, "remove cart item", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
	}
}
