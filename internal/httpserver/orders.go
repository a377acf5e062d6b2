package httpserver

import (
	"log"
	"net/http"

	"grocerystore/internal/domain"
	ordersvc "grocerystore/internal/service/order"
	"github.com/gin-gonic/gin"
)

func createOrderHandler(logger *log.Logger, svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			unauthorized(c)
			return
		}
		var req ordersvc.PlaceInput
		if err := c.ShouldBindJSON(&req); err != nil || req.ShippingAddress == "" || req.Phone == "" {
			badRequest(c, "Shipping address and phone are required")
			return
		}

		order, err := svc.Place(c.Request.Context(), user.ID, req)
		if err != nil {
			respondOrderError(c, logger, "create order", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
	}
}

func orderHistoryHandler(logger *log.Logger, svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			unauthorized(c)
			return
		}
		orders, err := svc.History(c.Request.Context(), user.ID)
		if err != nil {
			serverError(c, logger, "order history", err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

func adminListOrdersHandler(logger *log.Logger, svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAll(c.Request.Context())
		if err != nil {
			serverError(c, logger, "admin list orders", err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

func adminUpdateOrderHandler(logger *log.Logger, svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ordersvc.UpdateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body")
			return
		}

		order, err := svc.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondOrderError(c, logger, "admin update order", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}
