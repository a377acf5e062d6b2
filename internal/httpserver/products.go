package httpserver

import (
	"errors"
	"log"
	"net/http"

	"grocerystore/internal/domain"
	catalogsvc "grocerystore/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

func listProductsHandler(logger *log.Logger, svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context(), c.Query("category"), c.Query("search"))
		if err != nil {
			serverError(c, logger, "list products", err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

func listCategoriesHandler(logger *log.Logger, svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.Categories(c.Request.Context())
		if err != nil {
			serverError(c, logger, "list categories", err)
			return
		}
		if categories == nil {
			categories = []domain.CategoryCount{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
	}
}

func getProductHandler(logger *log.Logger, svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFound(c, "Product not found")
				return
			}
			serverError(c, logger, "get product", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
	}
}

// Admin variants reuse the public read handlers; separate registrations
// keep the admin group behind adminAuth.
func adminListProductsHandler(logger *log.Logger, svc CatalogService) gin.HandlerFunc {
	return listProductsHandler(logger, svc)
}

func adminGetProductHandler(logger *log.Logger, svc CatalogService) gin.HandlerFunc {
	return getProductHandler(logger, svc)
}

func addProductHandler(logger *log.Logger, svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalogsvc.CreateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Name, category, price, and stock are required")
			return
		}

		product, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrAlreadyExists):
				badRequest(c, "Product already exists")
			case errors.Is(err, catalogsvc.ErrInvalidInput):
				badRequest(c, "Name, category, price, and stock are required")
			default:
				serverError(c, logger, "add product", err)
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
	}
}

func updateProductHandler(logger *log.Logger, svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalogsvc.UpdateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body")
			return
		}

		product, err := svc.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				notFound(c, "Product not found")
			case errors.Is(err, catalogsvc.ErrInvalidInput):
				badRequest(c, "Invalid product fields")
			default:
				serverError(c, logger, "update product", err)
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
	}
}

func deleteProductHandler(logger *log.Logger, svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFound(c, "Product not found")
				return
			}
			serverError(c, logger, "delete product", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
	}
}

func listUsersHandler(logger *log.Logger, users UserLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.List(c.Request.Context())
		if err != nil {
			serverError(c, logger, "list users", err)
			return
		}
		if list == nil {
			list = []domain.User{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "users": list})
	}
}
