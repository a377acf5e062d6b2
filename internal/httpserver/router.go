package httpserver

import (
	"context"
	"log"
	"time"

	"grocerystore/internal/domain"
	authsvc "grocerystore/internal/service/auth"
	catalogsvc "grocerystore/internal/service/catalog"
	ordersvc "grocerystore/internal/service/order"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuthService is the slice of the auth service the handlers consume.
type AuthService interface {
	Signup(ctx context.Context, in authsvc.SignupInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	AdminLogin(ctx context.Context, email, password string) (*domain.Admin, string, error)
	LookupUser(ctx context.Context, token string) (*domain.User, error)
	LookupAdmin(ctx context.Context, token string) (*domain.Admin, error)
}

type CatalogService interface {
	List(ctx context.Context, category, search string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Categories(ctx context.Context) ([]domain.CategoryCount, error)
	Create(ctx context.Context, in catalogsvc.CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in catalogsvc.UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type CartService interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Add(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	Update(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	Remove(ctx context.Context, userID, productID string) (*domain.Cart, error)
}

type OrderService interface {
	Place(ctx context.Context, userID string, in ordersvc.PlaceInput) (*domain.Order, error)
	History(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, id string, in ordersvc.UpdateInput) (*domain.Order, error)
}

type UserLister interface {
	List(ctx context.Context) ([]domain.User, error)
}

// Deps bundles everything the router needs.
type Deps struct {
	AuthSvc     AuthService
	CatalogSvc  CatalogService
	CartSvc     CartService
	OrderSvc    OrderService
	Users       UserLister
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(corsMiddleware(deps.CORSOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	api.POST("/auth/signup", signupHandler(logger, deps.AuthSvc))
	api.POST("/auth/login", loginHandler(logger, deps.AuthSvc))
	api.POST("/auth/admin/login", adminLoginHandler(logger, deps.AuthSvc))

	api.GET("/products", listProductsHandler(logger, deps.CatalogSvc))
	api.GET("/products/categories", listCategoriesHandler(logger, deps.CatalogSvc))
	api.GET("/products/:id", getProductHandler(logger, deps.CatalogSvc))

	user := api.Group("")
	user.Use(userAuth(deps.AuthSvc))
	user.GET("/cart", getCartHandler(logger, deps.CartSvc))
	user.POST("/cart/add", addCartItemHandler(logger, deps.CartSvc))
	user.PUT("/cart/update", updateCartItemHandler(logger, deps.CartSvc))
	user.DELETE("/cart/remove/:productId", removeCartItemHandler(logger, deps.CartSvc))
	user.POST("/order/create", createOrderHandler(logger, deps.OrderSvc))
	user.GET("/order/history", orderHistoryHandler(logger, deps.OrderSvc))

	admin := api.Group("/admin")
	admin.Use(adminAuth(deps.AuthSvc))
	admin.GET("/products", adminListProductsHandler(logger, deps.CatalogSvc))
	admin.GET("/products/:id", adminGetProductHandler(logger, deps.CatalogSvc))
	admin.POST("/products/add", addProductHandler(logger, deps.CatalogSvc))
	admin.PUT("/products/:id", updateProductHandler(logger, deps.CatalogSvc))
	admin.DELETE("/products/:id", deleteProductHandler(logger, deps.CatalogSvc))
	admin.GET("/users", listUsersHandler(logger, deps.Users))
	admin.GET("/orders", adminListOrdersHandler(logger, deps.OrderSvc))
	admin.PUT("/orders/:id", adminUpdateOrderHandler(logger, deps.OrderSvc))

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.MaxAge = 12 * time.Hour
	return cors.New(cfg)
}
