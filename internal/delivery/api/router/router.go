// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"catalog/config"
	"catalog/internal/delivery/api/middleware"
	"catalog/internal/delivery/api/router/handler"
	"catalog/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ProductHandler *handler.ProductHandler
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	SystemHandler  *handler.SystemHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// Router holds all the handlers that need to be registered.
type Router struct {
	productHandler *handler.ProductHandler
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	systemHandler  *handler.SystemHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *Router {
	return &Router{
		productHandler: params.ProductHandler,
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		systemHandler:  params.SystemHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *Router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", r.systemHandler.Root)
	e.GET("/health", r.systemHandler.Health)

	apiV1 := e.Group(r.config.App.APIPrefix)

	// Catalog routes are public
	productsGroup := apiV1.Group("/products")
	{
		productsGroup.GET("", r.productHandler.ListProducts)
		productsGroup.GET("/search", r.productHandler.SearchProducts)
		productsGroup.GET("/category/:category", r.productHandler.ListByCategory)
		productsGroup.GET("/:id", r.productHandler.GetProduct)
		productsGroup.POST("", r.productHandler.CreateProduct)
		productsGroup.PUT("/:id", r.productHandler.UpdateProduct)
		productsGroup.PATCH("/:id", r.productHandler.UpdateProduct)
		productsGroup.DELETE("/:id", r.productHandler.DeleteProduct)
		productsGroup.PATCH("/:id/stock", r.productHandler.UpdateStock)
		productsGroup.PATCH("/:id/stock/decrease", r.productHandler.DecreaseStock)
	}

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/generate-password", r.authHandler.GeneratePassword)
		authGroup.POST("/generate-passphrase", r.authHandler.GeneratePassphrase)
		authGroup.POST("/check-password-strength", r.authHandler.CheckPasswordStrength)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
		authGroup.POST("/change-password", r.authHandler.ChangePassword, r.authMiddleware.Authenticate)
		authGroup.PUT("/change-password", r.authHandler.ChangePassword, r.authMiddleware.Authenticate)
	}

	// User routes that require authentication
	usersGroup := apiV1.Group("/users")
	{
		authn := r.authMiddleware.Authenticate
		usersGroup.GET("/me", r.userHandler.Me, authn)
		usersGroup.PUT("/me", r.userHandler.UpdateMe, authn)

		staff := r.authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleModerator)
		usersGroup.GET("", r.userHandler.ListUsers, authn, staff)
		usersGroup.GET("/:id", r.userHandler.GetUser, authn, staff)

		admin := r.authMiddleware.RequireRole(entity.RoleAdmin)
		usersGroup.GET("/stats/count", r.userHandler.Stats, authn, admin)
		usersGroup.PUT("/:id", r.userHandler.UpdateUser, authn, admin)
		usersGroup.DELETE("/:id", r.userHandler.DeleteUser, authn, admin)
		usersGroup.PATCH("/:id/activate", r.userHandler.ActivateUser, authn, admin)
		usersGroup.PATCH("/:id/deactivate", r.userHandler.DeactivateUser, authn, admin)
		usersGroup.PATCH("/:id/verify", r.userHandler.VerifyUser, authn, admin)
	}
}
