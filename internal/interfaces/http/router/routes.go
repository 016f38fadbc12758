package router

import (
	"github.com/gin-gonic/gin"

	"github.com/verdantia/storefront/internal/infrastructure/auth"
	"github.com/verdantia/storefront/internal/interfaces/http/handler"
	"github.com/verdantia/storefront/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the storefront exposes
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Category  *handler.CategoryHandler
	Brand     *handler.BrandHandler
	Product   *handler.ProductHandler
	Cart      *handler.CartHandler
	Order     *handler.OrderHandler
	Coupon    *handler.CouponHandler
	Customer  *handler.CustomerHandler
	Promotion *handler.PromotionHandler
}

// AuthDeps carries the pieces the admin route guards need
type AuthDeps struct {
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist
}

// StorefrontRoutes builds the public (visitor-facing) route tree.
// Every route under it is reachable without authentication; carts and
// promotion evaluation identify the visitor by client token instead.
func StorefrontRoutes(h *Handlers) RouteRegistrar {
	root := NewDomainGroup("storefront", "")

	catalog := root.Group("categories", "/categories")
	catalog.GET("", h.Category.ListActive)
	catalog.GET("/:slug", h.Category.GetBySlug)

	brands := root.Group("brands", "/brands")
	brands.GET("", h.Brand.ListActive)
	brands.GET("/:slug", h.Brand.GetBySlug)

	products := root.Group("products", "/products")
	products.GET("", h.Product.List)
	products.GET("/featured", h.Product.ListFeatured)
	products.GET("/:slug", h.Product.GetBySlug)

	cart := root.Group("cart", "/cart")
	cart.Use(middleware.RequireClientToken())
	cart.GET("", h.Cart.Get)
	cart.DELETE("", h.Cart.Clear)
	cart.POST("/items", h.Cart.AddItem)
	cart.PUT("/items/:product_id", h.Cart.SetQuantity)
	cart.DELETE("/items/:product_id", h.Cart.RemoveItem)
	cart.POST("/assign", h.Cart.AssignCustomer)

	orders := root.Group("orders", "/orders")
	orders.POST("/checkout", h.Order.Checkout)
	orders.GET("/:number", h.Order.GetByNumber)

	coupons := root.Group("coupons", "/coupons")
	coupons.POST("/validate", h.Coupon.Validate)

	customers := root.Group("customers", "/customers")
	customers.POST("", h.Customer.Register)
	customers.GET("/:id", h.Customer.Get)
	customers.PUT("/:id", h.Customer.Update)
	customers.GET("/:id/orders", h.Customer.ListOrders)
	customers.GET("/:id/wishlist", h.Customer.ListWishlist)
	customers.POST("/:id/wishlist", h.Customer.AddWishlistItem)
	customers.DELETE("/:id/wishlist/:product_id", h.Customer.RemoveWishlistItem)

	promotions := root.Group("promotions", "/promotions")
	promotions.POST("/evaluate", h.Promotion.Evaluate)
	promotions.POST("/display", h.Promotion.RecordDisplay)

	system := root.Group("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)
	system.GET("/ping", h.System.Ping)

	return root
}

// AdminRoutes builds the back-office route tree. Login and refresh are
// open; everything else requires a valid staff token, and user management
// additionally requires the admin role.
func AdminRoutes(h *Handlers, deps AuthDeps) RouteRegistrar {
	root := NewDomainGroup("admin", "/admin")

	authGroup := root.Group("auth", "/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)

	guard := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     deps.JWTService,
		TokenBlacklist: deps.Blacklist,
	})

	staff := root.Group("staff", "")
	staff.Use(guard, middleware.RequireStaff())

	session := staff.Group("session", "/auth")
	session.POST("/logout", h.Auth.Logout)
	session.POST("/change-password", h.Auth.ChangePassword)
	session.GET("/me", h.Auth.Me)

	categories := staff.Group("categories", "/categories")
	categories.GET("", h.Category.List)
	categories.GET("/:id", h.Category.Get)
	categories.POST("", h.Category.Create)
	categories.PUT("/:id", h.Category.Update)
	categories.PATCH("/:id/active", h.Category.SetActive)
	categories.DELETE("/:id", h.Category.Delete)

	brands := staff.Group("brands", "/brands")
	brands.GET("", h.Brand.List)
	brands.GET("/:id", h.Brand.Get)
	brands.POST("", h.Brand.Create)
	brands.PUT("/:id", h.Brand.Update)
	brands.PATCH("/:id/active", h.Brand.SetActive)
	brands.DELETE("/:id", h.Brand.Delete)

	products := staff.Group("products", "/products")
	products.GET("", h.Product.List)
	products.GET("/:id", h.Product.Get)
	products.POST("", h.Product.Create)
	products.PUT("/:id", h.Product.Update)
	products.PATCH("/:id/status", h.Product.SetStatus)
	products.PATCH("/:id/stock", h.Product.AdjustStock)
	products.DELETE("/:id", h.Product.Delete)

	orders := staff.Group("orders", "/orders")
	orders.GET("", h.Order.List)
	orders.GET("/:id", h.Order.Get)
	orders.POST("/:id/pay", h.Order.MarkPaid)
	orders.POST("/:id/ship", h.Order.Ship)
	orders.POST("/:id/deliver", h.Order.MarkDelivered)
	orders.POST("/:id/cancel", h.Order.Cancel)

	coupons := staff.Group("coupons", "/coupons")
	coupons.GET("", h.Coupon.List)
	coupons.GET("/:id", h.Coupon.Get)
	coupons.POST("", h.Coupon.Create)
	coupons.PATCH("/:id/active", h.Coupon.SetActive)
	coupons.DELETE("/:id", h.Coupon.Delete)

	customers := staff.Group("customers", "/customers")
	customers.GET("", h.Customer.List)
	customers.GET("/:id", h.Customer.Get)
	customers.GET("/:id/orders", h.Customer.ListOrders)

	promotions := staff.Group("promotions", "/promotions")
	promotions.GET("", h.Promotion.List)
	promotions.GET("/:id", h.Promotion.Get)
	promotions.POST("", h.Promotion.Create)
	promotions.PUT("/:id", h.Promotion.Update)
	promotions.POST("/:id/activate", h.Promotion.Activate)
	promotions.POST("/:id/deactivate", h.Promotion.Deactivate)
	promotions.DELETE("/:id", h.Promotion.Delete)

	// User management is restricted to full admins
	users := root.Group("users", "/users")
	users.Use(guard, middleware.RequireAdmin())
	users.GET("", h.User.List)
	users.GET("/:id", h.User.Get)
	users.POST("", h.User.Create)
	users.PUT("/:id", h.User.Update)
	users.POST("/:id/reset-password", h.User.ResetPassword)
	users.PATCH("/:id/active", h.User.SetActive)
	users.DELETE("/:id", h.User.Delete)

	return root
}

// RegisterHealthRoutes attaches the unversioned probe endpoints directly
// to the engine so load balancers don't need the API prefix.
func RegisterHealthRoutes(engine *gin.Engine, system *handler.SystemHandler) {
	engine.GET("/health", system.Health)
	engine.GET("/health/ready", system.Ready)
}
