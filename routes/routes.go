package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"manufacturer/auth"
	"manufacturer/controllers"
	"manufacturer/middleware"
	"manufacturer/services"
	"manufacturer/store"
)

// Deps carries everything the route table needs, injected from main.
type Deps struct {
	Tokens   *auth.Manager
	Users    *services.UserService
	Orders   *services.OrderService
	Payments *services.PaymentService
	Products store.ProductStore
}

func Register(r *gin.Engine, d Deps) {
	// The storefront frontend is served from another origin.
	r.Use(cors.Default())

	authed := middleware.RequireAuth(d.Tokens)
	admin := middleware.RequireAdmin(d.Users)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/create-payment-intent", authed, controllers.CreatePaymentIntent(d.Payments))

	r.GET("/users", controllers.ListUsers(d.Users))
	r.GET("/admin/:email", controllers.CheckAdmin(d.Users))
	r.PUT("/user/admin/:email", authed, admin, controllers.PromoteUser(d.Users))
	r.GET("/user/:email", controllers.UpsertUser(d.Users))
	r.PUT("/user/:email", controllers.UpsertUser(d.Users))

	r.GET("/product", controllers.ListProducts(d.Products))
	r.GET("/product/:id", controllers.GetProduct(d.Products))
	r.POST("/product", authed, admin, controllers.CreateProduct(d.Products))
	r.DELETE("/product/:id", authed, admin, controllers.DeleteProduct(d.Products))

	r.POST("/order", controllers.SubmitOrder(d.Orders))
	r.GET("/order", authed, controllers.ListOrders(d.Orders))
	r.GET("/order/:id", controllers.GetOrder(d.Orders))
	r.PUT("/order/:id", controllers.SubmitOrder(d.Orders))
	r.PATCH("/order/:id", authed, controllers.ReconcileOrder(d.Orders))
}
