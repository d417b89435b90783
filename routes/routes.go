package routes

import (
	"github.com/nori1700pm/ESD-FoodDelivery/configs"
	"github.com/nori1700pm/ESD-FoodDelivery/controllers"
	"github.com/nori1700pm/ESD-FoodDelivery/middlewares"
	"github.com/nori1700pm/ESD-FoodDelivery/repository"
	"github.com/nori1700pm/ESD-FoodDelivery/services"
	"github.com/nori1700pm/ESD-FoodDelivery/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// RegisterRoutes wires repositories, services and controllers onto the
// engine. ready is closed by main once bootstrap has finished; guarded
// page routes wait on it.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *configs.Config, ready <-chan struct{}) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	cartRepo := repository.NewCartRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	restRepo := repository.NewRestaurantRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, cfg.DriverEmailSuffix)
	cartSvc := services.NewCartService(db, cartRepo)
	gateway := services.NewGatewayClient(cfg.GatewayBaseURL)
	walletSvc := services.NewWalletService(walletRepo, gateway, rdb)
	repairSvc := services.NewRepairService(db, userRepo, walletRepo, cartRepo, cfg.RepairGrant)
	deliverySvc := services.NewDeliveryService(orderRepo, cartSvc, walletSvc)

	// Live balance subscription
	hub := ws.NewWalletHub(walletSvc)
	walletSvc.SetNotifier(hub)
	go hub.Run()

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	walletCtrl := controllers.NewWalletController(walletSvc)
	restCtrl := controllers.NewRestaurantController(restRepo)
	deliveryCtrl := controllers.NewDeliveryController(deliverySvc)
	userCtrl := controllers.NewUserController(repairSvc)

	guardCfg := middlewares.GuardConfig{
		Ready:        ready,
		ReadyTimeout: cfg.ReadyTimeout,
		JWTSecret:    cfg.JWTSecret,
		DriverSuffix: cfg.DriverEmailSuffix,
	}

	// Landing: always a redirect, target depends on the session
	r.GET("/", middlewares.RootRedirect(guardCfg))
	r.GET("/login", func(c *gin.Context) { c.JSON(200, gin.H{"page": "login"}) })

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.POST("/logout", authCtrl.Logout)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
	}

	// Browse pages — the navigation guard redirects rather than 401s
	r.GET("/restaurants",
		middlewares.Guard(guardCfg, middlewares.RouteMeta{RequiresAuth: true}),
		restCtrl.List)
	r.GET("/restaurants/:id",
		middlewares.Guard(guardCfg, middlewares.RouteMeta{AllowAnonymous: true}),
		restCtrl.Detail)

	// Driver job board
	r.GET("/partner/deliveries",
		middlewares.Guard(guardCfg, middlewares.RouteMeta{RequiresAuth: true, RequiresDriver: true}),
		deliveryCtrl.PendingDeliveries)
	r.POST("/partner/deliveries/:id/complete",
		middlewares.AuthMiddleware(cfg.JWTSecret, "driver"),
		deliveryCtrl.CompleteDelivery)

	// Cart (JSON API)
	cart := r.Group("/cart", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("/items", cartCtrl.Add)
		cart.DELETE("/items/:menuId", cartCtrl.Remove)
		cart.DELETE("", cartCtrl.Clear)
	}

	// Wallet (JSON API)
	wallet := r.Group("/wallet", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		wallet.GET("", walletCtrl.Get)
		wallet.GET("/transactions", walletCtrl.Transactions)
		wallet.POST("/process-payment", walletCtrl.ProcessPayment)
		wallet.PUT("", walletCtrl.AddMoney)
		wallet.POST("/topup", walletCtrl.CreateCheckout)
		wallet.POST("/process-topup", walletCtrl.ProcessTopup)
	}

	// Orders + delivery payment
	u := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		u.POST("/orders", deliveryCtrl.CreateOrder)
		u.GET("/orders", deliveryCtrl.ListOrders)
		u.POST("/pay-delivery", deliveryCtrl.PayDelivery)
		u.POST("/profile/repair", userCtrl.RepairMe)
		u.GET("/ws/wallet", hub.HandleWebSocket)
	}
}
