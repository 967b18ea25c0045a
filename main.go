package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/j-ir11/videojuegos/internal/auth"
	"github.com/j-ir11/videojuegos/internal/cart"
	"github.com/j-ir11/videojuegos/internal/catalog"
	"github.com/j-ir11/videojuegos/internal/checkout"
	"github.com/j-ir11/videojuegos/internal/config"
	"github.com/j-ir11/videojuegos/internal/database"
	"github.com/j-ir11/videojuegos/internal/handlers"
	"github.com/j-ir11/videojuegos/internal/middleware"
	"github.com/j-ir11/videojuegos/internal/notify"
	"github.com/j-ir11/videojuegos/internal/orders"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Println("user index warning:", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Println("product index warning:", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Println("order index warning:", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: config.AppEnv.RedisAddr})

	authService := auth.NewService(db, config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL, config.AppEnv.RefreshTokenTTL)
	catalogReader := catalog.NewReader(db)
	cartStore := cart.NewStore(cart.NewRedisSnapshots(redisClient), catalogReader)
	orderStore := orders.NewStore(db)
	notifier := notify.NewSender(notify.Config{
		Endpoint:   config.AppEnv.EmailEndpoint,
		ServiceID:  config.AppEnv.EmailServiceID,
		TemplateID: config.AppEnv.EmailTemplateID,
		PublicKey:  config.AppEnv.EmailPublicKey,
	})

	checkoutDeps := checkout.Deps{
		Cart:      cartStore,
		Addresses: authService,
		Users:     authService,
		Orders:    orderStore,
		Stock:     catalogReader,
		Notifier:  notifier,
	}

	r := gin.Default()

	r.POST("/auth/register", handlers.Register(authService))
	r.POST("/auth/login", handlers.Login(authService))
	r.POST("/auth/refresh", handlers.Refresh(authService))
	r.POST("/auth/logout", handlers.Logout(authService))

	r.GET("/products", handlers.GetProducts(catalogReader))
	r.GET("/products/:id", handlers.GetProduct(catalogReader))

	user := r.Group("/")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.GET("/auth/me", handlers.GetMe(authService))

		user.GET("/cart", handlers.GetCart(cartStore))
		user.POST("/cart/items", handlers.AddToCart(cartStore, catalogReader))
		user.PUT("/cart/items/:productId", handlers.UpdateCartItem(cartStore))
		user.DELETE("/cart/items/:productId", handlers.RemoveCartItem(cartStore))
		user.DELETE("/cart", handlers.ClearCart(cartStore))

		user.GET("/checkout", handlers.BeginCheckout(checkoutDeps))
		user.POST("/checkout/address", handlers.SaveCheckoutAddress(checkoutDeps))
		user.POST("/checkout/pay", handlers.Pay(checkoutDeps))

		user.GET("/orders", handlers.GetOrders(orderStore))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
