// Package main Go-Shop Admin API
//
// Administration console for the Go-Shop storefront: order lifecycle
// management, catalog maintenance and account administration.
//
//	@title			Go-Shop Admin API
//	@version		1.0
//	@description	Administration console for the Go-Shop storefront
//
//	@contact.name	API Support
//	@contact.email	support@example.com
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8081
//	@BasePath	/api/v1
//	@schemes	http https
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "go-shop/docs/swagger"
	catalogadapters "go-shop/internal/catalog/adapters"
	catalogapp "go-shop/internal/catalog/application"
	cataloginfra "go-shop/internal/catalog/infrastructure"
	ordersadapters "go-shop/internal/orders/adapters"
	ordersapp "go-shop/internal/orders/application"
	ordersinfra "go-shop/internal/orders/infrastructure"
	ordersports "go-shop/internal/orders/ports"
	usersadapters "go-shop/internal/users/adapters"
	usersapp "go-shop/internal/users/application"
	usersinfra "go-shop/internal/users/infrastructure"
	"go-shop/pkg/auth"
	"go-shop/pkg/config"
	"go-shop/pkg/db"
	"go-shop/pkg/events"
	"go-shop/pkg/logger"
	"go-shop/pkg/middleware"
	"go-shop/pkg/rabbitmq"
	tlspkg "go-shop/pkg/tls"
)

func main() {
	// Load configuration
	cfg := config.LoadForApp("ADMIN")

	// Initialize logger
	log := logger.New("admin", cfg.LogLevel)
	defer log.Sync()

	log.Info("starting admin console")

	// Connect to database
	dbConn, err := db.NewConnection(db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
		Timeout:  cfg.DBTimeout,
	})
	if err != nil {
		log.Fatal("failed to connect to database: " + err.Error())
	}
	defer db.Close(dbConn)
	log.Info("connected to database")

	// Repositories; the storefront owns migrations, the console just
	// uses the same tables
	productRepo := catalogadapters.NewPostgresProductRepository(dbConn)
	categoryRepo := catalogadapters.NewPostgresCategoryRepository(dbConn)
	commentReader := catalogadapters.NewPostgresCommentReader(dbConn)
	userRepo := usersadapters.NewPostgresUserRepository(dbConn)
	orderRepo := ordersadapters.NewPostgresOrderRepository(dbConn)
	commentRepo := ordersadapters.NewPostgresCommentRepository(dbConn)

	// Connect to RabbitMQ
	var publisher ordersports.EventPublisher
	rabbitConn, err := rabbitmq.NewConnection(cfg.RabbitMQURL, log)
	if err != nil {
		log.Warn("failed to connect to RabbitMQ, events will be disabled: " + err.Error())
	} else {
		defer rabbitConn.Close()

		pub, err := rabbitmq.NewPublisher(rabbitConn, events.ExchangeOrders, log)
		if err != nil {
			log.Warn("failed to create publisher: " + err.Error())
		} else {
			publisher = ordersadapters.NewRabbitMQPublisher(pub, log)
		}
	}

	// Sessions
	sessions := auth.NewManager(cfg.JWTSecret, cfg.SessionTTL)

	// Use cases. The console never reads carts, so the order use case
	// runs without a cart reader; checkout is storefront-only.
	catalogUseCase := catalogapp.NewCatalogUseCase(productRepo, categoryRepo, commentReader, log)
	userUseCase := usersapp.NewUserUseCase(userRepo, log)
	orderUseCase := ordersapp.NewOrderUseCase(
		orderRepo,
		orderRepo,
		commentRepo,
		nil,
		productRepo,
		publisher,
		log,
	)

	// HTTP server
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.TraceID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS())

	api := router.Group("/api/v1")

	adminUsers := usersinfra.NewAdminHTTPHandler(userUseCase, sessions)
	adminUsers.RegisterAuthRoutes(api)

	// Session-protected routes
	protected := api.Group("")
	protected.Use(auth.RequireSession(sessions, auth.AdminSessionCookie, auth.RoleAdmin))
	adminUsers.RegisterRoutes(protected)
	ordersinfra.NewAdminHTTPHandler(orderUseCase).RegisterRoutes(protected)
	cataloginfra.NewAdminHTTPHandler(catalogUseCase).RegisterRoutes(protected)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/swagger/index.html")
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
	}

	if cfg.TLSEnabled {
		tlsConfig, err := tlspkg.ServerConfig(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			log.Fatal("failed to load TLS config: " + err.Error())
		}
		httpServer.Addr = ":" + cfg.HTTPSPort
		httpServer.TLSConfig = tlsConfig

		go func() {
			log.Info("HTTPS server listening on :" + cfg.HTTPSPort)
			log.Info("Swagger UI: https://localhost:" + cfg.HTTPSPort + "/swagger/index.html")
			if err := httpServer.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
				log.Fatal("HTTPS server error: " + err.Error())
			}
		}()
	} else {
		go func() {
			log.Info("HTTP server listening on :" + cfg.HTTPPort)
			log.Info("Swagger UI: http://localhost:" + cfg.HTTPPort + "/swagger/index.html")
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal("HTTP server error: " + err.Error())
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown error: " + err.Error())
	}

	log.Info("server stopped")
}
