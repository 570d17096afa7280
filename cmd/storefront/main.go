package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/plushmarket/storefront/internal/cache"
	"github.com/plushmarket/storefront/internal/config"
	"github.com/plushmarket/storefront/internal/handler"
	"github.com/plushmarket/storefront/internal/middleware"
	"github.com/plushmarket/storefront/internal/repository"
	"github.com/plushmarket/storefront/internal/service"
	"github.com/plushmarket/storefront/internal/store"
	"github.com/plushmarket/storefront/internal/worker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL (checkout-attempt journal)
	poolCfg, err := pgxpool.ParseConfig(cfg.DB.DSN())
	if err != nil {
		log.Error("parse db config", "error", err)
		os.Exit(1)
	}
	poolCfg.MaxConns = cfg.DB.MaxConns

	dbPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		log.Error("ping database", "error", err)
		os.Exit(1)
	}
	log.Info("connected to PostgreSQL")

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("connected to Redis")

	// RabbitMQ
	amqpConn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		log.Error("connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer amqpConn.Close()

	amqpCh, err := amqpConn.Channel()
	if err != nil {
		log.Error("open RabbitMQ channel", "error", err)
		os.Exit(1)
	}
	defer amqpCh.Close()

	if err := worker.SetupRabbitMQ(amqpCh); err != nil {
		log.Error("setup RabbitMQ", "error", err)
		os.Exit(1)
	}
	log.Info("connected to RabbitMQ")

	// Remote store
	storeClient := store.NewHTTPClient(cfg.Store.BaseURL, cfg.Store.ServiceToken, cfg.Store.Timeout)
	readCache := cache.New(redisClient)
	attemptRepo := repository.NewAttemptRepository(dbPool)

	// Services
	sessionSvc := service.NewSessionService(storeClient, readCache)
	catalogSvc := service.NewCatalogService(storeClient, readCache)
	cartSvc := service.NewCartService(storeClient, catalogSvc, readCache)
	orderSvc := service.NewOrderService(storeClient)
	paymentSvc := service.NewPaymentService(storeClient)
	approvalSvc := service.NewApprovalService(storeClient, readCache)
	checkoutSvc := service.NewCheckoutService(
		cartSvc, storeClient, storeClient, attemptRepo, amqpCh,
		cfg.Checkout.SuccessURL, cfg.Checkout.CancelURL, cfg.Checkout.Currency,
	)

	// Handlers
	catalogH := handler.NewCatalogHandler(sessionSvc, catalogSvc)
	cartH := handler.NewCartHandler(sessionSvc, cartSvc)
	checkoutH := handler.NewCheckoutHandler(sessionSvc, checkoutSvc)
	orderH := handler.NewOrderHandler(sessionSvc, orderSvc)
	paymentH := handler.NewPaymentHandler(sessionSvc, paymentSvc)
	submissionH := handler.NewSubmissionHandler(sessionSvc, approvalSvc)
	profileH := handler.NewProfileHandler(sessionSvc)
	healthH := handler.NewHealthHandler(dbPool, redisClient, amqpConn)

	// Worker
	paymentWorker := worker.NewPaymentWorker(amqpCh, storeClient, storeClient, redisClient, log)

	// Router
	router := gin.Default()
	router.Use(middleware.Identity(cfg.JWT.Secret))
	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)

	// Payment processor redirect targets; no auth, arrival carries only ids.
	router.GET("/payment/success", checkoutH.PaymentReturn)
	router.GET("/payment/failure", checkoutH.PaymentReturn)

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		products.GET("", catalogH.List)
		products.GET("/:id", catalogH.Get)
		products.POST("", middleware.RequireAuth(), catalogH.Create)
		products.PUT("/:id", middleware.RequireAuth(), catalogH.Update)
		products.DELETE("/:id", middleware.RequireAuth(), catalogH.Delete)

		cart := v1.Group("/cart", middleware.RequireAuth())
		cart.GET("", cartH.GetCart)
		cart.POST("/items", cartH.AddLine)
		cart.DELETE("/items/:productId", cartH.RemoveLine)

		checkout := v1.Group("/checkout", middleware.RequireAuth())
		checkout.POST("", checkoutH.Begin)
		checkout.GET("/attempts", checkoutH.ListAttempts)
		checkout.GET("/attempts/:id", checkoutH.GetAttempt)
		checkout.POST("/attempts/:id/resume", checkoutH.Resume)

		orders := v1.Group("/orders", middleware.RequireAuth())
		orders.GET("", orderH.ListMine)
		orders.GET("/:id", orderH.Get)

		payments := v1.Group("/payments")
		payments.GET("/configured", paymentH.Configured)
		payments.GET("/sessions/:sessionId/status", checkoutH.SessionStatus)
		payments.POST("/configuration", middleware.RequireAuth(), paymentH.Configure)

		submissions := v1.Group("/submissions", middleware.RequireAuth())
		submissions.POST("", submissionH.Submit)
		submissions.GET("/mine", submissionH.ListMine)
		submissions.GET("", submissionH.ListAll)
		submissions.GET("/seller/:seller", submissionH.ListBySeller)
		submissions.POST("/:id/decision", submissionH.Decide)

		me := v1.Group("/me", middleware.RequireAuth())
		me.GET("/profile", profileH.Get)
		me.PUT("/profile", profileH.Save)
		me.POST("/logout", profileH.Logout)

		admin := v1.Group("/admin", middleware.RequireAuth())
		admin.GET("/orders", orderH.ListAll)
		admin.PUT("/orders/:id/status", orderH.UpdateStatus)
	}

	if err := paymentWorker.Start(ctx); err != nil {
		log.Error("start payment worker", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}

	paymentWorker.Stop()
	time.Sleep(500 * time.Millisecond)
	cancel()
	log.Info("server stopped")
}
