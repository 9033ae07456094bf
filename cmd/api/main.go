package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/stockroom/inventory/app/catalog"
	"github.com/stockroom/inventory/app/categories"
	"github.com/stockroom/inventory/app/httputil"
	"github.com/stockroom/inventory/app/ledger"
	"github.com/stockroom/inventory/app/middleware"
	"github.com/stockroom/inventory/app/movements"
	"github.com/stockroom/inventory/app/products"
	"github.com/stockroom/inventory/app/tags"
	"github.com/stockroom/inventory/config"
	"github.com/stockroom/inventory/metrics"
	"github.com/stockroom/inventory/models"
	"github.com/stockroom/inventory/pkg/database"
	"github.com/stockroom/inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.Init(cfg.Server.Env)
	defer log.Sync()

	log.Info("starting inventory service",
		zap.String("environment", cfg.Server.Env),
		zap.String("port", cfg.Server.Port))

	metrics.Init(cfg.Metrics.Prefix)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	log.Info("database connection established")

	// Repositories and the stock ledger
	productsRepo := models.NewProductsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)
	tagsRepo := models.NewTagsRepository(db)
	movementsRepo := models.NewMovementsRepository(db)
	stockLedger := ledger.New(movementsRepo)

	// Handlers
	catalogHandler := catalog.NewCatalogHandler(productsRepo)
	productHandler := products.NewProductHandler(productsRepo)
	categoryHandler := categories.NewCategoryHandler(categoriesRepo)
	tagHandler := tags.NewTagHandler(tagsRepo)
	movementHandler := movements.NewMovementHandler(stockLedger, movementsRepo, productsRepo)

	// Routes
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /catalog", catalogHandler.HandleGet)

	mux.HandleFunc("POST /products", productHandler.HandleCreate)
	mux.HandleFunc("GET /products/{id}", productHandler.HandleGet)
	mux.HandleFunc("PUT /products/{id}", productHandler.HandleUpdate)
	mux.HandleFunc("DELETE /products/{id}", productHandler.HandleDelete)
	mux.HandleFunc("GET /products/{id}/movements", movementHandler.HandleListByProduct)

	mux.HandleFunc("POST /movements", movementHandler.HandleCreate)

	mux.HandleFunc("GET /categories", categoryHandler.HandleGetAll)
	mux.HandleFunc("POST /categories", categoryHandler.HandleCreate)
	mux.HandleFunc("DELETE /categories/{id}", categoryHandler.HandleDelete)

	mux.HandleFunc("GET /tags", tagHandler.HandleGetAll)
	mux.HandleFunc("POST /tags", tagHandler.HandleCreate)

	handler := cors.Default().Handler(
		middleware.RequestID(
			middleware.AccessLog(log)(
				middleware.Metrics(mux))))

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
