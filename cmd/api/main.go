package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"segmentation-service/internal/config"
	"segmentation-service/internal/metrics"
	"segmentation-service/internal/platform/file"
	segmentationMongo "segmentation-service/internal/platform/mongo"
	segmentationPostgres "segmentation-service/internal/platform/postgres"
	segmentationRedis "segmentation-service/internal/platform/redis"
	"segmentation-service/internal/segmentation"

	_ "segmentation-service/docs" // Import generated docs

	_ "github.com/joho/godotenv/autoload"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// @title           Segmentation Service API
// @version         1.0
// @description     Audience segmentation strategies over the marketing client pool, with Redis & PostgreSQL.
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Init Redis Connection (Infra)
	rdb, err := segmentationRedis.NewClient(ctx, segmentationRedis.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Fatalf("Could not initialize Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[INFO] Redis connected")

	// 2. Init SQL Connection (Infra)
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Could not open SQL connection: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Could not connect to PostgreSQL: %v", err)
	}
	if err := segmentationPostgres.RunMigrations(ctx, db); err != nil {
		log.Fatalf("Could not run migrations: %v", err)
	}
	log.Println("[INFO] PostgreSQL connected")

	// 3. Client pool
	var source segmentation.ClientSource
	switch cfg.ClientSource {
	case config.SourceMongo:
		client, err := segmentationMongo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("Could not connect to MongoDB: %v", err)
		}
		defer client.Disconnect(context.Background())
		source = segmentationMongo.NewClientSource(client.Database(cfg.MongoDatabase))
	case config.SourceFile:
		source = file.NewClientSource(cfg.ClientsFile)
	default:
		source = segmentationPostgres.NewClientSource(db)
	}
	log.Printf("[INFO] client source: %s", cfg.ClientSource)

	// 4. Init Layers
	repo := segmentationRedis.NewRepository(rdb, cfg.RedisStrategyTTL)
	store := segmentationPostgres.NewStore(db)
	recorder := metrics.NewStrategy(prometheus.DefaultRegisterer)
	svc := segmentation.NewService(source, repo, store, recorder)
	handler := NewHandler(svc)

	// 5. Start Server
	srv := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     newRouter(handler, cfg.SwaggerURL),
		ReadTimeout: cfg.ReadTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[ERROR] shutdown: %v", err)
		}
	}()

	log.Printf("[INFO] Segmentation Service listening on %s", cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("[INFO] server stopped")
}

func newRouter(handler *Handler, swaggerURL string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/strategies/preview", handler.PreviewStrategy)
	mux.HandleFunc("POST /v1/filters/validate", handler.ValidateFilters)
	mux.HandleFunc("POST /debug/sync", handler.SyncData)
	mux.HandleFunc("GET /health", handler.Health)

	// Saved strategies
	mux.HandleFunc("POST /v1/strategies", handler.CreateStrategy)
	mux.HandleFunc("GET /v1/strategies", handler.ListStrategies)
	mux.HandleFunc("GET /v1/strategies/recent", handler.RecentStrategies)
	mux.HandleFunc("GET /v1/strategies/detail", handler.GetStrategy)
	mux.HandleFunc("DELETE /v1/strategies", handler.DeleteStrategy)

	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL(swaggerURL),
	))
	return mux
}
