package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"medstock/internal/analytics"
	"medstock/internal/caching"
	"medstock/internal/distribution"
	"medstock/internal/handlers"
	"medstock/internal/jobs"
	"medstock/internal/jobs/background"
	"medstock/internal/middleware"
	"medstock/internal/repositories"
	"medstock/internal/services"
	"medstock/pkg/database"
)

const version = "1.0.0"

func main() {
	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration for receiving-document storage
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioBucket := os.Getenv("MINIO_BUCKET")
	if minioBucket == "" {
		minioBucket = "medstock-documents"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	documentSvc, err := services.NewDocumentService(minioEndpoint, minioAccessKey, minioSecretKey, minioBucket, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize document storage: %v", err)
	}
	if err := documentSvc.EnsureBucketExists(ctx); err != nil {
		log.Fatalf("Failed to prepare document bucket: %v", err)
	}

	// Repositories
	itemRepo := repositories.NewItemRepo(pool)
	locationRepo := repositories.NewLocationRepo(pool)
	stockRepo := repositories.NewLocationStockRepo(pool)
	batchRepo := repositories.NewBatchRepo(pool)
	requestRepo := repositories.NewStockRequestRepo(pool)

	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// The planner's priority table is loaded once at startup; location ranks
	// change rarely and a restart picks up edits.
	locations, err := locationRepo.ListAll(ctx)
	if err != nil {
		log.Fatalf("Failed to load locations: %v", err)
	}
	planner := distribution.NewPlanner(distribution.PriorityTableFromLocations(locations))

	// Services
	itemSvc := services.NewItemService(itemRepo, cacheSvc)
	locationSvc := services.NewLocationService(locationRepo)
	stockSvc := services.NewStockService(stockRepo, locationRepo, cacheSvc)
	distributionSvc := services.NewDistributionService(planner, itemRepo, stockRepo, cacheSvc)
	batchSvc := services.NewBatchService(batchRepo, itemRepo, locationRepo)
	approvalSvc := services.NewApprovalService(requestRepo, stockRepo, itemRepo)
	analyticsSvc := analytics.NewAnalyticsService(itemRepo, stockRepo, batchRepo, requestRepo, cacheSvc)
	alertSvc := jobs.NewStockAlertService(stockRepo, batchRepo, itemRepo)

	// Background jobs
	scheduler := background.NewJobScheduler(analyticsSvc, alertSvc)
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop scheduler: %v", err)
		}
	}()

	// Handlers
	itemHandlers := handlers.NewItemHandlers(itemSvc)
	locationHandlers := handlers.NewLocationHandlers(locationSvc)
	stockHandlers := handlers.NewStockHandlers(stockSvc)
	distributionHandlers := handlers.NewDistributionHandlers(distributionSvc)
	batchHandlers := handlers.NewBatchHandlers(batchSvc)
	approvalHandlers := handlers.NewApprovalHandlers(approvalSvc)
	alertHandlers := handlers.NewAlertHandlers(alertSvc)
	analyticsHandlers := handlers.NewAnalyticsHandlers(analyticsSvc)
	documentHandlers := handlers.NewDocumentHandlers(documentSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// API routes
	v1 := e.Group("/v1")
	v1.Use(versionMiddleware.VersionHeader("v1"))

	// Item routes
	v1.GET("/items", itemHandlers.ListItems)
	v1.POST("/items", itemHandlers.CreateItem)
	v1.GET("/items/search", itemHandlers.SearchItems)
	v1.GET("/items/:id", itemHandlers.GetItem)
	v1.PUT("/items/:id", itemHandlers.UpdateItem)
	v1.DELETE("/items/:id", itemHandlers.DeleteItem)

	// Location routes
	v1.GET("/locations", locationHandlers.ListLocations)
	v1.POST("/locations", locationHandlers.CreateLocation)
	v1.GET("/locations/:id", locationHandlers.GetLocation)
	v1.PUT("/locations/:id", locationHandlers.UpdateLocation)
	v1.DELETE("/locations/:id", locationHandlers.DeleteLocation)

	// Stock routes
	v1.GET("/stock/items/:itemId", stockHandlers.GetItemStock)
	v1.GET("/stock/locations/:locationId", stockHandlers.GetLocationStock)
	v1.POST("/stock", stockHandlers.UpsertStock)
	v1.POST("/stock/adjust", stockHandlers.AdjustStock)
	v1.POST("/stock/transfer", stockHandlers.TransferStock)
	v1.PUT("/stock/bounds", stockHandlers.UpdateBounds)
	v1.GET("/stock/low", stockHandlers.LowStock)

	// Distribution plan/confirm routes
	v1.POST("/distributions/plan", distributionHandlers.PlanDistribution)
	v1.GET("/distributions/:id", distributionHandlers.GetPendingDistribution)
	v1.POST("/distributions/:id/execute", distributionHandlers.ExecuteDistribution)
	v1.DELETE("/distributions/:id", distributionHandlers.DiscardDistribution)

	// Batch routes
	v1.POST("/batches", batchHandlers.CreateBatch)
	v1.GET("/batches/expiring", batchHandlers.ExpiringBatches)
	v1.GET("/batches/items/:itemId", batchHandlers.ListItemBatches)
	v1.DELETE("/batches/:id", batchHandlers.DeleteBatch)

	// Stock request approval workflow
	v1.POST("/requests", approvalHandlers.CreateStockRequest)
	v1.GET("/requests", approvalHandlers.ListStockRequests)
	v1.GET("/requests/:id", approvalHandlers.GetStockRequest)
	v1.POST("/requests/:id/approve", approvalHandlers.ApproveStockRequest)
	v1.POST("/requests/:id/reject", approvalHandlers.RejectStockRequest)
	v1.POST("/requests/:id/fulfill", approvalHandlers.FulfillStockRequest)

	// Alert panels
	v1.GET("/alerts/low-stock", alertHandlers.LowStockAlerts)
	v1.GET("/alerts/expiry", alertHandlers.ExpiryAlerts)

	// Analytics
	v1.GET("/analytics/overview", analyticsHandlers.GetOverview)

	// Receiving documents
	v1.POST("/documents/items/:itemId", documentHandlers.UploadDocument)
	v1.GET("/documents/url", documentHandlers.GetDocumentURL)
	v1.DELETE("/documents", documentHandlers.DeleteDocument)

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("medstock server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
