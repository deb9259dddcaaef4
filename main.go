package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rymdix/api/database"
	"rymdix/api/handlers"
	"rymdix/api/metrics"
	"rymdix/api/middleware"
	"rymdix/api/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- PostgreSQL (leads, content, admin users) ---
	// The site keeps running without a database: data-backed pages serve
	// empty lists and forms report themselves disabled.
	var leadStore handlers.LeadRepository
	var postStore handlers.PostRepository
	var serviceStore handlers.ServiceRepository
	var userStore handlers.UserRepository

	dbClient, err := database.NewPostgresDB()
	switch {
	case err == database.ErrNotConfigured:
		log.Println("DATABASE_URL not set; running with data-backed pages disabled.")
	case err != nil:
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	default:
		defer dbClient.Close()
		leadStore = store.NewLeadStore(dbClient.DB)
		postStore = store.NewPostStore(dbClient.DB)
		serviceStore = store.NewServiceStore(dbClient.DB)
		userStore = store.NewUserStore(dbClient.DB)
	}

	// --- ClickHouse (optional first-party page-view beacon) ---
	var trafficStore handlers.TrafficRepository
	chClient, err := database.NewClickHouseDB()
	if err != nil {
		log.Printf("Page-view beacon disabled: %v", err)
	} else {
		defer chClient.Close()
		trafficStore = store.NewTrafficStore(chClient)
	}

	siteConfig := handlers.SiteConfig{
		CalendlyURL:     os.Getenv("CALENDLY_URL"),
		GAMeasurementID: os.Getenv("GA_MEASUREMENT_ID"),
		ContactEmail:    os.Getenv("CONTACT_EMAIL"),
		DatabaseEnabled: dbClient != nil,
		BeaconEnabled:   trafficStore != nil,
	}
	gaConfig := handlers.GAConfig{
		PropertyID:  os.Getenv("GA_PROPERTY_ID"),
		ClientEmail: os.Getenv("GA_CLIENT_EMAIL"),
		PrivateKey:  os.Getenv("GA_PRIVATE_KEY"),
	}
	siteConfig.GAConfigured = gaConfig.PropertyID != "" && gaConfig.ClientEmail != "" && gaConfig.PrivateKey != ""

	// --- Handlers ---
	authHandlers := handlers.NewAuthHandlers(userStore)
	leadHandlers := handlers.NewLeadHandlers(leadStore)
	postHandlers := handlers.NewPostHandlers(postStore)
	serviceHandlers := handlers.NewServiceHandlers(serviceStore)
	dashboardHandlers := handlers.NewDashboardHandlers(leadStore, postStore)
	trafficHandlers := handlers.NewTrafficHandlers(trafficStore)
	analyticsHandlers := handlers.NewAnalyticsHandlers(gaConfig, nil)
	configHandlers := handlers.NewConfigHandlers(siteConfig)

	m := metrics.New()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.Instrument(m))

	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Public site data
		api.GET("/config", configHandlers.GetPublicConfig)
		api.GET("/posts", postHandlers.ListPublishedPosts)
		api.GET("/posts/:slug", postHandlers.GetPublishedPost)
		api.GET("/services", serviceHandlers.ListPublishedServices)
		api.GET("/services/:slug", serviceHandlers.GetPublishedService)
		api.POST("/leads", leadHandlers.SubmitLead)
		api.POST("/track", trafficHandlers.TrackEvents)

		// The GA summary proxy answers every method itself so non-GET
		// requests get the documented 405 body.
		api.Any("/analytics", analyticsHandlers.GetSummary)

		// Authentication
		api.POST("/signup", authHandlers.Signup)
		api.POST("/login", authHandlers.Login)
		api.POST("/logout", authHandlers.Logout)

		// Admin area (requires a valid JWT)
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired())
		{
			admin.GET("/dashboard", dashboardHandlers.GetDashboard)
			admin.GET("/settings", configHandlers.GetSettings)
			admin.GET("/traffic/daily", trafficHandlers.GetDailyTraffic)

			admin.GET("/leads", leadHandlers.ListLeads)
			admin.DELETE("/leads/:id", leadHandlers.DeleteLead)

			admin.GET("/posts", postHandlers.ListPosts)
			admin.POST("/posts", postHandlers.CreatePost)
			admin.GET("/posts/:id", postHandlers.GetPost)
			admin.PUT("/posts/:id", postHandlers.UpdatePost)
			admin.DELETE("/posts/:id", postHandlers.DeletePost)

			admin.GET("/services", serviceHandlers.ListServices)
			admin.POST("/services", serviceHandlers.CreateService)
			admin.GET("/services/:id", serviceHandlers.GetService)
			admin.PUT("/services/:id", serviceHandlers.UpdateService)
			admin.DELETE("/services/:id", serviceHandlers.DeleteService)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("API server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
