package main

import (
	"crypto/tls"
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/gamegalaxy/exchange/accounts"
	"github.com/gamegalaxy/exchange/auth"
	"github.com/gamegalaxy/exchange/cache"
	"github.com/gamegalaxy/exchange/catalog"
	"github.com/gamegalaxy/exchange/db"
	"github.com/gamegalaxy/exchange/handlers"
	"github.com/gamegalaxy/exchange/middleware"
	"github.com/gamegalaxy/exchange/monitoring"
	"github.com/gamegalaxy/exchange/reporting"
	"github.com/gamegalaxy/exchange/reviews"
	"github.com/gamegalaxy/exchange/uploads"
	"github.com/gamegalaxy/exchange/utils"
	"github.com/gamegalaxy/exchange/wishlist"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	utils.InitLogger()
	db.InitDB()
	monitoring.InitMetrics()

	// Redis is optional: sessions fall back to the in-memory store and the
	// platform/review caches are skipped when it is down.
	var credentials auth.CredentialStore
	if err := cache.InitRedis(); err != nil {
		utils.LogWarn("Redis unavailable, using in-memory session store", map[string]interface{}{"error": err.Error()})
		credentials = auth.NewMemoryStore()
	} else {
		defer cache.CloseRedis()
		credentials = auth.NewRedisStore(cache.RedisClient)
	}

	sessions := auth.NewManager(credentials, auth.ConfigFromEnv())
	images := uploads.NewDiskStore()

	wishSvc := wishlist.NewService(wishlist.NewGormStore(db.DB))
	h := handlers.New(
		accounts.NewService(accounts.NewGormStore(db.DB), images),
		sessions,
		catalog.NewService(catalog.NewGormStore(db.DB), wishSvc, images),
		wishSvc,
		reviews.NewService(reviews.NewGormStore(db.DB)),
		reporting.NewService(reporting.NewGormStore(db.DB)),
	)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RemovePoweredBy())
	r.Use(monitoring.PrometheusMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Static("/uploads", "./"+images.BaseDir)
	r.GET("/metrics", monitoring.PrometheusHandler())

	h.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	useHTTPS := os.Getenv("USE_HTTPS") == "true"
	certFile := os.Getenv("TLS_CERT_FILE")
	keyFile := os.Getenv("TLS_KEY_FILE")

	if useHTTPS && certFile != "" && keyFile != "" {
		log.Println("Starting server with HTTPS on port", port)

		tlsConfig := &tls.Config{
			MinVersion:       tls.VersionTLS12,
			CurvePreferences: []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
		}

		server := &http.Server{
			Addr:      ":" + port,
			Handler:   r,
			TLSConfig: tlsConfig,
		}

		if err := server.ListenAndServeTLS(certFile, keyFile); err != nil {
			log.Fatal("Failed to start HTTPS server:", err)
		}
	} else {
		log.Println("Starting server with HTTP on port", port)

		if err := r.Run(":" + port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}
}
