package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cphub/cphub/backend/handlers"
	"github.com/cphub/cphub/backend/internal/config"
	"github.com/cphub/cphub/backend/internal/database"
	"github.com/cphub/cphub/backend/internal/platform"
	"github.com/cphub/cphub/backend/internal/users"
	"github.com/cphub/cphub/backend/pkg/logger"
	"github.com/cphub/cphub/backend/pkg/metrics"
	"github.com/cphub/cphub/backend/pkg/middleware"
)

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v secrets_set=%v",
		cfg.MongoDB.URI != "", cfg.Redis.Host != "",
		cfg.Tokens.AccessSecret != "" && cfg.Tokens.RefreshSecret != "")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(corsMiddleware(cfg.Server.ClientURL))
	r.Use(securityHeaders())

	// Redis-backed rate limiting when configured, in-memory token buckets otherwise
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	var globalLimiter, authLimiter gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		if cfg.RateLimit.UseRedis && redisClient != nil {
			globalLimiter = middleware.RedisRateLimitMiddleware(redisClient, "api", cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
			authLimiter = middleware.RedisRateLimitMiddleware(redisClient, "auth", cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst, win)
		} else {
			globalLimiter = middleware.RateLimitMiddleware("api", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
			authLimiter = middleware.RateLimitMiddleware("auth", cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)
		}
		r.Use(globalLimiter)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
	})

	// Connect to MongoDB with retry/backoff to tolerate startup races
	ctx := context.Background()
	if cfg.MongoDB.URI == "" {
		logger.Fatalf("MONGODB_URI is required")
	}
	client, err := connectMongoWithRetry(ctx, cfg)
	if err != nil {
		logger.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	usersCol := client.Database(cfg.MongoDB.Database).Collection("users")
	repo := users.NewMongoUserRepository(usersCol)
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Warnf("failed to ensure user indexes: %v", err)
	}
	userSvc := users.NewService(repo)
	platformSvc := platform.NewService(cfg.Platforms)

	api := r.Group("/api")

	authHandler := handlers.NewAuthHandler(cfg, userSvc)
	if authLimiter != nil {
		authGroup := api.Group("/", authLimiter)
		authHandler.Register(authGroup)
	} else {
		authHandler.Register(api)
	}

	handlers.NewPlatformHandler(platformSvc).Register(api)
	handlers.NewProfileHandler(userSvc).Register(api, middleware.RequireAuth(cfg.Tokens.AccessSecret))

	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting cphub API on %s (env=%s)", addr, cfg.Server.Environment)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

func connectMongoWithRetry(ctx context.Context, cfg *config.Config) (client *mongo.Client, err error) {
	const maxAttempts = 5
	backoff := time.Second
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err == nil {
			logger.Infof("Connected to MongoDB: %s", cfg.MongoDB.Database)
			return client, nil
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return nil, err
}

// corsMiddleware sets permissive-but-credentialed CORS headers for the
// configured client origin and answers preflight requests.
func corsMiddleware(clientURL string) gin.HandlerFunc {
	origin := clientURL
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		if origin != "*" {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("X-XSS-Protection", "1; mode=block")
		c.Writer.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Next()
	}
}
