package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finlit/backend/docs"
	"github.com/finlit/backend/internal/config"
	"github.com/finlit/backend/internal/database"
	"github.com/finlit/backend/internal/handlers"
	mW "github.com/finlit/backend/internal/middleware"
	"github.com/finlit/backend/internal/seed"
	"github.com/finlit/backend/internal/services"
	"github.com/finlit/backend/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Finance Learning Backend API
// @version 1.0
// @description API for expense tracking, lessons, quizzes, and transaction import
// @host localhost:4000
// @BasePath /api
// @schemes http

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.SetEnvPrefix("")

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("storage.driver", "STORAGE_DRIVER")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("jwt.expiry_hours", "JWT_EXPIRY_HOURS")
	viper.BindEnv("argon2.time", "ARGON2_TIME")
	viper.BindEnv("argon2.memory", "ARGON2_MEMORY")
	viper.BindEnv("argon2.threads", "ARGON2_THREADS")
	viper.BindEnv("argon2.key_length", "ARGON2_KEY_LENGTH")
	viper.BindEnv("argon2.salt_length", "ARGON2_SALT_LENGTH")

	viper.SetDefault("storage.driver", "memory")
	viper.SetDefault("jwt.secret_key", "demo-secret-change-me")
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "Finance Learning Backend API"
	docs.SwaggerInfo.Description = "API for expense tracking, lessons, quizzes, and transaction import"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:4000"
	docs.SwaggerInfo.BasePath = "/api"
	docs.SwaggerInfo.Schemes = []string{"http"}

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Stores: memory by default, Postgres for expenses and users when
	// configured. Lessons and posts are demo data and always live in memory.
	var (
		expenseStore store.ExpenseStore
		userStore    store.UserStore
		db           *sql.DB
	)
	if viper.GetString("storage.driver") == "postgres" {
		db = database.InitDatabase()
		defer db.Close()
		expenseStore = store.NewPostgresExpenseStore(db)
		userStore = store.NewPostgresUserStore(db)
	} else {
		expenseStore = store.NewMemoryExpenseStore(seed.Expenses())
		userStore = store.NewMemoryUserStore(seed.Users())
	}
	lessonStore := store.NewMemoryLessonStore(seed.Lessons())
	postStore := store.NewMemoryPostStore(seed.Posts())

	// Initialize services
	importCfg := config.LoadImportConfig()
	authService := services.NewAuthService(userStore, redisClient)
	expenseService := services.NewExpenseService(expenseStore)
	communityService := services.NewCommunityService(postStore)
	achievementService := services.NewAchievementService(expenseStore, lessonStore)
	quizService := services.NewQuizService(lessonStore, userStore, seed.AnswerKey())
	quizHandler := handlers.NewQuizHandler(quizService)
	importService := services.NewImportService(importCfg, expenseStore, userStore)
	importHandler := handlers.NewImportHandler(importService)
	voiceService := services.NewVoiceService()
	defer voiceService.Close()

	// Initialize auth middleware with Redis
	mW.InitAuthMiddleware(redisClient)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:4000/swagger/doc.json"),
	))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(mW.OptionalAuth)

		r.Post("/auth/login", authService.Login)
		r.Post("/auth/signup", authService.Signup)
		r.Post("/auth/logout", authService.Logout)

		r.Get("/expenses", expenseService.ListExpenses)
		r.Post("/expenses", expenseService.CreateExpense)
		r.Delete("/expenses/{expenseId}", expenseService.DeleteExpense)
		r.Get("/analytics", expenseService.GetAnalytics)

		r.Get("/lessons", quizService.ListLessons)
		r.Post("/quiz/submit", quizHandler.SubmitQuiz)

		r.Get("/community", communityService.ListPosts)
		r.Post("/community", communityService.CreatePost)

		r.Get("/achievements", achievementService.GetAchievements)

		r.Post("/transactions/parse", importHandler.ParseTransaction)

		r.Get("/profile", authService.GetProfile)
		r.Put("/profile", authService.UpdateProfile)
		r.Put("/profile/password", authService.UpdatePassword)

		// Protected endpoints (auth required)
		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware)

			r.Post("/transactions/voice-import", voiceService.VoiceImport)
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
