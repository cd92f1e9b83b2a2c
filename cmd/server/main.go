package main

import (
	"alcyxob/fitcoach-api/internal/ai"
	"alcyxob/fitcoach-api/internal/api"
	"alcyxob/fitcoach-api/internal/config"
	"alcyxob/fitcoach-api/internal/repository"
	"alcyxob/fitcoach-api/internal/repository/mongo"
	"alcyxob/fitcoach-api/internal/repository/postgres"
	"alcyxob/fitcoach-api/internal/service"
	"alcyxob/fitcoach-api/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

type repositories struct {
	users         repository.UserRepository
	workouts      repository.WorkoutRepository
	exerciseLists repository.ExerciseListRepository
	close         func()
}

// openRepositories connects the configured backend and prepares its schema.
func openRepositories(cfg config.DatabaseConfig) (*repositories, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	switch cfg.Driver {
	case "mongo", "mongodb":
		client, err := mongo.ConnectDB(cfg.URL)
		if err != nil {
			return nil, err
		}
		appDB := client.Database(cfg.Name)
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			_ = mongo.DisconnectDB(client)
			return nil, err
		}
		return &repositories{
			users:         mongo.NewMongoUserRepository(appDB),
			workouts:      mongo.NewMongoWorkoutRepository(appDB),
			exerciseLists: mongo.NewMongoExerciseListRepository(appDB),
			close: func() {
				if err := mongo.DisconnectDB(client); err != nil {
					log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
				}
			},
		}, nil

	case "postgres", "postgresql", "":
		db, err := postgres.ConnectDB(cfg.URL)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &repositories{
			users:         postgres.NewPostgresUserRepository(db),
			workouts:      postgres.NewPostgresWorkoutRepository(db),
			exerciseLists: postgres.NewPostgresExerciseListRepository(db),
			close: func() {
				if err := db.Close(); err != nil {
					log.Printf("ERROR: Failed to close PostgreSQL pool: %v", err)
				}
			},
		}, nil

	default:
		return nil, errors.New("unsupported database driver: " + cfg.Driver)
	}
}

// @title Fitness Coach API
// @version 1.0
// @description Accounts, saved workout programs, exercise lists and AI program generation.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.Println("Starting Fitness Coach Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Printf("Configuration loaded (env=%s, database=%s).", cfg.App.Env, cfg.Database.Driver)

	// --- Database Connection ---
	repos, err := openRepositories(cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: Could not open %s database: %v", cfg.Database.Driver, err)
	}
	defer repos.close()
	log.Println("Database connection established.")

	// --- Initialize Storage ---
	var files storage.ObjectStorage
	if cfg.S3.Enabled() {
		files, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("WARN: s3.bucket_name not set, program export is disabled.")
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	credentials, err := service.NewCredentials(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.Expiration())
	if err != nil {
		log.Fatalf("FATAL: Invalid JWT configuration: %v", err)
	}
	if cfg.OpenAI.APIKey == "" {
		log.Println("WARN: openai.api_key not set, program generation will fail.")
	}
	model := ai.NewOpenAIModel(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.RequestTimeout())

	services := api.Services{
		Auth:          service.NewAuthService(repos.users, credentials),
		Workouts:      service.NewWorkoutService(repos.workouts, files),
		ExerciseLists: service.NewExerciseListService(repos.exerciseLists),
		Generator:     ai.NewGenerator(model, cfg.OpenAI.Model, cfg.OpenAI.Retries),
	}

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, services, api.RouteOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Debug:          cfg.App.IsDev(),
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:        cfg.Server.Address,
		Handler:     router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.OpenAI.GenerationBudget() + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the requests it is currently handling
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
