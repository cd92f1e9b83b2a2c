package api

import (
	"alcyxob/fitcoach-api/internal/ai"
	"alcyxob/fitcoach-api/internal/service"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth          service.AuthService
	Workouts      service.WorkoutService
	ExerciseLists service.ExerciseListService
	Generator     ai.ProgramGenerator
}

// RouteOptions configures cross-cutting HTTP behavior.
type RouteOptions struct {
	AllowedOrigins []string
	Debug          bool // include diagnostic detail in generation failures
}

func SetupRoutes(router *gin.Engine, svc Services, opts RouteOptions) {
	authHandler := NewAuthHandler(svc.Auth)
	programHandler := NewProgramHandler(svc.Generator, opts.Debug)
	workoutHandler := NewWorkoutHandler(svc.Workouts)
	listHandler := NewExerciseListHandler(svc.ExerciseLists)

	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := AuthMiddleware(svc.Auth)

	apiGroup := router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", authMiddleware, authHandler.Me)
		}
	}

	protected := apiGroup.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/ai/program", programHandler.GenerateProgram)

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.SaveWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id", workoutHandler.RenameWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
			workoutGroup.POST("/:id/export", workoutHandler.ExportWorkout)
		}

		listGroup := protected.Group("/exercise-lists")
		{
			listGroup.POST("", listHandler.CreateExerciseList)
			listGroup.GET("", listHandler.ListExerciseLists)
			listGroup.GET("/:id", listHandler.GetExerciseList)
			listGroup.DELETE("/:id", listHandler.DeleteExerciseList)
		}
	}
}
