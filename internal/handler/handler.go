package handler

import (
	"database/sql"
	"net/http"
	"transcript_api/internal/audio"
	"transcript_api/internal/auth"
	"transcript_api/internal/config"
	"transcript_api/internal/middleware"
	"transcript_api/internal/observability"
	"transcript_api/internal/transcribe"
	"transcript_api/internal/transcript"
	"transcript_api/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// SetupHandler initializes all dependencies and routes
func SetupHandler(db *sql.DB, conn *amqp.Connection, redisClient *redis.Client, cfg *config.Config) *gin.Engine {

	r := gin.Default()

	// Gin snapshots the middleware chain at route registration, so metrics
	// tracking must be attached before any route is added.
	r.Use(middleware.PrometheusMiddleware(observability.GlobalMetrics))

	codec, err := auth.NewCodec(cfg.JWT.Secret, cfg.JWT.Algorithm)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure token codec")
	}

	// Initialize repositories
	userRepo := user.NewUserRepository()
	transcriptRepo := transcript.NewTranscriptRepository()

	// Initialize services
	userService := user.NewUserService(userRepo, db)
	engine := transcribe.NewDeepgramEngine(cfg.Deepgram.APIKey)
	converter := audio.NewFFmpegConverter()
	transcriptService := transcript.NewTranscriptService(transcriptRepo, db, engine, converter, conn, redisClient)

	// Initialize controllers
	userController := user.NewUserController(userService, codec)
	transcriptController := transcript.NewTranscriptController(transcriptService)

	// Setup routes
	setupRoutes(r, userController, transcriptController, codec, userService)

	return r
}

// setupRoutes configures all application routes
func setupRoutes(r *gin.Engine, userCtrl *user.UserController, transcriptCtrl *transcript.TranscriptController, codec *auth.Codec, userService user.UserServiceInterface) {

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the transcript API"})
	})

	// Public routes - Authentication
	r.POST("/token", userCtrl.Login)
	r.POST("/sing-up", userCtrl.Register) // historical route name, clients depend on the typo

	// Protected routes - every request passes the auth gate first
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(codec, userService))
	{
		protected.POST("/transcribe", transcriptCtrl.Transcribe)
		protected.POST("/save_transcript", transcriptCtrl.SaveTranscript)
		protected.GET("/transcripts", transcriptCtrl.ListTranscripts)
	}
}
