package router

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/pubsub"
	"app/internal/repository"
	"app/internal/service"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *sql.DB, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	// 1. Open DB connection (connection pooling)
	dsn := cfg.DBConnectionString
	// In a development environment, ensure SSL is disabled for local testing.
	// In production the connection string carries its own SSL settings.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := " "
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			if strings.Contains(dsn, "?") {
				separator = "&"
			} else {
				separator = "?"
			}
		}
		dsn += separator + "sslmode=disable"
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open DB connection")
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		logger.Error().Err(err).Msg("Failed to ping DB")
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// 2. Initialize S3 client for placeholder media
	s3Config, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load S3 config")
		return nil, nil, err
	}
	s3Client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3URL)
		o.UsePathStyle = true
	})

	// 3. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Initialize Pub/Sub publisher for generation telemetry
	pubSubPublisher, err := pubsub.NewPublisher(context.Background(), cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create Pub/Sub publisher")
		return nil, nil, err
	}

	// 5. Resolve the generation API key. Outside development an empty env var
	// means the key lives in Secret Manager.
	geminiKey := cfg.GeminiAPIKey
	if geminiKey == "" && cfg.Environment != "development" {
		secrets, err := service.NewSecretManagerService(context.Background(), cfg)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create Secret Manager client")
			return nil, nil, err
		}
		geminiKey, err = secrets.GetGenerationAPIKey(context.Background())
		if err != nil {
			logger.Error().Err(err).Msg("Failed to resolve generation API key")
			return nil, nil, err
		}
	}
	if geminiKey == "" {
		logger.Warn().Msg("No generation API key configured; all requests will use the deterministic fallback")
	}

	// 6. Initialize repositories & services & handlers
	userRepo := repository.NewUserRepo(db)
	courseRepo := repository.NewCourseRepo(db)
	aiCourseRepo := repository.NewAICourseRepo(db)
	lectureRepo := repository.NewLectureRepository(db)

	geminiClient := service.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiModel, geminiKey, logger)
	mediaStorage := service.NewS3MediaStorage(s3Client, cfg.S3Bucket, cfg.PlaceholderMediaKey, logger)
	genSvc := service.NewGenerationService(geminiClient, userRepo, pubSubPublisher, cfg.GenerationTopic, logger)
	builderSvc := service.NewCourseBuilderService(aiCourseRepo, courseRepo, lectureRepo, userRepo,
		mediaStorage, cfg.PlaceholderMediaKey, cfg.DefaultCourseImage, logger)

	builderHandler := handler.NewCourseBuilderHandler(genSvc, builderSvc, validate, logger)

	// 7. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, logger)

	// 8. Create ServeMux router
	mux := http.NewServeMux()

	apiV1Mux := http.NewServeMux()
	builderHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	// Mount the API v1 routes under /v1
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// 9. CORS for the presentation layer
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return c.Handler(mux), db, nil
}
