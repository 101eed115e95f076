package router

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/pgmq"
	"app/internal/repository"
	"app/internal/service"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New wires the HTTP API: DB pool, S3 client, queue client, repositories,
// services, handlers, and middleware. The returned DB handle belongs to the
// caller and must be closed on shutdown.
func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *sql.DB, error) {
	// 1. Open DB connection (connection pooling)
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open DB connection: %w", err)
	}

	// Ping the database to ensure the connection is valid
	if err := db.Ping(); err != nil {
		return nil, nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	logger.Info().Msg("Database connection successful")

	// Set reasonable connection pool limits
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// 2. Initialize S3 client for export snapshots
	s3Config, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load S3 config: %w", err)
	}
	s3Client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3URL)
		o.UsePathStyle = true
	})

	// 3. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Initialize queue client for assessment change events
	queueClient := pgmq.New(db)

	// 5. Initialize repositories & services & handlers
	instructorRepo := repository.NewInstructorRepo(db)
	courseRepo := repository.NewCourseRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)
	statsRepo := repository.NewStatsRepo(db)
	dlqRepo := repository.NewDLQRepository(db)

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	exportURLTTL := time.Duration(cfg.ExportURLTTLMin) * time.Minute

	instructorSvc := service.NewInstructorService(instructorRepo, cfg.JWTSecret, sessionTTL)
	courseSvc := service.NewCourseService(courseRepo, queueClient, cfg.AggregationQueueName, logger)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, queueClient, cfg.AggregationQueueName, logger)
	exportSvc := service.NewExportService(assessmentRepo, courseRepo, s3Client, cfg.S3Bucket, exportURLTTL, logger)
	statsSvc := service.NewStatsService(statsRepo)
	dlqSvc := service.NewDLQService(dlqRepo)

	authHandler := handler.NewAuthHandler(instructorSvc, validate, logger)
	instructorHandler := handler.NewInstructorHandler(instructorSvc, logger)
	courseHandler := handler.NewCourseHandler(courseSvc, assessmentSvc, validate, logger)

	// 6. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, logger)

	// 7. Create ServeMux router
	mux := http.NewServeMux()

	// Create a subrouter for API v1 with the /v1 prefix
	apiV1Mux := http.NewServeMux()
	authHandler.RegisterRoutes(apiV1Mux)
	instructorHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	courseHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	// The admin surface only exists when a token is configured.
	if cfg.AdminAPIToken != "" {
		adminHandler := handler.NewAdminHandler(exportSvc, statsSvc, dlqSvc, validate, logger)
		adminMiddleware := middleware.AdminMiddleware(cfg.AdminAPIToken, logger)
		adminHandler.RegisterRoutes(apiV1Mux, adminMiddleware)
	} else {
		logger.Warn().Msg("ADMIN_API_TOKEN not set; admin routes disabled")
	}

	// Mount the API v1 routes under /v1
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	// Swagger documentation (generated into docs/swagger at build time)
	mux.HandleFunc("/swagger/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger/swagger.json")
	})
	mux.Handle("/swagger/", http.StripPrefix("/swagger/", http.FileServer(http.Dir("./docs/swagger/swagger-ui"))))

	// Redirect root-level requests to /v1/{path}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// Avoid redirect loops for paths already under a mount
		if strings.HasPrefix(r.URL.Path, "/v1/") || strings.HasPrefix(r.URL.Path, "/swagger/") {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/v1"+r.URL.Path, http.StatusMovedPermanently)
	})

	// 8. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux)), db, nil
}

// removeDisableGzip is a workaround for S3 signature errors with some
// S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		// Only remove the middleware if it exists; presigned URL operations
		// inspect the stack without installing it.
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
