package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nnvvee96/planora.ai-sub005/internal/config"
	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
	"github.com/Nnvvee96/planora.ai-sub005/internal/infrastructure/dynamo"
	"github.com/Nnvvee96/planora.ai-sub005/internal/infrastructure/identity"
	s3infra "github.com/Nnvvee96/planora.ai-sub005/internal/infrastructure/s3"
	"github.com/Nnvvee96/planora.ai-sub005/internal/infrastructure/smtp"
	"github.com/Nnvvee96/planora.ai-sub005/internal/infrastructure/sns"
	"github.com/Nnvvee96/planora.ai-sub005/internal/pkg/id"
	transporthttp "github.com/Nnvvee96/planora.ai-sub005/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	roleRepo := dynamo.NewRoleRepo(dynamoClient, cfg.DynamoTables.Roles)

	// The signup flow assigns the "user" role; its absence would fail every
	// completion with a configuration error.
	ensureDefaultRole(context.Background(), roleRepo)

	// S3 avatar store.
	s3Client := s3infra.NewClient(cfg)
	avatarStore := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS purge-report publisher (optional — disabled without a topic ARN).
	var reportPublisher sns.ReportPublisher
	if cfg.PurgeReportTopic != "" {
		if p, err := sns.NewPublisher(cfg); err == nil {
			reportPublisher = p
		} else {
			log.Printf("WARN: SNS publisher not available: %v", err)
		}
	}

	deps := &transporthttp.Deps{
		VerificationRepo: dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.VerificationCodes),
		DeletionRepo:     dynamo.NewDeletionRepo(dynamoClient, cfg.DynamoTables.DeletionRequests),
		RoleRepo:         roleRepo,
		AssignmentRepo:   dynamo.NewRoleAssignmentRepo(dynamoClient, cfg.DynamoTables.UserRoles),
		UserRepo:         userRepo,
		ProfileRepo:      dynamo.NewProfileRepo(dynamoClient, cfg.DynamoTables.Profiles),
		PreferencesRepo:  dynamo.NewPreferencesRepo(dynamoClient, cfg.DynamoTables.TravelPreferences),
		Identity:         identity.NewProvider(userRepo),
		AvatarStore:      avatarStore,
		Mailer:           mailer,
		ReportPublisher:  reportPublisher,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

func ensureDefaultRole(ctx context.Context, roles *dynamo.RoleRepo) {
	_, err := roles.GetByName(ctx, domain.RoleUser)
	if err == nil {
		return
	}
	if !errors.Is(err, domain.ErrNotFound) {
		log.Printf("WARN: could not check default role: %v", err)
		return
	}
	if err := roles.Put(ctx, &domain.Role{RoleID: id.New(), Name: domain.RoleUser}); err != nil {
		log.Printf("WARN: could not seed default role: %v", err)
	}
}
