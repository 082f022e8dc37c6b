package http

import (
	"net/http"
	"time"

	"github.com/Nnvvee96/planora.ai-sub005/internal/application/deletion"
	"github.com/Nnvvee96/planora.ai-sub005/internal/application/preferences"
	"github.com/Nnvvee96/planora.ai-sub005/internal/application/profile"
	"github.com/Nnvvee96/planora.ai-sub005/internal/application/purge"
	"github.com/Nnvvee96/planora.ai-sub005/internal/application/signup"
	"github.com/Nnvvee96/planora.ai-sub005/internal/config"
	"github.com/Nnvvee96/planora.ai-sub005/internal/infrastructure/dynamo"
	"github.com/Nnvvee96/planora.ai-sub005/internal/infrastructure/identity"
	s3infra "github.com/Nnvvee96/planora.ai-sub005/internal/infrastructure/s3"
	"github.com/Nnvvee96/planora.ai-sub005/internal/infrastructure/smtp"
	"github.com/Nnvvee96/planora.ai-sub005/internal/infrastructure/sns"
	"github.com/Nnvvee96/planora.ai-sub005/internal/transport/http/handler"
	appmiddleware "github.com/Nnvvee96/planora.ai-sub005/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	VerificationRepo *dynamo.VerificationRepo
	DeletionRepo     *dynamo.DeletionRepo
	RoleRepo         *dynamo.RoleRepo
	AssignmentRepo   *dynamo.RoleAssignmentRepo
	UserRepo         *dynamo.UserRepo
	ProfileRepo      *dynamo.ProfileRepo
	PreferencesRepo  *dynamo.PreferencesRepo
	Identity         *identity.Provider
	AvatarStore      *s3infra.Store
	Mailer           smtp.Mailer
	ReportPublisher  sns.ReportPublisher // nil disables purge-report publishing
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to the public signup endpoint.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	signupSvc := signup.NewService(signup.ServiceDeps{
		VerificationRepo: deps.VerificationRepo,
		RoleRepo:         deps.RoleRepo,
		AssignmentRepo:   deps.AssignmentRepo,
		Identity:         deps.Identity,
		Mailer:           deps.Mailer,
	})
	purgeSvc := purge.NewService(purge.ServiceDeps{
		DeletionRepo:   deps.DeletionRepo,
		PreferenceRepo: deps.PreferencesRepo,
		ProfileRepo:    deps.ProfileRepo,
		AssignmentRepo: deps.AssignmentRepo,
		Avatars:        deps.AvatarStore,
		Identity:       deps.Identity,
		Reports:        deps.ReportPublisher,
	})
	grace := time.Duration(cfg.DeletionGraceDays) * 24 * time.Hour
	deletionSvc := deletion.NewService(deps.DeletionRepo, deps.UserRepo, grace)
	profileSvc := profile.NewService(deps.ProfileRepo, deps.AvatarStore)
	prefsSvc := preferences.NewService(deps.PreferencesRepo)

	healthH := handler.NewHealthHandler()
	signupH := handler.NewSignupHandler(signupSvc)
	purgeH := handler.NewPurgeHandler(purgeSvc)
	deletionH := handler.NewDeletionHandler(deletionSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	prefsH := handler.NewPreferencesHandler(prefsSvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/signup", signupH.Action)
		r.Post("/purge/run", purgeH.Run)
		r.Post("/account/{id}/deletion-request", deletionH.Request)
		r.Get("/profiles/{id}", profileH.Get)
		r.Put("/profiles/{id}", profileH.Update)
		r.Post("/profiles/{id}/avatar", profileH.UploadAvatar)
		r.Get("/travel-preferences/{id}", prefsH.Get)
		r.Put("/travel-preferences/{id}", prefsH.Put)
	})

	return r
}
