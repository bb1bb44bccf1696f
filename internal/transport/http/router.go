package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/otp-auth-api/internal/application/allowlist"
	"github.com/otp-auth-api/internal/application/notify"
	"github.com/otp-auth-api/internal/application/session"
	"github.com/otp-auth-api/internal/application/user"
	"github.com/otp-auth-api/internal/application/verification"
	"github.com/otp-auth-api/internal/config"
	"github.com/otp-auth-api/internal/domain"
	"github.com/otp-auth-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/otp-auth-api/internal/infrastructure/jwt"
	"github.com/otp-auth-api/internal/infrastructure/redisstore"
	s3infra "github.com/otp-auth-api/internal/infrastructure/s3"
	"github.com/otp-auth-api/internal/transport/http/handler"
	appmiddleware "github.com/otp-auth-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo      *dynamo.UserRepo
	AllowListRepo *dynamo.AllowListRepo
	CodeStore     *redisstore.VerificationStore
	Blacklist     *redisstore.Blacklist
	SMSQueue      *redisstore.SMSQueue
	S3Store       *s3infra.Store
	JWTProvider   *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	dispatcher := notify.NewDispatcher(deps.SMSQueue)

	verificationSvc := verification.NewService(verification.ServiceDeps{
		CodeStore:   deps.CodeStore,
		UserRepo:    deps.UserRepo,
		AllowList:   deps.AllowListRepo,
		CodeSender:  dispatcher,
		JWTProvider: deps.JWTProvider,
	})
	sessionSvc := session.NewService(session.ServiceDeps{
		UserRepo:    deps.UserRepo,
		AllowList:   deps.AllowListRepo,
		JWTProvider: deps.JWTProvider,
		Blacklist:   deps.Blacklist,
	})
	userSvc := user.NewService(user.ServiceDeps{
		UserRepo:    deps.UserRepo,
		AvatarStore: deps.S3Store,
	})
	allowListSvc := allowlist.NewService(allowlist.ServiceDeps{
		AllowListRepo: deps.AllowListRepo,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(verificationSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	profileH := handler.NewProfileHandler(userSvc)
	userH := handler.NewUserHandler(userSvc)
	allowListH := handler.NewAllowListHandler(allowListSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)

		r.Group(func(r chi.Router) {
			r.Use(sensitiveRL.Limit)

			r.Post("/auth/register/send-code", authH.SendRegisterCode)
			r.Post("/auth/register/verify", authH.Register)
			r.Post("/auth/login", sessionH.Login)
			r.Post("/auth/login/send-code", authH.SendLoginCode)
			r.Post("/auth/login/verify", authH.LoginVerify)
			r.Post("/auth/forgot-password", authH.ForgotPassword)
			r.Post("/auth/forgot-password/verify", authH.ResetPassword)
			r.Post("/sessions/refresh", sessionH.Refresh)
		})

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/sessions/logout", sessionH.Logout)

			r.Get("/profile", profileH.Get)
			r.Patch("/profile", profileH.Update)
			r.Patch("/profile/password", profileH.ChangePassword)
			r.Patch("/profile/avatar", profileH.UpdateAvatar)

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireAction(domain.ActionManageUsers))

				r.Get("/users", userH.List)
				r.Post("/users", userH.Create)
				r.Get("/users/{id}", userH.Get)
				r.Patch("/users/{id}", userH.Update)
				r.Delete("/users/{id}", userH.Delete)
			})

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireAction(domain.ActionManageAllowList))

				r.Get("/allowlist", allowListH.List)
				r.Post("/allowlist", allowListH.Add)
				r.Delete("/allowlist/{mobile}", allowListH.Remove)
			})
		})
	})

	return r
}
