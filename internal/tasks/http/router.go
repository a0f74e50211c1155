package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/assets"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/jwtx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"

	_ "github.com/aussiebroadwan/tasks/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	CredentialService *service.CredentialService
	SessionService    *service.SessionService
	UserService       *service.UserService
	TaskService       *service.TaskService
	ProfileService    *service.ProfileService

	// Assets is where uploads go. LocalUploads is set only for the local
	// backend, and enables GET /uploads/{name}.
	Assets       assets.Store
	LocalUploads *assets.LocalStore

	RateLimits     httpx.RateLimits
	CookieSecure   bool
	MaxUploadBytes int64
}

func NewRouter(
	keys *jwtx.KeySet,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		RateLimits:   httpx.DefaultRateLimits,
	}
}

// ApplyRoutes registers every route. Services must be set first.
func (r *Router) ApplyRoutes() {
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.SessionMiddleware(sessionAuthenticator(r.SessionService), SessionCookieName),
	}

	r.registerAuth()
	r.registerMe()
	r.registerTasks()
	r.registerUploads()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Tasks Service API
//	@version					0.1.0
//	@description				Multi-user task tracker. Register, log in and manage your own to-do items.
//	@description
//	@description				Sessions are EdDSA-signed tokens bound to a server-side session row, sent
//	@description				either as the tasks_session cookie or as a Bearer token.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tasks
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:10000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authed gates h behind a session and the per-user API limit.
func (r *Router) authed(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.RequireSession(loginURL),
		httpx.RateLimitByUser(r.RateLimits.API),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		CredentialService: r.CredentialService,
		SessionService:    r.SessionService,
		CookieSecure:      r.CookieSecure,
	}

	// Account creation is limited by IP.
	r.Mux.Handle("POST /v1/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.RateLimits.Auth),
		),
	)

	// Login is limited by IP and email to slow down guessing.
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndFormField(r.RateLimits.Auth, "email"),
		),
	)

	// Logout never requires a session.
	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(r.RateLimits.Public),
		),
	)
}

func (r *Router) registerMe() {
	h := &MeHandler{
		UserService:       r.UserService,
		CredentialService: r.CredentialService,
		SessionService:    r.SessionService,
		ProfileService:    r.ProfileService,
		MaxUploadBytes:    r.MaxUploadBytes,
	}

	r.Mux.Handle("GET /v1/me", r.authed(h.HandleGet))
	r.Mux.Handle("POST /v1/me/password", r.authed(h.HandleChangePassword))
	r.Mux.Handle("POST /v1/me/profile-picture", r.authed(h.HandleUploadPicture))
}

func (r *Router) registerTasks() {
	h := &TasksHandler{TaskService: r.TaskService}

	r.Mux.Handle("GET /v1/tasks", r.authed(h.HandleList))
	r.Mux.Handle("POST /v1/tasks", r.authed(h.HandleCreate))
	r.Mux.Handle("POST /v1/tasks/{id}/complete", r.authed(h.HandleComplete))
	r.Mux.Handle("DELETE /v1/tasks/{id}", r.authed(h.HandleDelete))
}

func (r *Router) registerUploads() {
	if r.LocalUploads == nil {
		return
	}
	r.Mux.Handle("GET /uploads/{name}",
		httpx.Chain(UploadsHandler(r.LocalUploads),
			httpx.RateLimitByIP(r.RateLimits.Public),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.RateLimits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.Assets),
			httpx.RateLimitByIP(r.RateLimits.Public),
		),
	)
}
