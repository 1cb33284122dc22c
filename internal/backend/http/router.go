package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/folio/internal/backend/service"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"

	backenddocs "github.com/aussiebroadwan/folio/api/backend" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	AuthService    *service.AuthService
	ProfileService *service.ProfileService
	Verifier       httpx.TokenVerifier

	// SecureCookies marks the refresh cookie Secure.
	SecureCookies  bool
	MaxAvatarBytes int64

	// Checks feed /readyz, keyed by dependency name.
	Checks map[string]ReadinessCheck
}

func NewRouter(
	auth *service.AuthService,
	profile *service.ProfileService,
	verifier httpx.TokenVerifier,
	buildVersion string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		logger:         logger,
		AuthService:    auth,
		ProfileService: profile,
		Verifier:       verifier,
		Checks:         map[string]ReadinessCheck{},
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.InstanceName(backenddocs.SwaggerInfo.InstanceName()),
	))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Folio API
//	@version		0.1.0
//	@description	Accounts and profiles for Folio photographers.
//	@description
//	@description	Access tokens are short lived bearer tokens. The refresh token lives in an HttpOnly cookie and is exchanged at /auth/refresh.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/folio
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	authn := httpx.AuthnMiddleware(r.Verifier)

	r.Mux.Handle("POST /auth/register", &RegisterHandler{Auth: r.AuthService, SecureCookies: r.SecureCookies})
	r.Mux.Handle("POST /auth/login", &LoginHandler{Auth: r.AuthService, SecureCookies: r.SecureCookies})
	r.Mux.Handle("POST /auth/refresh", &RefreshHandler{Auth: r.AuthService})
	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(&LogoutHandler{Auth: r.AuthService, SecureCookies: r.SecureCookies}, authn),
	)
}

func (r *Router) registerProfile() {
	authn := httpx.AuthnMiddleware(r.Verifier)

	r.Mux.Handle("GET /auth/me", httpx.Chain(&MeHandler{Profile: r.ProfileService}, authn))
	r.Mux.Handle("PUT /auth/profile", httpx.Chain(&UpdateProfileHandler{Profile: r.ProfileService}, authn))
	r.Mux.Handle("POST /auth/avatar",
		httpx.Chain(&AvatarHandler{Profile: r.ProfileService, MaxBytes: r.MaxAvatarBytes}, authn),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.Checks))
}
