package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/folio/internal/token/service"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"

	tokendocs "github.com/aussiebroadwan/folio/api/token" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	// ServiceKey, when set, guards the minting routes.
	ServiceKey   string
	TokenService *service.TokenService
}

func NewRouter(tokens *service.TokenService, buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		TokenService: tokens,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerMint()
	r.registerVerify()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.InstanceName(tokendocs.SwaggerInfo.InstanceName()),
	))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Folio Token Service API
//	@version		0.1.0
//	@description	Issues and verifies the HS256 access and refresh tokens used by Folio.
//	@description
//	@description	Access tokens live 15 minutes and refresh tokens 7 days. Each class is signed with its own secret.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/folio
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:4000
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	ServiceKey
//	@in							header
//	@name						X-Service-Key
//	@description				Shared key between Folio services, required when configured.
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerMint() {
	guard := RequireServiceKey(r.ServiceKey)

	r.Mux.Handle("POST /token/access",
		httpx.Chain(&IssueAccessHandler{TokenService: r.TokenService}, guard),
	)
	r.Mux.Handle("POST /token/refresh",
		httpx.Chain(&IssueRefreshHandler{TokenService: r.TokenService}, guard),
	)
	r.Mux.Handle("POST /token/refresh-access",
		httpx.Chain(&RefreshAccessHandler{TokenService: r.TokenService}, guard),
	)
}

func (r *Router) registerVerify() {
	r.Mux.Handle("POST /token/verify", &VerifyHandler{TokenService: r.TokenService})
	r.Mux.Handle("POST /token/verify-refresh", &VerifyRefreshHandler{TokenService: r.TokenService})
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.TokenService))
}
