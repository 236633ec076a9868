package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "gocatalog/docs" // registra o documento Swagger
	"gocatalog/internal/api/auth"
	"gocatalog/internal/api/category"
	"gocatalog/internal/api/product"
	"gocatalog/internal/domain"
	"gocatalog/internal/pkg/cache"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/metrics"
	"gocatalog/internal/pkg/middleware"
)

// serviceName identifica a API nos spans do OpenTelemetry.
const serviceName = "gocatalog-api"

// Dependencies reúne os Handlers já inicializados e a infraestrutura dos middlewares.
type Dependencies struct {
	AuthHandler     *auth.Handler
	CategoryHandler *category.Handler
	ProductHandler  *product.Handler

	TokenSvc middleware.TokenValidator
	Cache    cache.Client
	Logger   logger.Logger

	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
	CORSAllowedOrigins   []string
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	authMW := middleware.NewAuthMiddleware(deps.TokenSvc, deps.Cache, deps.Logger)
	adminOnly := func(h http.HandlerFunc) http.HandlerFunc {
		return authMW(middleware.PermissionMiddleware(domain.RoleAdmin)(h))
	}

	// --- 1. Health check, métricas e documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 2. Autenticação ---
	a := deps.AuthHandler
	mux.HandleFunc("POST /api/auth/register", a.RegisterHandler)
	mux.HandleFunc("POST /api/auth/login", a.LoginHandler)
	mux.HandleFunc("GET /api/auth/me", authMW(a.MeHandler))
	mux.HandleFunc("PUT /api/auth/me", authMW(a.UpdateMeHandler))
	mux.HandleFunc("POST /api/auth/logout", authMW(a.LogoutHandler))

	// --- 3. Categorias (leitura pública, escrita ADMIN) ---
	c := deps.CategoryHandler
	mux.HandleFunc("GET /api/categories", c.ListCategoriesHandler)
	mux.HandleFunc("GET /api/categories/{id}", c.GetCategoryHandler)
	mux.HandleFunc("POST /api/categories", adminOnly(c.CreateCategoryHandler))
	mux.HandleFunc("PUT /api/categories/{id}", adminOnly(c.UpdateCategoryHandler))
	mux.HandleFunc("DELETE /api/categories/{id}", adminOnly(c.DeleteCategoryHandler))

	// --- 4. Produtos (catálogo público, escrita ADMIN) ---
	p := deps.ProductHandler
	mux.HandleFunc("GET /api/products", p.ListProductsHandler)
	mux.HandleFunc("GET /api/products/{id}", p.GetProductByIDHandler)
	mux.HandleFunc("POST /api/products", adminOnly(p.CreateProductHandler))
	mux.HandleFunc("PUT /api/products/{id}", adminOnly(p.UpdateProductHandler))
	mux.HandleFunc("DELETE /api/products/{id}", adminOnly(p.DeleteProductHandler))

	// --- 5. Middlewares Globais ---
	// metrics fica junto do mux para enxergar o padrão da rota casada.
	var handler http.Handler = metrics.Middleware(mux)
	handler = middleware.RateLimiter(deps.Cache, deps.RateLimitMaxRequests, deps.RateLimitPeriod, deps.Logger)(handler)
	handler = middleware.CORS(deps.CORSAllowedOrigins)(handler)
	handler = middleware.RequestLogger(deps.Logger)(handler)

	return otelhttp.NewHandler(handler, serviceName)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
