package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"gocatalog/config"
	"gocatalog/internal/pkg/cache"
	"gocatalog/internal/pkg/database"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/telemetry"
	"gocatalog/internal/pkg/token"
	"gocatalog/internal/pkg/validation"
	"gocatalog/migrations"

	// Camadas para Injeção de Dependências
	"gocatalog/internal/api/auth"
	"gocatalog/internal/api/category"
	"gocatalog/internal/api/product"
	"gocatalog/internal/api/router"
	"gocatalog/internal/repository/categoryrepo"
	"gocatalog/internal/repository/productrepo"
	"gocatalog/internal/repository/userrepo"
	"gocatalog/internal/seed"
	"gocatalog/internal/service/categoryservice"
	"gocatalog/internal/service/productservice"
	"gocatalog/internal/service/userservice"
)

// @title GoCatalog API
// @version 1.0
// @description API do catálogo de produtos: autenticação, categorias e produtos.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	cfg := config.LoadConfig()
	appLog := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})
	appLog.Info("⚡ Inicializando serviço GoCatalog...", map[string]interface{}{"env": cfg.Environment})

	shutdownTracing := telemetry.Setup("gocatalog-api", cfg.OTLPEndpoint, cfg.OTLPInsecure, appLog)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			appLog.Error("Falha ao encerrar o exportador de traces.", err)
		}
	}()

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	if cfg.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			appLog.Fatal("Falha ao aplicar migrações.", err)
		}
		appLog.Info("Migrações aplicadas.", nil)
	}

	// B. Cache (Redis, ou memória com CACHE_DRIVER=memory)
	var cacheClient cache.Client
	if cfg.CacheDriver != "memory" && cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
		if err != nil {
			appLog.Warn("Redis indisponível no boot; o cache será tentado a cada requisição.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
		} else {
			appLog.Info("Conexão Redis estabelecida.", nil)
		}
		defer redisClient.Close()
		cacheClient = redisClient
	} else {
		cacheClient = cache.NewMemoryClient()
		appLog.Warn("Usando cache em memória: revogações e rate limit valem só para esta instância.", nil)
	}

	// C. Serviço de Tokens (JWT) e validação
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	v := validation.New()

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, appLog)
	categoryRepo := categoryrepo.NewCategoryRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, appLog)
	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, appLog)
	appLog.Debug("Repositórios inicializados.", nil)

	userSvc := userservice.NewService(userRepo, tokenSvc, cacheClient, v, appLog)
	categorySvc := categoryservice.NewService(categoryRepo, appLog)
	productSvc := productservice.NewService(productRepo, v, appLog)
	appLog.Debug("Serviços inicializados.", nil)

	authHandler := auth.NewHandler(userSvc, appLog)
	categoryHandler := category.NewHandler(categorySvc, appLog)
	productHandler := product.NewHandler(productSvc, appLog)
	appLog.Debug("Handlers inicializados.", nil)

	// 4. Dados iniciais
	if cfg.SeedData {
		seeder := seed.NewSeeder(userSvc, categoryRepo, productRepo, appLog)
		if err := seeder.Run(context.Background()); err != nil {
			appLog.Error("Falha ao carregar dados iniciais.", err)
		}
	}

	// 5. Roteador e Servidor
	r := router.NewRouter(router.Dependencies{
		AuthHandler:          authHandler,
		CategoryHandler:      categoryHandler,
		ProductHandler:       productHandler,
		TokenSvc:             tokenSvc,
		Cache:                cacheClient,
		Logger:               appLog,
		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 6. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor GoCatalog ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
