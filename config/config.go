package config

import (
	"context"
	"log"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config armazena todas as configurações do serviço GoCatalog.
// Os campos são preenchidos a partir das variáveis de ambiente (ou do .env carregado no main).
type Config struct {
	// Geral
	Port        string `env:"PORT, default=8080"`
	Environment string `env:"ENV, default=development"`
	LogLevel    string `env:"LOG_LEVEL, default=info"`

	// Banco de Dados (PostgreSQL)
	DatabaseURL string        `env:"DATABASE_URL, required"`
	DBTimeout   time.Duration `env:"DB_TIMEOUT, default=5s"`
	AutoMigrate bool          `env:"AUTO_MIGRATE, default=false"`
	SeedData    bool          `env:"SEED_DATA, default=true"`

	// Cache: "redis" ou "memory" (um único processo, sem Redis)
	CacheDriver  string        `env:"CACHE_DRIVER, default=redis"`
	RedisAddr    string        `env:"REDIS_ADDR, default=localhost:6379"`
	CacheTimeout time.Duration `env:"CACHE_TIMEOUT, default=10s"`
	CacheTTL     time.Duration `env:"CACHE_TTL, default=5m"`

	// Segurança (JWT)
	JWTSecretKey string        `env:"JWT_SECRET_KEY, required"`
	TokenExpiry  time.Duration `env:"JWT_EXPIRY, default=24h"`

	// Rate Limiting
	RateLimitMaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS, default=100"`
	RateLimitPeriod      time.Duration `env:"RATE_LIMIT_PERIOD, default=1m"`

	// CORS (o front-end Angular roda em localhost:4200 em desenvolvimento)
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:4200"`

	// Telemetria (OpenTelemetry). Vazio desativa a exportação de traces.
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE, default=false"`
}

// IsDevelopment indica se o serviço roda em ambiente de desenvolvimento.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// A aplicação não inicia se DATABASE_URL ou JWT_SECRET_KEY estiverem ausentes.
func LoadConfig() *Config {
	cfg, err := Load(context.Background(), envconfig.OsLookuper())
	if err != nil {
		log.Fatalf("❌ Erro de Configuração: %v", err)
	}
	return cfg
}

// Load preenche a Config usando o Lookuper informado (útil em testes com envconfig.MapLookuper).
func Load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
