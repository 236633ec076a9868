package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"gocatalog/internal/domain" // Para usar a role do usuário
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/cache"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/respond"
	"gocatalog/internal/pkg/token"
)

// ContextKey é o tipo das chaves que este pacote guarda no contexto.
// Context Keys devem ser não-exportadas e de um tipo único.
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
	RequestIDKey
)

// UserClaims representa os dados do usuário extraídos do token JWT,
// que serão anexados ao contexto.
type UserClaims struct {
	UserID    int64
	Username  string
	Role      domain.UserRole
	TokenID   string
	ExpiresAt time.Time
}

// TokenValidator define o contrato de validação necessário para o middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware cria uma função de middleware que valida um JWT, recusa tokens
// revogados no logout e anexa as claims ao contexto da requisição.
func NewAuthMiddleware(tokenSvc TokenValidator, revocations cache.Client, log logger.Logger) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || strings.TrimSpace(tokenString) == "" {
				respond.Error(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			// 2. Validar o Token
			claims, err := tokenSvc.ValidateToken(strings.TrimSpace(tokenString))
			if err != nil {
				log.Debug("Token rejeitado.", map[string]interface{}{"path": r.URL.Path, "error": err.Error()})
				respond.Error(w, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			// 3. Verificar revogação. Falha do cache não bloqueia a requisição.
			if claims.ID != "" {
				_, err := revocations.Get(r.Context(), token.RevocationKey(claims.ID))
				switch {
				case err == nil:
					respond.Error(w, apperror.NewUnauthorizedError("Sessão encerrada. Faça login novamente."))
					return
				case err != cache.ErrCacheMiss:
					log.Warn("Falha ao consultar revogação de token.", map[string]interface{}{"error": err.Error()})
				}
			}

			// 4. Anexar Claims ao Contexto
			userClaims := UserClaims{
				UserID:   claims.UserID,
				Username: claims.Username,
				Role:     domain.UserRole(claims.Role),
				TokenID:  claims.ID,
			}
			if claims.ExpiresAt != nil {
				userClaims.ExpiresAt = claims.ExpiresAt.Time
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// PermissionMiddleware exige que o usuário autenticado tenha uma das roles informadas.
func PermissionMiddleware(requiredRoles ...domain.UserRole) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Tentar extrair as Claims do contexto
			claims, ok := GetUserClaimsFromContext(r.Context())
			if !ok {
				respond.Error(w, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}

			// 2. Verificar Permissão (AuthZ)
			for _, requiredRole := range requiredRoles {
				if claims.Role == requiredRole {
					next.ServeHTTP(w, r)
					return
				}
			}

			respond.Error(w, apperror.NewForbiddenError("Você não tem a permissão necessária."))
		}
	}
}
