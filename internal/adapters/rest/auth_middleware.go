package rest

import (
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/port"
	"brokerage-service/internal/core/port/usecases_port"
	"net/http"
	"strings"
)

type AuthMiddleware struct {
	validateUC usecases_port.ValidateTokenUseCasePort
}

func NewAuthMiddleware(validateUC usecases_port.ValidateTokenUseCasePort) *AuthMiddleware {
	return &AuthMiddleware{validateUC: validateUC}
}

// Authenticate пропускает дальше только запросы с действующим токеном администратора
func (am *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := contextkeys.LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteJSONError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid token format")
			return
		}

		claims, err := am.validateUC.Execute(r.Context(), tokenString)
		if err != nil {
			logger.Warn("Rejected admin request with invalid token", port.Fields{"error": err.Error()})
			WriteJSONError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := contextkeys.ContextWithClaims(r.Context(), claims)
		ctx = contextkeys.ContextWithLogger(ctx, logger.WithFields(port.Fields{"admin_id": claims.UserID}))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
