package contextkeys

import (
	"brokerage-service/internal/core/domain"
	"context"
)

type claimsKeyType struct{}

var claimsKey = claimsKeyType{}

// ContextWithClaims кладет данные проверенного токена администратора в контекст
func ContextWithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext возвращает claims или nil для анонимного запроса
func ClaimsFromContext(ctx context.Context) *domain.Claims {
	if claims, ok := ctx.Value(claimsKey).(*domain.Claims); ok {
		return claims
	}
	return nil
}
