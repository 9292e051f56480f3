package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type contextKey string

const userKey = contextKey("user")

// Сохраняет пользователя в контексте
func WithUser(ctx context.Context, user UserData) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// Достает пользователя из контекста (кладет его AuthMiddleware)
func GetUserFromContext(ctx context.Context) (UserData, error) {
	user, ok := ctx.Value(userKey).(UserData)
	if !ok || user.ID == "" {
		return UserData{}, errors.New("user not found in context")
	}
	return user, nil
}

// GetUserIDFromContext is a shortcut for GetUserFromContext(ctx).ID.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	user, err := GetUserFromContext(ctx)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// AuthMiddleware puts the user of a valid Bearer token into the request context.
// Requests without a token, or with a bad one, go through anonymously.
func AuthMiddleware(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractTokenFromHeader(r.Header.Get("Authorization"))
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := tokens.ParseToken(tokenStr)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithUser(r.Context(), *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractTokenFromHeader(header string) string {
	parts := strings.Split(strings.TrimSpace(header), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
