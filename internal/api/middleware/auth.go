package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/m04kA/PPB-BookingService/internal/api/handlers"
)

type adminContextKey struct{}

const (
	msgMissingToken = "отсутствует bearer-токен"
	msgInvalidToken = "некорректный или истёкший токен"
)

// AdminRole значение claim'а role в админском токене
const AdminRole = "admin"

// AdminAuth проверяет Bearer-токен администратора (HS256)
// и кладет имя администратора в контекст запроса
func AdminAuth(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || claims["role"] != AdminRole {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			username, _ := claims["sub"].(string)
			ctx := context.WithValue(r.Context(), adminContextKey{}, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminUsername возвращает имя администратора из контекста
func GetAdminUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(adminContextKey{}).(string)
	return username, ok
}
