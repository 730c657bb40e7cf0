package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/mentorhub/MH-SessionService/internal/api/handlers"
)

const msgInvalidSweepToken = "некорректный токен планировщика"

// SweepAuth защищает внутренние эндпоинты планировщика общим секретом
// в заголовке Authorization: Bearer <token>
func SweepAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			provided, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				handlers.RespondUnauthorized(w, msgInvalidSweepToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
