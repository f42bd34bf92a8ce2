package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
)

const msgAdminOnly = "доступно только администратору"

// AdminChecker проверяет роль пользователя
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminOnly пропускает только администратора; должен стоять после Auth
func AdminOnly(checker AdminChecker, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			isAdmin, err := checker.IsAdmin(r.Context(), userID)
			if err != nil {
				logger.Error("AdminOnly: failed to check role for user_id=%d: %v", userID, err)
				handlers.RespondInternalError(w)
				return
			}
			if !isAdmin {
				logger.Warn("AdminOnly: access denied for user_id=%d, %s %s", userID, r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
