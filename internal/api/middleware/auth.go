// Package middleware HTTP middleware сервиса: идентификация, метрики,
// request id.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/CDS-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/CDS-DutyRosterService/internal/domain"
)

// Заголовки идентификации, проставляемые API-шлюзом после аутентификации
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingIdentity = "missing identity headers"
	msgInvalidIdentity = "invalid identity headers"
	msgAdminOnly       = "admin role required"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity идентичность вызывающего, проверенная шлюзом
type Identity struct {
	UserID int64
	Role   domain.Role
}

// Auth извлекает идентичность из заголовков и кладет её в контекст запроса
// Запросы без корректных заголовков отклоняются
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		rawRole := r.Header.Get(HeaderUserRole)
		if rawID == "" || rawRole == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingIdentity)
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgInvalidIdentity)
			return
		}

		role := domain.Role(rawRole)
		if !role.IsValid() {
			handlers.RespondError(w, http.StatusUnauthorized, msgInvalidIdentity)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, Identity{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth кладет идентичность в контекст, если заголовки присутствуют
// и корректны; запросы без заголовков проходят анонимно.
// Используется для публичных маршрутов с ролевой проекцией ответа.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		rawRole := r.Header.Get(HeaderUserRole)
		if rawID != "" && rawRole != "" {
			userID, err := strconv.ParseInt(rawID, 10, 64)
			role := domain.Role(rawRole)
			if err == nil && userID > 0 && role.IsValid() {
				ctx := context.WithValue(r.Context(), identityKey, Identity{UserID: userID, Role: role})
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin пропускает только запросы с ролью admin
// Должен стоять после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok || identity.Role != domain.RoleAdmin {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromContext достает идентичность вызывающего из контекста
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
