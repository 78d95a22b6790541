package middleware

import (
	"net/http"
	"strings"

	"github.com/verdantcare/dispensary-backend/pkg/enums"
	"github.com/verdantcare/dispensary-backend/pkg/logger"
)

const roleHeader = "X-Actor-Role"

// Session resolves the caller's role from the role header and attaches it to
// the request context. Missing or unknown values default to staff.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := enums.RoleStaff
			if raw := strings.TrimSpace(r.Header.Get(roleHeader)); raw != "" {
				if parsed, err := enums.ParseRole(raw); err == nil {
					role = parsed
				}
			}

			ctx := WithRole(r.Context(), role.String())
			if logg != nil {
				ctx = logg.WithRole(ctx, role.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
