package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/domain"
)

type contextKey string

const roleKey contextKey = "role"

// WithRole resolves the session role from basic-auth credentials and stores
// it on the request context. Missing or wrong credentials mean viewer, not
// a rejection: the read surface stays public.
func (h *Handler) WithRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := domain.RoleViewer
		if user, pass, ok := r.BasicAuth(); ok {
			role = h.resolveRole(user, pass)
		}
		ctx := context.WithValue(r.Context(), roleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) resolveRole(user, pass string) domain.Role {
	if credentialsMatch(user, pass, h.Config.AdminUsername, h.Config.AdminPassword) {
		return domain.RoleAdmin
	}
	if h.Config.EditorUsername != "" && credentialsMatch(user, pass, h.Config.EditorUsername, h.Config.EditorPassword) {
		return domain.RoleEditor
	}
	return domain.RoleViewer
}

func credentialsMatch(user, pass, wantUser, wantPass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(wantUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(wantPass)) == 1
	return userOK && passOK
}

// RoleFromContext returns the resolved session role, defaulting to viewer.
func RoleFromContext(ctx context.Context) domain.Role {
	if role, ok := ctx.Value(roleKey).(domain.Role); ok {
		return role
	}
	return domain.RoleViewer
}

// RequireEditor gates narration uploads: editor or admin.
func (h *Handler) RequireEditor(next http.Handler) http.Handler {
	return h.require(next, func(r domain.Role) bool { return r.CanEdit() })
}

// RequireAdmin gates the admin CRUD surface.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return h.require(next, func(r domain.Role) bool { return r.CanAdmin() })
}

func (h *Handler) require(next http.Handler, allowed func(domain.Role) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowed(RoleFromContext(r.Context())) {
			w.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
