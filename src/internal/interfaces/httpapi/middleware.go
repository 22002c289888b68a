package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jackyeh168/giftcard_pos/src/internal/application/auth"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/staff"
)

type sessionKey struct{}

// sessionHolder lets the request logger, which runs outside the
// authenticate middleware, see who made the request.
type sessionHolder struct {
	session *auth.Session
}

type sessionHolderKey struct{}

// SessionFrom returns the session attached by the authenticate
// middleware, or nil.
func SessionFrom(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionKey{}).(*auth.Session)
	return session
}

func withSession(ctx context.Context, session *auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// requestLogger logs one line per request once the response is written.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			holder := &sessionHolder{}
			r = r.WithContext(context.WithValue(r.Context(), sessionHolderKey{}, holder))
			start := time.Now()
			defer func() {
				fields := []zap.Field{
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("elapsed", time.Since(start)),
				}
				if holder.session != nil {
					fields = append(fields, zap.String("staff_id", holder.session.StaffID))
				}
				log.Info("http request", fields...)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// requestTimeout bounds the store work of a request. A request whose
// deadline passes is rolled back and answered with 503.
func requestTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate resolves the bearer token into a session. Requests without
// a valid session are rejected with 401.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			h.writeError(w, r, staff.ErrAccessDenied)
			return
		}
		session, err := h.gate.ParseSession(r.Context(), token)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if holder, ok := r.Context().Value(sessionHolderKey{}).(*sessionHolder); ok {
			holder.session = session
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
	})
}

// requireRole rejects sessions whose role does not satisfy role.
func (h *Handler) requireRole(role staff.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := auth.RequireRole(SessionFrom(r.Context()), role); err != nil {
				h.writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
