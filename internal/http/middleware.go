package httpx

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"blog/internal/auth"
	"blog/internal/blog"
)

const (
	CookieName      = "session_id"
	RequestIDHeader = "X-Request-ID"
)

// sessionToken returns the session id from "Authorization: Token <id>" or
// the session cookie.
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Token "); ok {
			return strings.TrimSpace(tok)
		}
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

func (s *Server) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sid := sessionToken(r); sid != "" {
			p, err := auth.PrincipalFromSession(r.Context(), s.Store, sid)
			switch {
			case err == nil:
				r = r.WithContext(auth.WithPrincipal(r.Context(), p))
			case errors.Is(err, auth.ErrNoSession):
				log.Printf("session FAIL sid=%s", sid)
			default:
				log.Printf("session lookup sid=%s: %v", sid, err)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.PrincipalFrom(r.Context()); !ok {
			writeError(w, r, blog.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ----------------------------
// Access log
// ----------------------------

type statusRW struct {
	http.ResponseWriter
	status int
}

func (w *statusRW) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// WithAccessLog tags the request with an id and logs METHOD PATH -> STATUS.
func WithAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rid := r.Header.Get(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, rid)

		sw := &statusRW{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.Printf("rid=%s %s %s -> %d (%s)", rid, r.Method, r.URL.Path, sw.status, time.Since(start).Truncate(time.Millisecond))
	})
}

func WithTimeout(next http.Handler, d time.Duration) http.Handler {
	if d <= 0 {
		d = 5 * time.Second
	}
	return http.TimeoutHandler(next, d, `{"detail":"request timeout"}`)
}

func WithSecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
