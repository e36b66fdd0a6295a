package httpx

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"blog/internal/app"
	"blog/internal/blog"
	"blog/internal/store"
	"blog/internal/util"
)

type Server struct {
	Store *store.Store
	Blog  *blog.Service
	Cfg   app.Config
	Mux   *http.ServeMux

	handler http.Handler
}

func NewServer(st *store.Store, cfg app.Config) *Server {
	s := &Server{Store: st, Blog: blog.New(st), Cfg: cfg, Mux: http.NewServeMux()}

	authed := func(h http.HandlerFunc) http.Handler { return s.requireAuth(h) }

	// routes
	s.Mux.HandleFunc("GET /healthz", s.handleHealth)

	s.Mux.HandleFunc("POST /api/register", s.handleRegister)
	s.Mux.HandleFunc("POST /api/login", s.handleLogin)
	s.Mux.Handle("POST /api/logout", authed(s.handleLogout))
	s.Mux.Handle("GET /api/users", authed(s.handleUserList))
	s.Mux.Handle("GET /api/users/{id}", authed(s.handleUserGet))

	s.Mux.Handle("GET /api/posts", authed(s.handlePostList))
	s.Mux.Handle("POST /api/posts", authed(s.handlePostCreate))
	s.Mux.Handle("GET /api/popular-posts", authed(s.handlePopularPosts))
	s.Mux.Handle("GET /api/posts/{id}", authed(s.handlePostGet))
	s.Mux.Handle("PUT /api/posts/{id}", authed(s.handlePostUpdate))
	s.Mux.Handle("PATCH /api/posts/{id}", authed(s.handlePostUpdate))
	s.Mux.Handle("DELETE /api/posts/{id}", authed(s.handlePostDelete))
	s.Mux.Handle("POST /api/posts/{id}/upvote", authed(s.handleVote(blog.Upvote)))
	s.Mux.Handle("POST /api/posts/{id}/downvote", authed(s.handleVote(blog.Downvote)))
	s.Mux.Handle("POST /api/posts/{id}/unvote", authed(s.handleVote(blog.Unvote)))
	s.Mux.Handle("GET /api/votes", authed(s.handleVoteList))

	s.Mux.Handle("GET /api/comment", authed(s.handleCommentList))
	s.Mux.Handle("POST /api/comment", authed(s.handleCommentCreate))
	s.Mux.Handle("GET /api/comment/{id}", authed(s.handleCommentGet))
	s.Mux.Handle("PUT /api/comment/{id}", authed(s.handleCommentUpdate))
	s.Mux.Handle("PATCH /api/comment/{id}", authed(s.handleCommentUpdate))
	s.Mux.Handle("DELETE /api/comment/{id}", authed(s.handleCommentDelete))
	s.Mux.Handle("GET /api/post_comment", authed(s.handlePostComments))

	s.Mux.Handle("GET /api/reports", authed(s.handleReportList))
	s.Mux.Handle("POST /api/reports", authed(s.handleReportCreate))
	s.Mux.Handle("GET /api/reports/{id}", authed(s.handleReportGet))
	s.Mux.Handle("PUT /api/reports/{id}", authed(s.handleReportUpdate))
	s.Mux.Handle("PATCH /api/reports/{id}", authed(s.handleReportUpdate))
	s.Mux.Handle("DELETE /api/reports/{id}", authed(s.handleReportDelete))
	s.Mux.Handle("PUT /api/review_reports/{id}", authed(s.handleReview))
	s.Mux.Handle("PATCH /api/review_reports/{id}", authed(s.handleReview))

	// middleware, innermost first
	var h http.Handler = s.Mux
	h = s.withIdentity(h)
	h = WithTimeout(h, cfg.RequestTimeout)
	h = WithSecureHeaders(h)
	s.handler = WithAccessLog(h)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.handler.ServeHTTP(w, r) }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.Store.Ping(ctx); err != nil {
		util.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	util.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID parses the {id} wildcard. Malformed ids are reported as not found.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, blog.ErrNotFound
	}
	return id, nil
}

// queryID parses an optional numeric query parameter; absent means 0.
func queryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &blog.ValidationError{Fields: map[string]string{name: "A valid integer is required."}}
	}
	return id, nil
}
