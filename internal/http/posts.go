package httpx

import (
	"net/http"
	"strings"

	"blog/internal/auth"
	"blog/internal/blog"
	"blog/internal/store"
	"blog/internal/util"
)

type postRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Image   *string `json:"image"`
	Tags    *string `json:"tags"`
}

func (req postRequest) input() blog.PostInput {
	return blog.PostInput{Title: req.Title, Content: req.Content, Image: req.Image, Tags: req.Tags}
}

func (s *Server) handlePostList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	posts, err := s.Blog.ListPosts(r.Context(), store.PostFilter{
		Search: q.Get("search"),
		Tag:    strings.TrimSpace(q.Get("tag")),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	util.JSON(w, http.StatusOK, newPostViews(posts))
}

func (s *Server) handlePopularPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.Blog.ListPosts(r.Context(), store.PostFilter{Popular: true})
	if err != nil {
		writeError(w, r, err)
		return
	}
	util.JSON(w, http.StatusOK, newPostViews(posts))
}

func (s *Server) handlePostCreate(w http.ResponseWriter, r *http.Request) {
	who, _ := auth.PrincipalFrom(r.Context())
	var req postRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	p, err := s.Blog.CreatePost(r.Context(), who, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	util.JSON(w, http.StatusCreated, newPostView(p))
}

func (s *Server) handlePostGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.Blog.Post(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	util.JSON(w, http.StatusOK, newPostView(p))
}

func (s *Server) handlePostUpdate(w http.ResponseWriter, r *http.Request) {
	who, _ := auth.PrincipalFrom(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req postRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	p, err := s.Blog.UpdatePost(r.Context(), who, id, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	util.JSON(w, http.StatusOK, newPostView(p))
}

func (s *Server) handlePostDelete(w http.ResponseWriter, r *http.Request) {
	who, _ := auth.PrincipalFrom(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Blog.DeletePost(r.Context(), who, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
