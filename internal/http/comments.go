package httpx

import (
	"net/http"

	"blog/internal/auth"
	"blog/internal/blog"
	"blog/internal/util"
)

type commentRequest struct {
	Post    int64  `json:"post"`
	Parent  *int64 `json:"parent"`
	Content string `json:"content"`
}

func (s *Server) handleCommentList(w http.ResponseWriter, r *http.Request) {
	cs, err := s.Blog.ListComments(r.Context(), 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	util.JSON(w, http.StatusOK, newCommentViews(cs))
}

// handlePostComments lists the top-level comments of ?post=.
func (s *Server) handlePostComments(w http.ResponseWriter, r *http.Request) {
	postID, err := queryID(r, "post")
	if err != nil {
		writeError(w, r, err)
		return
	}
	cs, err := s.Blog.ListComments(r.Context(), postID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	util.JSON(w, http.StatusOK, newCommentViews(cs))
}

func (s *Server) handleCommentCreate(w http.ResponseWriter, r *http.Request) {
	who, _ := auth.PrincipalFrom(r.Context())
	var req commentRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	c, err := s.Blog.CreateComment(r.Context(), who, blog.CommentInput{
		PostID:   req.Post,
		ParentID: req.Parent,
		Content:  req.Content,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	util.JSON(w, http.StatusCreated, newCommentView(c))
}

func (s *Server) handleCommentGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := s.Blog.Comment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	util.JSON(w, http.StatusOK, newCommentView(c))
}

// handleCommentUpdate only honours content; post and parent are ignored.
func (s *Server) handleCommentUpdate(w http.ResponseWriter, r *http.Request) {
	who, _ := auth.PrincipalFrom(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req commentRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	c, err := s.Blog.UpdateComment(r.Context(), who, id, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	util.JSON(w, http.StatusOK, newCommentView(c))
}

func (s *Server) handleCommentDelete(w http.ResponseWriter, r *http.Request) {
	who, _ := auth.PrincipalFrom(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Blog.DeleteComment(r.Context(), who, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
