package httpx

import (
	"net/http"

	"blog/internal/auth"
	"blog/internal/blog"
	"blog/internal/util"
)

// handleVote answers with the ledger message as a JSON string.
func (s *Server) handleVote(action blog.VoteAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, _ := auth.PrincipalFrom(r.Context())
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		msg, err := s.Blog.Vote(r.Context(), who, id, action)
		if err != nil {
			writeError(w, r, err)
			return
		}
		util.JSON(w, http.StatusOK, msg)
	}
}

func (s *Server) handleVoteList(w http.ResponseWriter, r *http.Request) {
	postID, err := queryID(r, "post")
	if err != nil {
		writeError(w, r, err)
		return
	}
	votes, err := s.Blog.ListVotes(r.Context(), postID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]voteView, 0, len(votes))
	for _, v := range votes {
		out = append(out, newVoteView(v))
	}
	util.JSON(w, http.StatusOK, out)
}
