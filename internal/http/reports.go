package httpx

import (
	"net/http"

	"blog/internal/auth"
	"blog/internal/blog"
	"blog/internal/models"
	"blog/internal/util"
)

type reportRequest struct {
	Post   int64  `json:"post"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

func (s *Server) handleReportList(w http.ResponseWriter, r *http.Request) {
	who, _ := auth.PrincipalFrom(r.Context())
	reports, err := s.Blog.ListReports(r.Context(), who)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]reportView, 0, len(reports))
	for _, rep := range reports {
		out = append(out, newReportView(rep))
	}
	util.JSON(w, http.StatusOK, out)
}

func (s *Server) handleReportCreate(w http.ResponseWriter, r *http.Request) {
	who, _ := auth.PrincipalFrom(r.Context())
	var req reportRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	rep, err := s.Blog.FileReport(r.Context(), who, blog.ReportInput{PostID: req.Post, Type: models.ReportType(req.Type)})
	if err != nil {
		writeError(w, r, err)
		return
	}
	util.JSON(w, http.StatusCreated, newReportView(rep))
}

func (s *Server) handleReportGet(w http.ResponseWriter, r *http.Request) {
	who, _ := auth.PrincipalFrom(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rep, err := s.Blog.Report(r.Context(), who, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	util.JSON(w, http.StatusOK, newReportView(rep))
}

// handleReportUpdate lets the reporter change the type of a pending report.
func (s *Server) handleReportUpdate(w http.ResponseWriter, r *http.Request) {
	who, _ := auth.PrincipalFrom(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req reportRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	if req.Type == "" {
		rep, err := s.Blog.Report(r.Context(), who, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		util.JSON(w, http.StatusOK, newReportView(rep))
		return
	}
	rep, err := s.Blog.UpdateReportType(r.Context(), who, id, models.ReportType(req.Type))
	if err != nil {
		writeError(w, r, err)
		return
	}
	util.JSON(w, http.StatusOK, newReportView(rep))
}

func (s *Server) handleReportDelete(w http.ResponseWriter, r *http.Request) {
	who, _ := auth.PrincipalFrom(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Blog.DeleteReport(r.Context(), who, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReview answers with the resulting status as a JSON string.
func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	who, _ := auth.PrincipalFrom(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req reportRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	status, err := s.Blog.ReviewReport(r.Context(), who, id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	util.JSON(w, http.StatusOK, string(status))
}
