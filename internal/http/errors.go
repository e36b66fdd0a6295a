package httpx

import (
	"errors"
	"log"
	"net/http"

	"blog/internal/auth"
	"blog/internal/blog"
	"blog/internal/util"
)

type detail struct {
	Detail string `json:"detail"`
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps service errors onto status codes and bodies.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *blog.ValidationError
		cerr *blog.ConflictError
		cred *auth.CredentialError
	)
	switch {
	case errors.As(err, &verr):
		util.JSON(w, http.StatusBadRequest, verr.Fields)
	case errors.As(err, &cerr):
		util.JSON(w, http.StatusBadRequest, errorBody{cerr.Message})
	case errors.As(err, &cred):
		util.JSON(w, http.StatusBadRequest, map[string]string{cred.Field: cred.Msg})
	case errors.Is(err, auth.ErrEmailTaken):
		util.JSON(w, http.StatusBadRequest, map[string]string{"email": "A user with that email already exists."})
	case errors.Is(err, auth.ErrUsernameTaken):
		util.JSON(w, http.StatusBadRequest, map[string]string{"username": "A user with that username already exists."})
	case errors.Is(err, auth.ErrInvalidLogin):
		util.JSON(w, http.StatusBadRequest, errorBody{"Unable to log in with provided credentials."})
	case errors.Is(err, blog.ErrNotFound):
		util.JSON(w, http.StatusNotFound, detail{"Not found."})
	case errors.Is(err, blog.ErrForbidden):
		util.JSON(w, http.StatusForbidden, detail{"You do not have permission to perform this action."})
	case errors.Is(err, blog.ErrUnauthenticated):
		util.JSON(w, http.StatusUnauthorized, detail{"Authentication credentials were not provided."})
	default:
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		util.JSON(w, http.StatusInternalServerError, detail{"Internal server error."})
	}
}

func badJSON(w http.ResponseWriter, err error) {
	util.JSON(w, http.StatusBadRequest, detail{err.Error()})
}
