package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/stateloan/lms-auth/pkg/server/store"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithStoreError maps the store error taxonomy onto HTTP status
// codes and writes the error message as the response body.
func respondWithStoreError(w http.ResponseWriter, err error) {
	var validationErr *store.ValidationError
	var conflictErr *store.ConflictError
	var notFoundErr *store.NotFoundError
	var authnErr *store.AuthenticationError
	var authzErr *store.AuthorizationError

	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &conflictErr):
		respondWithError(w, http.StatusConflict, conflictErr.Message)
	case errors.As(err, &notFoundErr):
		respondWithError(w, http.StatusNotFound, notFoundErr.Message)
	case errors.As(err, &authnErr):
		respondWithError(w, http.StatusBadRequest, authnErr.Message)
	case errors.As(err, &authzErr):
		respondWithError(w, http.StatusForbidden, authzErr.Message)
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

// idVar extracts a numeric path variable. The routes constrain these to
// digits, so failures only happen for out-of-range values.
func idVar(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
