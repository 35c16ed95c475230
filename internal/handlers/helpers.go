package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"yoyo-backend/internal/middleware"
)

// pathID extracts the {id} route variable.
func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// actor returns the acting user's id and name from the request context, for
// activity log attribution.
func actor(r *http.Request) (*int, string) {
	id, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return nil, "system"
	}
	name, _ := middleware.GetUserNameFromContext(r.Context())
	return &id, name
}
