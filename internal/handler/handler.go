// Package handler exposes the HTTP surface: registration, login/logout, and
// the role-gated admin account routes. Handlers decode JSON, delegate to the
// services, and map the error taxonomy onto status codes.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/hjhuang/identity-service/internal/apperrors"
	"github.com/hjhuang/identity-service/internal/service"
)

type Handler struct {
	auth  *service.AuthService
	admin *service.AdminService
	log   *logrus.Logger
}

func NewHandler(auth *service.AuthService, admin *service.AdminService, log *logrus.Logger) *Handler {
	return &Handler{auth: auth, admin: admin, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps service errors to responses. Store failures are logged with
// detail and answered with a generic message so internal error text never
// reaches the client.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrDuplicateCredential):
		writeMessage(w, http.StatusConflict, "Username or email already exists")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, apperrors.ErrUnauthenticated):
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, apperrors.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, apperrors.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	default:
		h.log.Errorf("Internal error: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
