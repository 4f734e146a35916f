package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/logger"
	"communityhub-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// badRequestErrs are expected validation failures: rejected before any
// mutation, surfaced with their message, never logged as exceptional.
var badRequestErrs = []error{
	service.ErrDuplicateSlug,
	service.ErrInvalidCommunityType,
	service.ErrInviteExpired,
	service.ErrInviteUsed,
	service.ErrTargetNotMember,
	service.ErrTargetNotModerator,
	service.ErrRegistrationRequired,
	service.ErrTagNotInCommunity,
	service.ErrSearchTermTooShort,
	service.ErrCommentWrongPost,
}

var forbiddenErrs = []error{
	domain.ErrForbidden,
	service.ErrNotAMember,
	service.ErrAdminOnlyPosting,
}

// writeError maps service errors onto the HTTP taxonomy. Anything not
// recognized is a storage or programming failure: logged with context and
// surfaced as a generic 500 with no internal detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case matchAny(err, forbiddenErrs):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case matchAny(err, badRequestErrs):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logger.Error("Internal error", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func matchAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
