package http

import (
	"errors"
	"net/http"

	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/internal/service"
	"github.com/guanggu/icollege/internal/store"
	"github.com/guanggu/icollege/internal/utils"
)

type errorStatus struct {
	status    int
	errorType string
	message   string
}

// errorStatusMap is consulted in order; the first match wins.
var errorStatusMap = []struct {
	target error
	errorStatus
}{
	{ErrUnsupportedGrantType, errorStatus{http.StatusBadRequest, errorTypeBadRequest, "Unsupported grant type"}},
	{ErrMalformedTokenRequest, errorStatus{http.StatusBadRequest, errorTypeBadRequest, "Malformed token request"}},
	{service.ErrInvalidDataProvided, errorStatus{http.StatusBadRequest, errorTypeBadRequest, "Both username and password are required"}},
	{service.ErrUnknownClient, errorStatus{http.StatusUnauthorized, errorTypeUnauthorized, "Invalid client"}},
	{service.ErrWrongPassword, errorStatus{http.StatusUnauthorized, errorTypeUnauthorized, "Invalid username or password"}},
	{store.ErrNoUserWasFound, errorStatus{http.StatusUnauthorized, errorTypeUnauthorized, "Invalid username or password"}},
	{service.ErrTokenIsExpiredOrInvalid, errorStatus{http.StatusUnauthorized, errorTypeUnauthorized, "Access token is expired or invalid"}},
	{ErrEmptyAuthorizationHeader, errorStatus{http.StatusUnauthorized, errorTypeUnauthorized, "Access denied"}},
	{utils.ErrInvalidBearerToken, errorStatus{http.StatusUnauthorized, errorTypeUnauthorized, "Access denied"}},
}

func statusFromError(err error) errorStatus {
	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.target) {
			return entry.errorStatus
		}
	}
	return errorStatus{http.StatusInternalServerError, errorTypeInternalServer, http.StatusText(http.StatusInternalServerError)}
}

// writeServiceError logs err and answers with the status it maps to.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	s := statusFromError(err)

	log := logger.FromRequest(r)
	if s.status >= http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", s.status).Msg("request rejected")
	}

	utils.WriteError(w, s.status, s.errorType, s.message)
}
