package http

import (
	"net/http"

	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/internal/utils"
	"github.com/guanggu/icollege/models"
)

type usersResponse struct {
	Users []models.User `json:"users"`
}

// listUsers returns the users whose name contains the "name" query
// parameter. Without the parameter every user is returned.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if requester, ok := utils.GetUserIDFromContext(r.Context()); ok {
		logger.FromRequest(r).Debug().Str("requester", requester).Str("name", name).Msg("listing users")
	}

	users, err := h.services.UserService.FindByName(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, usersResponse{Users: users}, http.StatusOK)
}
