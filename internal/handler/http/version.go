package http

import (
	"net/http"
)

// version answers with the running application version as plain text.
func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	appVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write([]byte(appVersion)); err != nil {
		h.logger.Err(err).Str("func", "*Handler.version").Msg("error writing version")
	}
}
