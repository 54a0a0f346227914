package http

import (
	"net/http"

	applog "receipts/internal/log"
	"receipts/internal/prefs"
)

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	scope := sessionScope(w, r)
	dark, err := prefs.LoadDarkMode(r.Context(), s.prefs, scope, prefersDark(r))
	if err != nil {
		applog.FromContext(r.Context()).LogError(r.Context(), "Failed to load theme", err, applog.OpList,
			applog.LogFields{applog.FieldScope: scope})
		s.fail(w, r, http.StatusInternalServerError, "Could not load preferences")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"dark": dark})
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	scope := sessionScope(w, r)
	dark, err := prefs.ToggleDarkMode(r.Context(), s.prefs, scope, prefersDark(r))
	if err != nil {
		applog.FromContext(r.Context()).LogError(r.Context(), "Failed to save theme", err, applog.OpAppend,
			applog.LogFields{applog.FieldScope: scope})
		s.fail(w, r, http.StatusInternalServerError, "Could not save preferences")
		return
	}
	if isHTMX(r) {
		NewHTMXResponse().TriggerThemeChanged(dark).Write(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"dark": dark})
}
