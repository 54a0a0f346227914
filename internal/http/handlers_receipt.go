package http

import (
	"errors"
	"net/http"

	applog "receipts/internal/log"
	"receipts/internal/services"
)

// handleReceiptText serves the copyable plain-text receipt. No entries means
// no receipt at all, not an empty total.
func (s *Server) handleReceiptText(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.entries.Receipt(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(rep.Text(ParseRecipients(r.URL.Query()))))
}

func (s *Server) handleReceiptJSON(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.entries.Receipt(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleShareReceipt(w http.ResponseWriter, r *http.Request) {
	err := s.entries.Share(r.Context(), ParseRecipients(r.URL.Query()))
	switch {
	case errors.Is(err, services.ErrSharingDisabled):
		s.fail(w, r, http.StatusServiceUnavailable, "Sharing is not configured")
	case errors.Is(err, services.ErrNothingToShare):
		s.fail(w, r, http.StatusConflict, "Nothing to share yet")
	case err != nil:
		applog.FromContext(r.Context()).LogError(r.Context(), "Failed to share receipt", err, applog.OpShare, nil)
		s.fail(w, r, http.StatusBadGateway, "Could not send the receipt")
	case isHTMX(r):
		NewHTMXResponse().Status(http.StatusAccepted).TriggerSuccessNotification("Receipt sent").Write(w)
	default:
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
	}
}
