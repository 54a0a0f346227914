package http

import (
	"errors"
	"net/http"

	"receipts/internal/core"
	applog "receipts/internal/log"
	"receipts/internal/report"
	"receipts/internal/store"
)

type entryJSON struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

func toJSON(entries []core.Entry) []entryJSON {
	out := make([]entryJSON, len(entries))
	for i, e := range entries {
		out[i] = entryJSON{ID: e.ID, Type: e.Type, Date: e.Date.ISO(), Amount: e.Amount.String()}
	}
	return out
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entries": toJSON(s.entries.List(r.Context()))})
}

func (s *Server) handleCreateEntries(w http.ResponseWriter, r *http.Request) {
	req, err := ParseAddRequest(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	created, err := s.entries.Add(r.Context(), req)
	switch {
	case errors.Is(err, core.ErrValidation):
		s.fail(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, store.ErrDuplicateID):
		s.fail(w, r, http.StatusConflict, "Entry already exists")
		return
	case err != nil:
		applog.FromContext(r.Context()).LogError(r.Context(), "Failed to add entries", err, applog.OpAppend,
			applog.NewFields().WithEntry(req.Type, req.Date, req.Amount, req.Quantity))
		s.fail(w, r, http.StatusInternalServerError, "Error saving entries")
		return
	}

	if !isHTMX(r) {
		writeJSON(w, http.StatusCreated, map[string]any{"entries": toJSON(created)})
		return
	}
	NewHTMXResponse().
		Status(http.StatusCreated).
		TriggerEntriesChanged(len(s.entries.List(r.Context()))).
		TriggerSuccessNotification("Added " + report.Pluralize(len(created), created[0].Type)).
		Write(w)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := s.entries.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.fail(w, r, http.StatusNotFound, "Entry not found")
		return
	}
	if err != nil {
		applog.FromContext(r.Context()).LogError(r.Context(), "Failed to delete entry", err, applog.OpDelete,
			applog.LogFields{applog.FieldEntryID: id})
		s.fail(w, r, http.StatusInternalServerError, "Error deleting entry")
		return
	}

	if isHTMX(r) {
		// htmx only swaps 2xx bodies; 200 with an empty body removes the row.
		NewHTMXResponse().TriggerEntriesChanged(len(s.entries.List(r.Context()))).Write(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail writes an error as an htmx fragment or as JSON depending on the caller.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	if isHTMX(r) {
		ErrorResponse(status, message).Write(w)
		return
	}
	writeJSON(w, status, map[string]string{"error": message})
}
