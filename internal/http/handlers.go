package http

import (
	"bytes"
	"net/http"
	"time"

	"receipts/internal/core"
	applog "receipts/internal/log"
	"receipts/internal/prefs"
	"receipts/internal/report"
)

type entryRow struct {
	ID     string
	Date   string
	Type   string
	Amount string
}

type receiptView struct {
	Greeting string
	From     string
	To       string
	Days     []report.Day
	Total    string
}

type pageData struct {
	Dark     bool
	Defaults FormDefaults
	Rows     []entryRow
	Receipt  *receiptView
	Query    string
	Sharing  bool
}

func (s *Server) rows(entries []core.Entry) []entryRow {
	f := s.entries.Formatter()
	out := make([]entryRow, len(entries))
	for i, e := range entries {
		out[i] = entryRow{ID: e.ID, Date: e.Date.ISO(), Type: e.Type, Amount: f.Money(e.Amount)}
	}
	return out
}

// buildReceiptView returns nil when there is nothing to report.
func (s *Server) buildReceiptView(r *http.Request) *receiptView {
	rep, ok := s.entries.Receipt(r.Context())
	if !ok {
		return nil
	}
	rc := ParseRecipients(r.URL.Query())
	return &receiptView{
		Greeting: report.Greeting,
		From:     rc.From,
		To:       rc.To,
		Days:     rep.Days,
		Total:    rep.TotalText,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	scope := sessionScope(w, r)
	dark, err := prefs.LoadDarkMode(r.Context(), s.prefs, scope, prefersDark(r))
	if err != nil {
		applog.FromContext(r.Context()).LogError(r.Context(), "Failed to load theme", err, applog.OpList,
			applog.NewFields().WithComponent(applog.ComponentPrefs))
	}

	data := pageData{
		Dark:     dark,
		Defaults: s.defaults,
		Rows:     s.rows(s.entries.List(r.Context())),
		Receipt:  s.buildReceiptView(r),
		Query:    r.URL.RawQuery,
		Sharing:  s.sharing,
	}
	s.render(w, r, "index.html", data)
}

func (s *Server) handleEntriesPartial(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "entries", s.rows(s.entries.List(r.Context())))
}

func (s *Server) handleReceiptPartial(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "receipt", s.buildReceiptView(r))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		InternalServerError("templates not loaded").Write(w)
		return
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		applog.FromContext(r.Context()).LogError(r.Context(), "Template render failed", err, applog.OpRender,
			applog.NewFields().WithComponent(applog.ComponentHTTP))
		InternalServerError("render failed").Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status, code := "ready", http.StatusOK
	checks := map[string]string{"templates": "ok", "prefs": "ok"}
	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	if _, _, err := s.prefs.Get(r.Context(), "readyz", prefs.KeyDarkMode); err != nil {
		checks["prefs"] = "failed: " + err.Error()
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{"status": status, "checks": checks})
}
