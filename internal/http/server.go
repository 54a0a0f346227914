package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	applog "receipts/internal/log"
	"receipts/internal/prefs"
	"receipts/internal/services"
	appweb "receipts/web"
)

// FormDefaults pre-fill the add form.
type FormDefaults struct {
	Type     string
	Amount   string
	Quantity int
}

type Options struct {
	Defaults           FormDefaults
	RateLimitPerMinute int
	SharingEnabled     bool
	Logger             *applog.Logger
}

type Server struct {
	http.Server
	templates   *template.Template
	entries     *services.EntryService
	prefs       prefs.Store
	rateLimiter *rateLimiter
	defaults    FormDefaults
	sharing     bool
	logger      *applog.Logger
	started     time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, entries *services.EntryService, prefStore prefs.Store, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	defaults := opts.Defaults
	if defaults.Quantity < 1 {
		defaults.Quantity = 1
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:           addr,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		entries:     entries,
		prefs:       prefStore,
		rateLimiter: newRateLimiter(opts.RateLimitPerMinute),
		defaults:    defaults,
		sharing:     opts.SharingEnabled,
		logger:      logger.WithComponent(applog.ComponentHTTP),
		started:     time.Now(),
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /entries", s.handleListEntries)
	mux.HandleFunc("POST /entries", s.handleCreateEntries)
	mux.HandleFunc("DELETE /entries/{id}", s.handleDeleteEntry)

	mux.HandleFunc("GET /receipt", s.handleReceiptText)
	mux.HandleFunc("GET /receipt.json", s.handleReceiptJSON)
	mux.HandleFunc("POST /receipt/share", s.handleShareReceipt)

	mux.HandleFunc("GET /preferences/theme", s.handleGetTheme)
	mux.HandleFunc("POST /preferences/theme/toggle", s.handleToggleTheme)

	// UI partials
	mux.HandleFunc("GET /ui/entries", s.handleEntriesPartial)
	mux.HandleFunc("GET /ui/receipt", s.handleReceiptPartial)

	var h http.Handler = s.withRequestLogging(mux)
	h = applog.RequestIDMiddleware(requestID)(h)
	h = withRequestID(h)
	s.Handler = applog.Middleware(s.logger)(h)
	return s
}

// withRequestID keeps a well-formed client X-Request-ID or assigns a new
// one, and echoes it on the response.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if !validRequestID(id) {
			id = generateRequestID()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func requestID(r *http.Request) string {
	return r.Header.Get(requestIDHeader)
}

// withRequestLogging adds security headers and rate limiting of mutating
// requests, and logs each request on completion.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		logger := applog.FromContext(r.Context())

		setSecurityHeaders(w.Header())

		if r.Method != http.MethodGet && r.Method != http.MethodHead && !s.rateLimiter.allow(clientIP) {
			logger.WarnContext(r.Context(), "Rate limit exceeded", applog.FieldClientIP, clientIP, applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		fields := applog.NewFields().
			WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("User-Agent")).
			WithHTTPResponse(rw.statusCode, time.Since(start).Milliseconds()).
			WithClientIP(clientIP)
		switch {
		case rw.statusCode >= 500:
			logger.ErrorContext(r.Context(), "Request completed", fields.ToSlice()...)
		case rw.statusCode >= 400:
			logger.WarnContext(r.Context(), "Request completed", fields.ToSlice()...)
		default:
			logger.InfoContext(r.Context(), "Request completed", fields.ToSlice()...)
		}
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
