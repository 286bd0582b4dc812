// Package server exposes the status report over HTTP.
//
// A single endpoint, POST /ajax, mirrors an asynchronous admin request:
// the form field "action" must match the configured action and "output"
// selects HTML or JSON. Responses use the envelope
// {"success": bool, "data": ...}.
package server

import (
	"context"
	"encoding/json"
	"html"
	"log/slog"
	"net/http"
	"time"

	"github.com/griffithind/sysstatus/internal/collect"
	"github.com/griffithind/sysstatus/internal/config"
	"github.com/griffithind/sysstatus/internal/errors"
	"github.com/griffithind/sysstatus/internal/parse"
	"github.com/griffithind/sysstatus/internal/render"
	"github.com/griffithind/sysstatus/internal/report"
)

const (
	// AjaxPath is the status endpoint.
	AjaxPath = "/ajax"

	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Response is the JSON envelope of every endpoint reply.
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorData is the payload of a failed Response.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server serves status reports.
type Server struct {
	cfg     *config.Config
	host    collect.HostSource
	logger  *slog.Logger
	handler http.Handler
}

// New creates a server for cfg. host may be nil to read the running
// system.
func New(cfg *config.Config, host collect.HostSource, logger *slog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		host:   host,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc(AjaxPath, s.ajaxHandler)

	// Order: Logging -> Gzip -> Security -> Mux
	var handler http.Handler = mux
	handler = SecurityHeadersMiddleware(handler)
	handler = GzipMiddleware(handler)
	handler = LoggingMiddleware(logger, handler)
	s.handler = handler

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "action", s.cfg.Action)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) ajaxHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, http.StatusMethodNotAllowed,
			errors.Newf(errors.CategoryServer, errors.CodeServerMethod, "method %s not allowed", r.Method))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest,
			errors.Wrap(err, errors.CategoryServer, errors.CodeServerRequest, "failed to parse form"))
		return
	}

	if action := r.PostForm.Get("action"); action != s.cfg.Action {
		s.writeError(w, http.StatusBadRequest,
			errors.Newf(errors.CategoryServer, errors.CodeServerAction, "unknown action %q", action))
		return
	}

	client := collect.Client{UserAgent: r.UserAgent(), RemoteAddr: r.RemoteAddr}
	rep, err := collect.NewFromConfig(s.cfg, client, s.host).
		WithLogger(s.logger).
		Build(r.Context())
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	pretty := parse.BoolString(r.PostForm.Get("pretty")) == "true"
	out, err := s.printable(r.PostForm.Get("output"), rep, pretty)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, Response{Success: true, Data: out})
}

// printable renders rep as HTML when output is "html" and as JSON
// otherwise. HTML tables and pretty JSON (wrapped in <pre>) are embedded
// in a page, so their keys and values are escaped first.
func (s *Server) printable(output string, rep *report.Section, pretty bool) (string, error) {
	opts := s.cfg.WalkOptions()
	format := render.FormatJSON
	if output == string(render.FormatHTML) {
		format = render.FormatHTML
	}

	if format == render.FormatHTML || pretty {
		escaped, err := report.Escape(rep, html.EscapeString, opts...)
		if err != nil {
			return "", err
		}
		rep = escaped
	}
	return render.Printable(format, rep, pretty, opts...)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.CodeInternal
	}
	message := err.Error()
	if se, ok := errors.AsStatusError(err); ok {
		message = se.Message
	}

	s.logger.Warn("request failed", "status", status, "code", code, "error", err)
	s.writeJSON(w, status, Response{
		Success: false,
		Data:    ErrorData{Code: code, Message: message},
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}
