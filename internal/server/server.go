// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the page shift over HTTP. Documents travel in the
// request and response bodies; nothing is written to disk.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/bindshift/internal/form"
	"github.com/pdiddy/bindshift/internal/history"
	"github.com/pdiddy/bindshift/internal/shift"
	"github.com/pdiddy/bindshift/pkg/types"
)

const (
	defaultAddr           = ":8080"
	defaultMaxUploadBytes = 64 << 20
	defaultTimeout        = 60 * time.Second
	shutdownTimeout       = 10 * time.Second
)

// Server serves the shift endpoint.
type Server struct {
	cfg      types.ServerConfig
	logger   *log.Logger
	recorder history.Recorder
	router   chi.Router
}

// New builds a Server. rec may be nil to skip recording runs.
func New(cfg types.ServerConfig, logger *log.Logger, rec history.Recorder) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultTimeout
	}

	s := &Server{cfg: cfg, logger: logger, recorder: rec}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/shift", s.handleShift)
	})
	s.router = r

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

// handleShift reads a PDF body and responds with the shifted document.
// Query parameters mirror the form fields: shift_cm, start, end,
// first_right and an optional filename used for the download name.
func (s *Server) handleShift(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spec, err := specFromQuery(q.Get("shift_cm"), q.Get("start"), q.Get("end"), q.Get("first_right"))
	if err != nil {
		http.Error(w, form.Message(err), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("document exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, form.StatusFailed(err), http.StatusBadRequest)
		return
	}

	name := q.Get("filename")
	if name == "" {
		name = "document.pdf"
	}

	started := time.Now()
	var out bytes.Buffer
	res, err := shift.Transform(bytes.NewReader(data), &out, spec)
	s.record(r.Context(), name, spec, started, res, err)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, shift.ErrRead) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, form.StatusFailed(err), status)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Length", strconv.Itoa(out.Len()))
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", form.DefaultOutput(name)))
	h.Set("X-Pages", strconv.Itoa(res.Pages))
	h.Set("X-Shifted", strconv.Itoa(res.Shifted()))
	w.WriteHeader(http.StatusOK)
	out.WriteTo(w)
}

// specFromQuery parses the query values with the form's rules. Empty values
// take the form defaults.
func specFromQuery(shiftCM, start, end, firstRight string) (types.ShiftSpec, error) {
	f := form.NewFields()
	if shiftCM != "" {
		f.Shift = shiftCM
	}
	if start != "" {
		f.Start = start
	}
	f.End = end
	if firstRight != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(firstRight))
		if err != nil {
			return types.ShiftSpec{}, fmt.Errorf("%w: first_right %q", form.ErrInvalidParams, firstRight)
		}
		f.FirstRight = b
	}
	return f.Spec()
}

func (s *Server) record(ctx context.Context, name string, spec types.ShiftSpec, started time.Time, res shift.Result, err error) {
	if s.recorder == nil {
		return
	}
	run := types.Run{
		Source:    "http",
		StartedAt: started,
		Duration:  time.Since(started),
		Input:     name,
		Output:    form.DefaultOutput(name),
		Spec:      spec,
		Pages:     res.Pages,
		Shifted:   res.Shifted(),
		Status:    types.RunDone,
	}
	if err != nil {
		run.Status = types.RunFailed
		run.Message = err.Error()
	}
	if _, err := s.recorder.Record(ctx, run); err != nil {
		s.logger.Warn("could not record run", "err", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
