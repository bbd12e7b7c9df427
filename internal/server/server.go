package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/polishai/polish/internal/ai"
	"github.com/polishai/polish/internal/enhance"
	"github.com/polishai/polish/internal/history"
)

const maxBodyBytes = 64 << 10

// Enhancer is the pipeline surface the server exposes over HTTP.
type Enhancer interface {
	Enhance(ctx context.Context, req enhance.Request) (*enhance.Result, error)
}

type Config struct {
	Addr          string
	RatePerSecond float64
	Burst         int
}

// Server is the HTTP face of the enhancement pipeline.
type Server struct {
	enhancer Enhancer
	store    *history.Store
	limiter  *rate.Limiter
	logger   *zap.Logger
	httpSrv  *http.Server
}

type enhanceRequest struct {
	Text         string `json:"text"`
	Type         string `json:"type"`
	Tone         string `json:"tone"`
	Audience     string `json:"audience"`
	Instructions string `json:"instructions"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// New builds the server. store may be nil to disable run recording.
func New(cfg Config, enhancer Enhancer, store *history.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}

	s := &Server{
		enhancer: enhancer,
		store:    store,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/enhance", s.handleEnhance)

	s.httpSrv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.withRequestLog(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.httpSrv.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)

		s.logger.Info("request handled",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	if !s.limiter.Allow() {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
		return
	}

	var body enhanceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	req := enhance.Request{
		Text:         body.Text,
		Type:         enhance.ParseType(body.Type),
		Tone:         enhance.ParseTone(body.Tone),
		Audience:     body.Audience,
		Instructions: body.Instructions,
	}

	result, err := s.enhancer.Enhance(r.Context(), req)
	if err != nil {
		if !errors.Is(err, enhance.ErrEmptyText) && !errors.Is(err, enhance.ErrTextTooLong) {
			s.logger.Error("enhancement failed", zap.Error(err))
		}
		s.writeError(w, err)
		return
	}

	if s.store != nil {
		if _, err := s.store.Insert(r.Context(), history.RecordOf(req, result)); err != nil {
			s.logger.Warn("failed to record run", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		confErr   *ai.ConfigError
		exhausted *ai.ExhaustedError
		gateway   *ai.GatewayError
	)

	switch {
	case errors.Is(err, enhance.ErrEmptyText), errors.Is(err, enhance.ErrTextTooLong):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &confErr):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error(), Kind: "configuration_error"})
	case errors.As(err, &exhausted):
		kind := "fallback_exhausted"
		if errors.As(err, &gateway) {
			kind = string(gateway.Kind)
		}
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Kind: kind})
	case errors.As(err, &gateway):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Kind: string(gateway.Kind)})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
