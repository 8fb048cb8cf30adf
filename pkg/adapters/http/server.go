package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/abacus"
	"github.com/aretw0/abacus/pkg/domain"
	"github.com/aretw0/abacus/pkg/runner"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed openapi.yaml
var rawSpec []byte

// Calculator defines the calculator operations exposed over HTTP.
type Calculator interface {
	Calculate(ctx context.Context, input string) (domain.Result, error)
	Tokenize(input string) (domain.Expression, error)
	Evaluate(expr domain.Expression) (float64, error)
}

// InputRequest is the body of POST /calculate and POST /tokenize.
type InputRequest struct {
	Input string `json:"input"`
}

// ErrorResponse is the body of every non-2xx calculator response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// Server serves the calculator routes.
type Server struct {
	Calculator Calculator
	Metrics    http.Handler
	Logger     *slog.Logger

	// MaxInputSize bounds request input in bytes; zero uses runner.MaxInputSize.
	MaxInputSize int
}

// Option configures the Server.
type Option func(*Server)

// WithMetricsHandler mounts h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithMaxInputSize bounds the input accepted by /calculate and /tokenize.
func WithMaxInputSize(limit int) Option {
	return func(s *Server) {
		s.MaxInputSize = limit
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// NewHandler creates a new HTTP handler for the calculator.
func NewHandler(calc Calculator, opts ...Option) http.Handler {
	s := &Server{
		Calculator: calc,
		Logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/calculate", s.Calculate)
	r.Post("/tokenize", s.Tokenize)
	r.Post("/evaluate", s.Evaluate)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	return enableCORS(r)
}

// ListenAndServe serves handler on addr until ctx is done.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info("Shutting down HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Calculate handles the POST /calculate request.
func (s *Server) Calculate(w http.ResponseWriter, r *http.Request) {
	input, ok := s.decodeInput(w, r, "Calculate")
	if !ok {
		return
	}

	res, err := s.Calculator.Calculate(r.Context(), input)
	if err != nil {
		s.Logger.Debug("Calculate: rejected", "input", input, "err", err)
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Tokenize handles the POST /tokenize request.
func (s *Server) Tokenize(w http.ResponseWriter, r *http.Request) {
	input, ok := s.decodeInput(w, r, "Tokenize")
	if !ok {
		return
	}

	expr, err := s.Calculator.Tokenize(input)
	if err != nil {
		s.Logger.Debug("Tokenize: rejected", "input", input, "err", err)
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, expr)
}

// Evaluate handles the POST /evaluate request.
func (s *Server) Evaluate(w http.ResponseWriter, r *http.Request) {
	var expr domain.Expression
	if err := json.NewDecoder(r.Body).Decode(&expr); err != nil {
		s.Logger.Warn("Evaluate: Invalid request body", "err", err)
		if errors.Is(err, domain.ErrUnknownOperator) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Reason: domain.ReasonInvalidInput})
		return
	}

	value, err := s.Calculator.Evaluate(expr)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, domain.ErrUnknownOperator) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.NewResult(expr.String(), expr, value))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := LoadSpec(r.Context()); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "abacus-http",
		"version":     strings.TrimSpace(abacus.Version),
		"api_version": apiVersion,
	})
}

func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request, op string) (string, bool) {
	var body InputRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.Logger.Warn(op+": Invalid request body", "err", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Reason: domain.ReasonInvalidInput})
		return "", false
	}

	clean, err := runner.SanitizeInputLimit(body.Input, s.MaxInputSize)
	if err != nil {
		s.Logger.Warn(op+": Input rejected", "err", err, "size", len(body.Input))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Reason: domain.ReasonInvalidInput})
		return "", false
	}
	return clean, true
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Reason: domain.Reason(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
