package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/abacus"
	"github.com/aretw0/abacus/pkg/domain"
	"github.com/aretw0/abacus/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// InputArgs are the arguments of the calculate and tokenize tools.
type InputArgs struct {
	Input string `json:"input"`
}

// CalculateResponse is the structured result of the calculate tool.
type CalculateResponse struct {
	Input      string            `json:"input" jsonschema_description:"The expression as received"`
	Expression domain.Expression `json:"expression" jsonschema_description:"The tokenized expression"`
	Value      float64           `json:"value" jsonschema_description:"The numeric result"`
	Answer     string            `json:"answer" jsonschema_description:"The result with five decimals"`
}

// Calculator defines the operations required by the MCP server.
type Calculator interface {
	Calculate(ctx context.Context, input string) (domain.Result, error)
	Tokenize(input string) (domain.Expression, error)
}

// Server wraps a Calculator and exposes it as an MCP Server.
type Server struct {
	calc      Calculator
	logger    *slog.Logger
	maxInput  int
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithMaxInputSize bounds the input accepted by the tools.
// Zero uses runner.MaxInputSize.
func WithMaxInputSize(limit int) Option {
	return func(s *Server) {
		s.maxInput = limit
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(calc Calculator, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		calc:      calc,
		logger:    logger,
		mcpServer: server.NewMCPServer("abacus-mcp", strings.TrimSpace(abacus.Version), server.WithToolCapabilities(false)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
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

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	calculateTool := mcp.NewTool("calculate",
		mcp.WithDescription("Evaluate a single binary operation such as '6 * 9' or 'pi + 3'. Operands are decimal numbers or pi; operators are + - * /."),
		mcp.WithString("input", mcp.Required(), mcp.Description("The expression to evaluate")),
		mcp.WithOutputSchema[CalculateResponse](),
	)
	s.mcpServer.AddTool(calculateTool, mcp.NewStructuredToolHandler(s.handleCalculate))

	tokenizeTool := mcp.NewTool("tokenize",
		mcp.WithDescription("Split an expression into its operands and operator without evaluating it."),
		mcp.WithString("input", mcp.Required(), mcp.Description("The expression to tokenize")),
		mcp.WithOutputSchema[domain.Expression](),
	)
	s.mcpServer.AddTool(tokenizeTool, mcp.NewStructuredToolHandler(s.handleTokenize))
}

func (s *Server) handleCalculate(ctx context.Context, request mcp.CallToolRequest, args InputArgs) (CalculateResponse, error) {
	input, err := runner.SanitizeInputLimit(args.Input, s.maxInput)
	if err != nil {
		return CalculateResponse{}, toolError(err)
	}

	res, err := s.calc.Calculate(ctx, input)
	if err != nil {
		s.logger.Debug("calculate tool rejected input", "input", input, "err", err)
		return CalculateResponse{}, toolError(err)
	}
	return CalculateResponse{
		Input:      res.Input,
		Expression: res.Expression,
		Value:      res.Value,
		Answer:     res.Answer,
	}, nil
}

func (s *Server) handleTokenize(ctx context.Context, request mcp.CallToolRequest, args InputArgs) (domain.Expression, error) {
	input, err := runner.SanitizeInputLimit(args.Input, s.maxInput)
	if err != nil {
		return domain.Expression{}, toolError(err)
	}

	expr, err := s.calc.Tokenize(input)
	if err != nil {
		return domain.Expression{}, toolError(err)
	}
	return expr, nil
}

// toolError prefixes err with its wire reason so clients can branch on it.
func toolError(err error) error {
	return fmt.Errorf("%s: %w", domain.Reason(err), err)
}
