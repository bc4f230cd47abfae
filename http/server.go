package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/overviewer"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// DefaultRequestTimeout bounds a whole resolve, browser included.
const DefaultRequestTimeout = 300 * time.Second

// ShutdownTimeout is how long Close waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// RequestIDHeader carries the request ID assigned to every call.
const RequestIDHeader = "X-Request-Id"

// Status codes of the callable error envelope.
const (
	StatusInvalidArgument   = "INVALID_ARGUMENT"
	StatusResourceExhausted = "RESOURCE_EXHAUSTED"
	StatusDeadlineExceeded  = "DEADLINE_EXCEEDED"
	StatusInternal          = "INTERNAL"
)

const urlRequiredMessage = "A valid 'url' string is required."

// maxRequestBytes limits the size of a request envelope.
const maxRequestBytes = 1 << 20

// Server exposes an overviewer.Resolver as a callable function:
// requests are {"data":{"url":...}}, responses are {"result":...} or
// {"error":{"status":...,"message":...}}.
type Server struct {
	ln     net.Listener
	server *http.Server
	mux    *http.ServeMux

	resolver       overviewer.Resolver
	logger         *slog.Logger
	requestTimeout time.Duration
	sem            *semaphore.Weighted
	limiter        *rate.Limiter

	// Addr is the address to listen on, e.g. ":8080".
	Addr string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger for request logging.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRequestTimeout bounds every request.
// Defaults to DefaultRequestTimeout (300s) if not specified.
func WithRequestTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.requestTimeout = d
	}
}

// WithMaxConcurrent limits the number of resolves running at once.
// Zero or less means unlimited.
func WithMaxConcurrent(n int64) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.sem = semaphore.NewWeighted(n)
		}
	}
}

// WithRateLimit limits accepted requests per second across all clients.
// Zero or less means unlimited.
func WithRateLimit(perSecond float64, burst int) ServerOption {
	return func(s *Server) {
		if perSecond <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewServer creates a Server that answers with resolver.
func NewServer(resolver overviewer.Resolver, opts ...ServerOption) *Server {
	s := &Server{
		resolver:       resolver,
		logger:         slog.New(slog.DiscardHandler),
		requestTimeout: DefaultRequestTimeout,
		mux:            http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("POST /{$}", s.handleScrape)
	s.mux.HandleFunc("POST /scrape", s.handleScrape)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.server = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Open starts listening on Addr and serves in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		_ = s.server.Serve(s.ln)
	}()
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Serve listens on Addr and blocks until ctx is done or the listener
// fails, then shuts down.
func (s *Server) Serve(ctx context.Context) (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	s.logger.Info("listening", "addr", s.URL())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.Serve(s.ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return s.Close()
	})
	return g.Wait()
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP assigns a request ID and dispatches to the routes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, id)
	r = r.WithContext(overviewer.NewContextWithRequestID(r.Context(), id))
	s.mux.ServeHTTP(w, r)
}

// callRequest is the callable request envelope.
type callRequest struct {
	Data map[string]any `json:"data"`
}

// callResponse is the callable response envelope.
type callResponse struct {
	Result *overviewer.Outcome `json:"result,omitempty"`
	Error  *callError          `json:"error,omitempty"`
}

type callError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With("request_id", overviewer.RequestIDFromContext(r.Context()))

	if s.limiter != nil && !s.limiter.Allow() {
		s.writeError(w, http.StatusTooManyRequests, StatusResourceExhausted, "Too many requests.")
		return
	}

	var req callRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, StatusInvalidArgument, "Request body must be a JSON object with a 'data' field.")
		return
	}
	rawURL, ok := req.Data["url"].(string)
	if !ok || rawURL == "" {
		logger.Warn("invalid request", "reason", "missing url")
		s.writeError(w, http.StatusBadRequest, StatusInvalidArgument, urlRequiredMessage)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	if s.sem != nil {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			s.writeError(w, http.StatusServiceUnavailable, StatusResourceExhausted, "Server is busy, try again later.")
			return
		}
		defer s.sem.Release(1)
	}

	outcome, err := s.resolver.Resolve(ctx, rawURL)
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, callResponse{Result: outcome})
	case overviewer.ErrorCode(err) == overviewer.EINVALID:
		s.writeError(w, http.StatusBadRequest, StatusInvalidArgument, overviewer.ErrorMessage(err))
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("resolve timed out", "url", rawURL, "timeout", s.requestTimeout)
		s.writeError(w, http.StatusGatewayTimeout, StatusDeadlineExceeded, "Request timed out.")
	default:
		logger.Error("resolve failed", "url", rawURL, "err", err)
		s.writeError(w, http.StatusInternalServerError, StatusInternal, overviewer.ErrorMessage(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, msg string) {
	s.writeJSON(w, status, callResponse{Error: &callError{Status: code, Message: msg}})
}
