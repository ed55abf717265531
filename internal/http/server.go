// Package http exposes the ledger as a JSON API. Caller identity comes
// from the X-Caller-Address header; there is no session state.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"splitsum/internal/ledger"
)

type Server struct {
	http.Server
	svc         *ledger.Service
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, svc *ledger.Service) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		svc:         svc,
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("GET /healthz", handleHealth)

	mux.HandleFunc("POST /api/groups", s.withMiddleware(s.handleCreateGroup))
	mux.HandleFunc("GET /api/groups", s.withMiddleware(s.handleListGroups))
	mux.HandleFunc("GET /api/groups/{id}", s.withMiddleware(s.handleGetGroup))
	mux.HandleFunc("GET /api/groups/{id}/members", s.withMiddleware(s.handleListMembers))
	mux.HandleFunc("POST /api/groups/{id}/members", s.withMiddleware(s.handleAddMember))
	mux.HandleFunc("DELETE /api/groups/{id}/members/{address}", s.withMiddleware(s.handleRemoveMember))

	mux.HandleFunc("POST /api/groups/{id}/expenses", s.withMiddleware(s.handleCreateExpense))
	mux.HandleFunc("GET /api/expenses/{id}", s.withMiddleware(s.handleGetExpense))
	mux.HandleFunc("GET /api/expenses/{id}/members", s.withMiddleware(s.handleListExpenseMembers))

	mux.HandleFunc("POST /api/groups/{id}/settlements", s.withMiddleware(s.handleSettleUp))
	mux.HandleFunc("GET /api/settlements/{id}", s.withMiddleware(s.handleGetSettlement))
	mux.HandleFunc("GET /api/settlements/{id}/members", s.withMiddleware(s.handleListSettlementMembers))

	mux.HandleFunc("PUT /api/profile", s.withMiddleware(s.handleUpdateProfile))
	mux.HandleFunc("GET /api/profile", s.withMiddleware(s.handleGetProfile))
	mux.HandleFunc("POST /api/contacts", s.withMiddleware(s.handleAddContact))
	mux.HandleFunc("GET /api/contacts", s.withMiddleware(s.handleListContacts))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withMiddleware adds request logging, rate limiting and response
// headers around a handler.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.DebugContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		// Rate limit mutations only
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// Simple in-memory rate limiter, keyed by client IP.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	// Reset counter if more than 1 minute has passed
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	// Allow up to 60 mutations per minute
	client.requests++
	client.lastRequest = now
	return client.requests <= 60
}

// startCleanup runs periodic cleanup to remove stale client entries
func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		if rl.stopCleanup != nil {
			close(rl.stopCleanup)
		}
	})
}
