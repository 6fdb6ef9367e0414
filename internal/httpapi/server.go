// Package httpapi exposes the mock inference backend over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chatbot/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Health() types.HealthResponse
	ListModels() []types.ModelCard
	Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error)
	Ready() bool
}

// defaultSystemPrompt is applied when a chat request omits system_prompt.
const defaultSystemPrompt = "You are a helpful assistant."

// NewMux builds the router over svc using the package-level settings.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(RequestLogger)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	if apiPrefix == "" {
		registerAPI(r, svc)
	} else {
		r.Route(apiPrefix, func(api chi.Router) { registerAPI(api, svc) })
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

// registerAPI mounts the mock API routes on r.
func registerAPI(r chi.Router, svc Service) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Health())
	})
	r.Get("/mock/models", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.ListModels())
	})
	r.Post("/mock/chat", chatHandler(svc))
	r.Get("/spec", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(openAPISpec)
	})
	MountSwagger(r)
}

func chatHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Content-Type check
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		// omitted fields keep their schema defaults
		req := types.ChatRequest{SystemPrompt: defaultSystemPrompt, Config: types.DefaultChatConfig()}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			// oversized bodies also land here; report 400 without size details
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		lvl := requestLogLevel(r)
		start := time.Now()
		if lvl >= LevelInfo {
			reqEvent(r, zlog.Info()).Str("model", req.ModelID).Msg("chat start")
		}
		ctx, cancel := chatContext(r)
		defer cancel()
		resp, err := svc.Chat(ctx, req)
		if err != nil {
			// client went away or the server is shutting down
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := statusFor(err)
			if lvl >= LevelError {
				reqEvent(r, zlog.Warn()).Int("status", status).Dur("dur", time.Since(start)).Err(err).Msg("chat end")
			}
			writeJSONError(w, status, err.Error())
			return
		}
		if lvl >= LevelDebug {
			reqEvent(r, zlog.Debug()).Str("text", types.JoinTokens(resp.Stream)).Msg("chat stream")
		}
		if lvl >= LevelInfo {
			reqEvent(r, zlog.Info()).Int("status", http.StatusOK).Int("chunks", len(resp.Stream)).Dur("dur", time.Since(start)).Msg("chat end")
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var he HTTPError
	switch {
	case errors.As(err, &he):
		return he.StatusCode()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
