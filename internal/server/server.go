package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emberwake/emberwake/internal/catalog"
	"github.com/emberwake/emberwake/internal/character"
	"github.com/emberwake/emberwake/internal/database"
	"github.com/emberwake/emberwake/internal/handler"
	"github.com/emberwake/emberwake/internal/logger"
	"github.com/emberwake/emberwake/internal/metrics"
	"github.com/emberwake/emberwake/internal/naming"
)

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
	characters *character.Manager
	resolver   naming.Resolver
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, characters *character.Manager, cat catalog.Catalog, enchants *catalog.EnchantmentRegistry, resolver naming.Resolver) *Server {
	r := chi.NewRouter()

	// Middleware executes in the order defined, outermost first
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/item", handler.HandleGetItemInfo(cat, resolver))

		r.Route("/character", func(r chi.Router) {
			r.Post("/create", handler.HandleCreateCharacter(characters))
			r.Get("/", handler.HandleGetCharacter(characters))
			r.Post("/save", handler.HandleSaveCharacter(characters))
			r.Post("/stats", handler.HandleSetStats(characters))
			r.Get("/inventory", handler.HandleGetInventory(characters, resolver))
			r.Get("/loadout", handler.HandleGetLoadout(characters))
			r.Get("/buffs", handler.HandleGetBuffs(characters))

			r.Route("/item", func(r chi.Router) {
				r.Post("/add", handler.HandleAddItem(characters, resolver))
				r.Post("/craft", handler.HandleCraftItem(characters, resolver))
				r.Post("/remove", handler.HandleRemoveItem(characters, resolver))
				r.Post("/give", handler.HandleGiveItem(characters, resolver))
			})

			r.Route("/equipment", func(r chi.Router) {
				r.Post("/equip", handler.HandleEquip(characters))
				r.Post("/unequip", handler.HandleUnequip(characters))
				r.Post("/repair", handler.HandleRepair(characters))
				r.Post("/damage", handler.HandleDamage(characters))
				r.Post("/enchant", handler.HandleApplyEnchant(characters, enchants))
			})

			r.Route("/buff", func(r chi.Router) {
				r.Post("/add", handler.HandleAddBuff(characters))
				r.Post("/consume", handler.HandleConsumeBuffs(characters))
			})
		})

		r.Get("/enchantments", handler.HandleListEnchantments(enchants))

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/reload-aliases", handler.HandleReloadAliases(resolver))
			r.Post("/reload-enchantments", handler.HandleReloadEnchantments(enchants))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:     dbPool,
		characters: characters,
		resolver:   resolver,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics probes are too chatty to log
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
