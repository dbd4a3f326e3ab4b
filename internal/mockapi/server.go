package mockapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	uuid "github.com/satori/go.uuid"
	"github.com/todayseafood/seafood/pkg/file"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Server is an in-memory stand-in for the 오늘의 수산 API server.
type Server struct {
	*BaseEndpoints // The server itself exposes health check endpoints
	config         Config
	store          *Store
	handler        http.Handler
}

// NewServer returns a mock API server with an empty Store.
func NewServer(config Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := NewStore(config)
	baseEndpoints := &BaseEndpoints{Logger: logger}
	baseEndpoints.TokenAuthFilter = &TokenAuthFilter{
		store:     store,
		endpoints: baseEndpoints,
	}

	router := mux.NewRouter()
	router.StrictSlash(true)

	endpoints := []Endpoints{
		&sessionsEndpoints{
			BaseEndpoints: baseEndpoints,
			store:         store,
			secureCookie:  config.TLSEnabled,
			cookieMaxAge:  int(config.RefreshTokenTTL / time.Second),
		},
		&usersEndpoints{BaseEndpoints: baseEndpoints, store: store},
		&postsEndpoints{BaseEndpoints: baseEndpoints, store: store},
		&commentsEndpoints{BaseEndpoints: baseEndpoints, store: store},
	}
	for _, eps := range endpoints {
		eps.Register(router)
	}

	s := &Server{
		BaseEndpoints: baseEndpoints,
		config:        config,
		store:         store,
	}

	// Health check
	router.HandleFunc(
		"/healthz",
		s.checkHealth, // No filters applied to this request
	).Methods(http.MethodGet)

	// Uploaded images
	router.HandleFunc(
		"/images/{name}",
		s.serveImage, // No filters applied to this request
	).Methods(http.MethodGet)

	s.handler = s.logRequests(
		cors.New(
			cors.Options{
				AllowedOrigins: config.AllowedOrigins,
				AllowedMethods: []string{
					http.MethodGet,
					http.MethodPost,
					http.MethodPatch,
					http.MethodDelete,
				},
				AllowedHeaders:   []string{"Authorization", "Content-Type"},
				ExposedHeaders:   []string{"Authorization"},
				AllowCredentials: true,
			},
		).Handler(router),
	)

	return s
}

// Store returns the server's state, e.g. so that tests can expire tokens.
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the server's root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves HTTP requests until ctx is canceled or an error
// occurs.
func (s *Server) ListenAndServe(ctx context.Context) error {
	tlsEnabled := s.config.TLSEnabled &&
		file.Exists(s.config.TLSCertPath) &&
		file.Exists(s.config.TLSKeyPath)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.handler,
	}
	if !tlsEnabled {
		srv.Handler = h2c.NewHandler(s.handler, &http2.Server{})
	}
	errCh := make(chan error, 1)
	go func() {
		if tlsEnabled {
			s.Logger.Info(
				"API server is listening with TLS enabled",
				zap.Int("port", s.config.Port),
			)
			errCh <- srv.ListenAndServeTLS(s.config.TLSCertPath, s.config.TLSKeyPath)
			return
		}
		s.Logger.Info(
			"API server is listening without TLS",
			zap.Int("port", s.config.Port),
		)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return errors.Wrap(err, "error serving API requests")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "error shutting down API server")
		}
		return nil
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.Logger.Debug(
			"handled request",
			zap.String("requestID", uuid.NewV4().String()),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) checkHealth(w http.ResponseWriter, r *http.Request) {
	s.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return struct{}{}, nil
			},
			SuccessCode:    http.StatusOK,
			SuccessMessage: "ok",
		},
	)
}

func (s *Server) serveImage(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	content, ok := s.store.Image(name)
	if !ok {
		s.WriteError(w, r, &ErrNotFound{Type: "Image", ID: name})
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(content))
	if _, err := w.Write(content); err != nil {
		s.Logger.Debug("error writing image", zap.Error(err))
	}
}
