package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/chrissnell/divegas/internal/log"
	"github.com/chrissnell/divegas/pkg/config"
	"github.com/chrissnell/divegas/pkg/nitrox"
	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// Controller represents the REST server controller
type Controller struct {
	ctx         context.Context
	wg          *sync.WaitGroup
	serverCfg   config.ServerData
	calcCfg     config.CalculatorData
	Server      http.Server
	calculators *nitrox.Calculators
	logger      *zap.SugaredLogger
	handlers    *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, cfg *config.ConfigData, calculators *nitrox.Calculators, logger *zap.SugaredLogger) (*Controller, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no configuration provided")
	}
	if calculators == nil {
		return nil, fmt.Errorf("no calculators provided")
	}

	ctrl := &Controller{
		ctx:         ctx,
		wg:          wg,
		serverCfg:   cfg.Server,
		calcCfg:     cfg.Calculator,
		calculators: calculators,
		logger:      logger,
	}

	// If a listen address was not provided, listen on all interfaces
	if ctrl.serverCfg.ListenAddr == "" {
		logger.Info("server.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		ctrl.serverCfg.ListenAddr = config.DefaultListenAddr
	}

	if ctrl.serverCfg.HTTPPort == 0 {
		logger.Infof("server.http_port not provided; defaulting to %d", config.DefaultHTTPPort)
		ctrl.serverCfg.HTTPPort = config.DefaultHTTPPort
	}

	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", ctrl.serverCfg.ListenAddr, ctrl.serverCfg.HTTPPort)
	ctrl.Server.Handler = ctrl.setupRouter()
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	tls := c.serverCfg.TLSCertPath != "" && c.serverCfg.TLSKeyPath != ""
	log.Infow("starting REST server", "addr", c.Server.Addr, "tls", tls)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if tls {
			if err := c.Server.ListenAndServeTLS(c.serverCfg.TLSCertPath, c.serverCfg.TLSKeyPath); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Server.Shutdown(shutdownCtx); err != nil {
			log.Warnf("REST server did not shut down cleanly: %v", err)
		}
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(handlers.RecoveryHandler())
	router.Use(c.requestIDMiddleware)
	router.Use(c.loggingMiddleware)

	router.HandleFunc("/nitrox/best", c.handlers.GetBestNitroxForDepth).Methods(http.MethodGet)
	// Route used by the original serverless deployment
	router.HandleFunc("/api/BestNitroxForDepthFunction", c.handlers.GetBestNitroxForDepth).Methods(http.MethodGet)
	router.HandleFunc("/nitrox/mod", c.handlers.GetMaximumOperatingDepth).Methods(http.MethodGet)
	router.HandleFunc("/pressure/ambient", c.handlers.GetAmbientPressure).Methods(http.MethodGet)
	router.HandleFunc("/pressure/partial", c.handlers.GetPartialPressure).Methods(http.MethodGet)
	router.HandleFunc("/trimix", c.handlers.GetTrimix).Methods(http.MethodGet)
	router.HandleFunc("/healthz", c.handlers.GetHealth).Methods(http.MethodGet)

	return router
}

// requestIDMiddleware propagates the caller's request ID or assigns a new one
func (c *Controller) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (c *Controller) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		c.logger.Debugw("http request",
			"request_id", requestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", m.Code,
			"duration_ms", m.Duration.Milliseconds(),
			"size", m.Written,
		)
	})
}

func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDContextKey).(string); ok {
		return id
	}
	return ""
}
