package metrics

import (
	"context"
	"io"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// ServerConfig encapsulates the settings for the metrics server.
type ServerConfig struct {
	// The address to listen for scrape requests.
	ListenAddr string

	// The gatherer whose metrics are exported at /metrics.
	Gatherer prometheus.Gatherer

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *ServerConfig) validate() error {
	var err error
	if cfg.ListenAddr == "" {
		err = multierror.Append(err, xerrors.Errorf("listen address has not been specified"))
	}
	if cfg.Gatherer == nil {
		err = multierror.Append(err, xerrors.Errorf("prometheus gatherer has not been provided"))
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return err
}

// Server exposes the metrics of a registry to Prometheus scrapers.
type Server struct {
	cfg    ServerConfig
	router *mux.Router
}

// NewServer creates a new metrics Server instance with the specified config.
func NewServer(cfg ServerConfig) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("metrics server: config validation failed: %w", err)
	}

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})).Methods("GET")
	return &Server{cfg: cfg, router: router}, nil
}

// ServeHTTP implements http.Handler.
func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	srv.router.ServeHTTP(w, r)
}

// Name implements service.Service.
func (srv *Server) Name() string { return "metrics" }

// Run implements service.Service.
func (srv *Server) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", srv.cfg.ListenAddr)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	httpSrv := &http.Server{
		Addr:    srv.cfg.ListenAddr,
		Handler: srv.router,
	}

	go func() {
		<-ctx.Done()
		_ = httpSrv.Close()
	}()

	srv.cfg.Logger.WithField("addr", l.Addr().String()).Info("serving prometheus metrics")
	if err = httpSrv.Serve(l); err == http.ErrServerClosed {
		err = nil
	}

	return err
}
