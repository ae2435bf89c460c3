// Package rankapi exposes the outcome of a PageRank run over HTTP.
package rankapi

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-multierror"
	"github.com/linksrus/rankflow/edgelist"
	"github.com/linksrus/rankflow/graph"
	"github.com/linksrus/rankflow/pagerank"
	"github.com/linksrus/rankflow/propmap"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

const (
	scoreEndpoint   = "/scores/{vertex}"
	scoresEndpoint  = "/scores"
	runEndpoint     = "/run"
	metricsEndpoint = "/metrics"

	defaultTopN = 10
)

// Config encapsulates the settings for configuring the score API server.
type Config struct {
	// The address to listen for incoming requests. Only required by Run.
	ListenAddr string

	// The index for translating vertex names.
	Index *edgelist.Index

	// The computed scores, keyed by the vertices of Index.
	Scores propmap.VertexMap

	// The summary of the run that produced Scores.
	Result pagerank.Result

	// An optional gatherer whose metrics are exported at /metrics.
	Gatherer prometheus.Gatherer

	// The number of entries returned by /scores when no top parameter is
	// provided. If not specified, a default value of 10 will be used
	// instead.
	DefaultTopN int

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Index == nil {
		err = multierror.Append(err, xerrors.Errorf("vertex index has not been provided"))
	}
	if cfg.Scores == nil {
		err = multierror.Append(err, xerrors.Errorf("scores have not been provided"))
	} else if cfg.Index != nil && cfg.Index.Len() != cfg.Scores.Len() {
		err = multierror.Append(err, xerrors.Errorf("index has %d vertices but score map has %d", cfg.Index.Len(), cfg.Scores.Len()))
	}
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = defaultTopN
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return err
}

// VertexScore is the JSON representation of a single vertex score.
type VertexScore struct {
	Vertex string  `json:"vertex"`
	Score  float64 `json:"score"`
}

// RunSummary is the JSON representation of a pagerank.Result.
type RunSummary struct {
	Iterations int     `json:"iterations"`
	Delta      float64 `json:"delta"`
	State      string  `json:"state"`
	Elapsed    string  `json:"elapsed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serves the scores computed by a PageRank run.
type Server struct {
	cfg    Config
	router *mux.Router

	// ranked lists all vertices ordered by descending score.
	ranked []VertexScore
}

// NewServer creates a new Server instance with the specified config.
func NewServer(cfg Config) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("rank API: config validation failed: %w", err)
	}

	srv := &Server{
		cfg:    cfg,
		router: mux.NewRouter(),
		ranked: rank(cfg.Index, cfg.Scores),
	}

	srv.router.HandleFunc(scoreEndpoint, srv.getScore).Methods("GET")
	srv.router.HandleFunc(scoresEndpoint, srv.getTopScores).Methods("GET")
	srv.router.HandleFunc(runEndpoint, srv.getRun).Methods("GET")
	if cfg.Gatherer != nil {
		srv.router.Handle(metricsEndpoint, promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}
	srv.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	return srv, nil
}

// ServeHTTP implements http.Handler.
func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	srv.router.ServeHTTP(w, r)
}

// Name implements service.Service.
func (srv *Server) Name() string { return "rank API" }

// Run implements service.Service.
func (srv *Server) Run(ctx context.Context) error {
	if srv.cfg.ListenAddr == "" {
		return xerrors.New("listen address has not been specified")
	}

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

	srv.cfg.Logger.WithField("addr", l.Addr().String()).Info("starting rank API server")
	if err = httpSrv.Serve(l); err == http.ErrServerClosed {
		// Ignore error when the server shuts down.
		err = nil
	}

	return err
}

func (srv *Server) getScore(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["vertex"]
	v, ok := srv.cfg.Index.Vertex(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown vertex " + strconv.Quote(name)})
		return
	}

	writeJSON(w, http.StatusOK, VertexScore{Vertex: name, Score: srv.cfg.Scores.Get(v)})
}

func (srv *Server) getTopScores(w http.ResponseWriter, r *http.Request) {
	topN := srv.cfg.DefaultTopN
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "top must be a positive integer"})
			return
		}
		topN = n
	}

	if topN > len(srv.ranked) {
		topN = len(srv.ranked)
	}
	writeJSON(w, http.StatusOK, srv.ranked[:topN])
}

func (srv *Server) getRun(w http.ResponseWriter, _ *http.Request) {
	res := srv.cfg.Result
	writeJSON(w, http.StatusOK, RunSummary{
		Iterations: res.Iterations,
		Delta:      res.Delta,
		State:      res.State.String(),
		Elapsed:    res.Elapsed.String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// rank returns the vertices of idx sorted by descending score. Ties are
// broken by vertex name.
func rank(idx *edgelist.Index, scores propmap.VertexMap) []VertexScore {
	ranked := make([]VertexScore, idx.Len())
	for v := range ranked {
		ranked[v] = VertexScore{
			Vertex: idx.Name(graph.Vertex(v)),
			Score:  scores.Get(graph.Vertex(v)),
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Vertex < ranked[j].Vertex
	})
	return ranked
}
