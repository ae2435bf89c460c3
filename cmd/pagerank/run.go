package main

import (
	"context"
	"io"
	"os"

	"github.com/linksrus/rankflow/edgelist"
	"github.com/linksrus/rankflow/edgelist/cdb"
	"github.com/linksrus/rankflow/metrics"
	"github.com/linksrus/rankflow/pagerank"
	"github.com/linksrus/rankflow/propmap"
	"github.com/linksrus/rankflow/rankapi"
	"github.com/linksrus/rankflow/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

const metricsNamespace = "rankflow"

func run(ctx context.Context, st settings) error {
	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg, metricsNamespace)
	if err != nil {
		return err
	}

	// The job cancels the group once it is done so the metrics server never
	// outlives it.
	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()

	grp := service.Group{&rankJob{st: st, reg: reg, collector: collector, done: cancelFn}}
	if st.MetricsAddr != "" {
		metricsSrv, err := metrics.NewServer(metrics.ServerConfig{
			ListenAddr: st.MetricsAddr,
			Gatherer:   reg,
			Logger:     logger.WithField("component", "metrics"),
		})
		if err != nil {
			return err
		}
		grp = append(grp, metricsSrv)
	}

	return grp.Run(ctx)
}

// rankJob loads the input, computes the scores and writes them out. If a
// serve address is configured, it then keeps serving the scores until its
// context expires.
type rankJob struct {
	st        settings
	reg       *prometheus.Registry
	collector *metrics.Collector
	done      context.CancelFunc
}

func (j *rankJob) Name() string { return "PageRank job" }

func (j *rankJob) Run(ctx context.Context) error {
	defer j.done()

	loaded, err := loadGraph(j.st)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"vertices": loaded.Graph.NumVertices(),
		"edges":    loaded.Graph.NumEdges(),
		"weighted": loaded.Weighted,
	}).Info("loaded edge list")

	pers, err := loadPersonalization(j.st, loaded.Index)
	if err != nil {
		return err
	}

	rank := propmap.Uniform(loaded.Graph.NumVertices())
	res, err := pagerank.Compute(ctx, loaded.Graph, rank, pers, loaded.EdgeWeights(), pagerank.Config{
		DampingFactor:     j.st.Damping,
		Epsilon:           j.st.Epsilon,
		MaxIterations:     j.st.MaxIterations,
		ComputeWorkers:    j.st.NumWorkers,
		ParallelThreshold: j.st.ParallelThreshold,
		Observer:          j.collector,
		Logger:            logger.WithField("component", "pagerank"),
	})
	if err != nil {
		return err
	}

	if err = writeScores(j.st.Output, loaded.Index, rank); err != nil {
		return err
	}

	if j.st.ServeAddr == "" {
		return nil
	}

	srv, err := rankapi.NewServer(rankapi.Config{
		ListenAddr: j.st.ServeAddr,
		Index:      loaded.Index,
		Scores:     rank,
		Result:     res,
		Gatherer:   j.reg,
		Logger:     logger.WithField("component", "rankapi"),
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func loadGraph(st settings) (*edgelist.Loaded, error) {
	var (
		src edgelist.Source
		err error
	)
	if st.EdgesDSN != "" {
		query := st.EdgesQuery
		if query == "" {
			query = cdb.DefaultQuery
		}
		src, err = cdb.Open(st.EdgesDSN, query)
	} else {
		src, err = openCSV(st.Edges, edgelist.CSVOptions{Delimiter: st.Delimiter, SkipHeader: st.SkipHeader})
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	return edgelist.Load(src, !st.Undirected)
}

func openCSV(path string, opts edgelist.CSVOptions) (edgelist.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("open edge list: %w", err)
	}
	return edgelist.NewCSVSource(f, opts), nil
}

func loadPersonalization(st settings, idx *edgelist.Index) (propmap.VertexMap, error) {
	if st.Personalization == "" {
		return propmap.Uniform(idx.Len()), nil
	}

	f, err := os.Open(st.Personalization)
	if err != nil {
		return nil, xerrors.Errorf("open personalization file: %w", err)
	}
	defer func() { _ = f.Close() }()

	pers, err := edgelist.LoadVertexValues(f, idx, 0)
	if err != nil {
		return nil, err
	}
	logger.WithField("sum", propmap.Sum(pers)).Info("loaded personalization vector")
	return pers, nil
}

func writeScores(path string, idx *edgelist.Index, rank propmap.VertexMap) error {
	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return xerrors.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	return edgelist.WriteScores(w, idx, rank)
}
