// Package pagerank computes PageRank scores over directed and undirected
// graphs using damped power iteration with a personalization vector.
package pagerank

import (
	"context"

	"github.com/google/uuid"
	"github.com/linksrus/rankflow/degree"
	"github.com/linksrus/rankflow/graph"
	"github.com/linksrus/rankflow/parallel"
	"github.com/linksrus/rankflow/propmap"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

var (
	// ErrNilRankMap is returned when no rank map is provided to Run.
	ErrNilRankMap = xerrors.New("rank map not specified")

	// ErrNilPersonalization is returned when no personalization map is
	// provided to Run.
	ErrNilPersonalization = xerrors.New("personalization map not specified")

	// ErrMapSizeMismatch is returned when the provided vertex maps do not
	// cover the same number of vertices as the graph.
	ErrMapSizeMismatch = xerrors.New("vertex map size does not match the number of graph vertices")
)

// Calculator executes the iterative version of the PageRank algorithm
// on a graph until the desired level of convergence is reached.
type Calculator struct {
	cfg  Config
	pool *parallel.Pool
}

// NewCalculator returns a new Calculator instance using the provided config
// options.
func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("PageRank calculator config validation failed: %w", err)
	}

	pool, err := parallel.NewPool(parallel.Config{
		Workers:   cfg.ComputeWorkers,
		Threshold: cfg.ParallelThreshold,
	})
	if err != nil {
		return nil, err
	}

	return &Calculator{cfg: cfg, pool: pool}, nil
}

// Close releases any resources allocated by this PageRank calculator instance.
func (c *Calculator) Close() error {
	return c.pool.Close()
}

// Run computes the PageRank scores of the vertices in g and stores them in
// rank. The initial contents of rank are used as the starting point of the
// iteration; the caller is responsible for seeding it. A nil w assigns a
// weight of 1 to every edge.
//
// The graph and the provided maps must not be modified while Run executes.
// If the context expires, Run returns an error once the pass in progress
// completes and the contents of rank are unspecified.
func (c *Calculator) Run(ctx context.Context, g graph.Graph, rank, pers propmap.VertexMap, w propmap.EdgeMap) (Result, error) {
	switch {
	case g == nil:
		return Result{}, xerrors.Errorf("pagerank: %w", graph.ErrNilGraph)
	case rank == nil:
		return Result{}, xerrors.Errorf("pagerank: %w", ErrNilRankMap)
	case pers == nil:
		return Result{}, xerrors.Errorf("pagerank: %w", ErrNilPersonalization)
	}
	if w == nil {
		w = propmap.UnitWeight{}
	}

	n := g.NumVertices()
	if rank.Len() != n || pers.Len() != n {
		return Result{}, xerrors.Errorf("pagerank: graph has %d vertices, rank map %d, personalization map %d: %w", n, rank.Len(), pers.Len(), ErrMapSizeMismatch)
	}

	var (
		clk     = c.cfg.Clock
		startAt = clk.Now()
		logger  = c.cfg.Logger.WithFields(logrus.Fields{
			"run_id":   uuid.New().String(),
			"vertices": n,
			"edges":    g.NumEdges(),
			"directed": g.Directed(),
		})
		state = Initializing
	)

	deg := degree.Compute(g, degree.Out, w, c.pool)
	logger.WithFields(logrus.Fields{
		"state":                state.String(),
		"zero_degree_vertices": degree.CountZero(deg, c.pool),
		"parallel":             c.pool.Parallel(n),
	}).Debug("computed degree table")

	var (
		u = &updater{
			g:       g,
			policy:  flowPolicyFor(g),
			pers:    pers,
			weight:  w,
			deg:     deg,
			damping: c.cfg.DampingFactor,
		}
		buf   = newRankBuffer(rank)
		iter  int
		delta float64
	)

	for state = Iterating; !state.Terminal(); {
		if err := ensureContextNotExpired(ctx); err != nil {
			logger.WithField("iterations", iter).WithError(err).Warn("PageRank computation aborted")
			return Result{}, xerrors.Errorf("pagerank: run aborted after %d iterations: %w", iter, err)
		}

		passStartAt := clk.Now()
		cur, next := buf.current(), buf.next()
		delta = c.pool.Sum(n, func(v graph.Vertex) float64 {
			return u.update(v, cur, next)
		})
		buf.swap()
		iter++

		pass := Pass{Iteration: iter, Delta: delta, Duration: clk.Now().Sub(passStartAt)}
		c.cfg.Observer.PassCompleted(pass)
		logger.WithFields(logrus.Fields{
			"iteration": pass.Iteration,
			"delta":     pass.Delta,
			"duration":  pass.Duration.String(),
		}).Debug("completed pass")

		switch {
		case delta < c.cfg.Epsilon:
			state = Converged
		case c.cfg.MaxIterations > 0 && iter == c.cfg.MaxIterations:
			state = MaxIterationsReached
		}
	}

	copied := buf.finalize(c.pool)
	res := Result{
		Iterations: iter,
		Delta:      delta,
		State:      state,
		Elapsed:    clk.Now().Sub(startAt),
	}
	c.cfg.Observer.RunCompleted(res)

	logger.WithFields(logrus.Fields{
		"iterations":  res.Iterations,
		"delta":       res.Delta,
		"state":       res.State.String(),
		"copied_back": copied,
		"elapsed":     res.Elapsed.String(),
	}).Info("completed PageRank computation")

	return res, nil
}

// Compute is a convenience function that creates a Calculator using cfg,
// executes a single run and releases the calculator resources.
func Compute(ctx context.Context, g graph.Graph, rank, pers propmap.VertexMap, w propmap.EdgeMap, cfg Config) (Result, error) {
	calc, err := NewCalculator(cfg)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = calc.Close() }()

	return calc.Run(ctx, g, rank, pers, w)
}

func ensureContextNotExpired(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
