package pagerank

import (
	"io"
	"math"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/linksrus/rankflow/parallel"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// DefaultDampingFactor is used when no damping factor is configured.
const DefaultDampingFactor = 0.85

// Config encapsulates the required parameters for creating a new PageRank
// calculator instance.
type Config struct {
	// DampingFactor is the probability that a random surfer will follow
	// one of the edges of the vertex they are currently visiting instead
	// of restarting according to the personalization vector.
	//
	// If not specified, a default value of 0.85 will be used instead.
	DampingFactor float64

	// At each pass of the iterative PageRank algorithm the calculator
	// tracks the sum of absolute differences (L1 delta) between the
	// previous and the new rank of every vertex. The computation is
	// considered to have converged once the delta drops below Epsilon.
	//
	// A non-positive Epsilon disables convergence detection and is only
	// accepted when MaxIterations is also set.
	Epsilon float64

	// The maximum number of passes to execute. A zero value means that
	// the calculator keeps iterating until convergence.
	MaxIterations int

	// The number of workers to spin up for computing PageRank scores. If
	// not specified, a default value of 1 will be used instead.
	ComputeWorkers int

	// Graphs with more vertices than ParallelThreshold are processed by
	// all compute workers; smaller graphs are processed sequentially. If
	// not specified, parallel.DefaultThreshold will be used instead.
	ParallelThreshold int

	// An optional observer that gets notified about the progress of each
	// run.
	Observer Observer

	// A clock instance for measuring pass durations. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

// validate checks whether the PageRank calculator configuration is valid and
// sets the default values where required.
func (c *Config) validate() error {
	var err error
	if math.IsNaN(c.DampingFactor) || c.DampingFactor < 0 || c.DampingFactor >= 1.0 {
		err = multierror.Append(err, xerrors.New("DampingFactor must be in the range (0, 1)"))
	} else if c.DampingFactor == 0 {
		c.DampingFactor = DefaultDampingFactor
	}

	if math.IsNaN(c.Epsilon) {
		err = multierror.Append(err, xerrors.New("Epsilon must be a number"))
	}

	if c.MaxIterations < 0 {
		err = multierror.Append(err, xerrors.New("MaxIterations must not be negative"))
	} else if c.MaxIterations == 0 && !(c.Epsilon > 0) {
		err = multierror.Append(err, xerrors.New("Epsilon must be positive when MaxIterations is unbounded"))
	}

	if c.ComputeWorkers <= 0 {
		c.ComputeWorkers = 1
	}

	if c.ParallelThreshold <= 0 {
		c.ParallelThreshold = parallel.DefaultThreshold
	}

	if c.Observer == nil {
		c.Observer = nopObserver{}
	}
	if c.Clock == nil {
		c.Clock = clock.WallClock
	}
	if c.Logger == nil {
		c.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
