package parallel

import (
	multierror "github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

// DefaultThreshold is the vertex count at or below which loops are executed
// sequentially by the calling go-routine.
const DefaultThreshold = 300

// Config encapsulates the configuration options for creating a Pool.
type Config struct {
	// The number of workers to spin up for executing loop bodies. If not
	// specified, a single worker will be used, causing every loop to run
	// sequentially.
	Workers int

	// Loops over more than Threshold items are split across the workers;
	// smaller loops run sequentially on the calling go-routine. If not
	// specified, DefaultThreshold will be used instead.
	Threshold int
}

// validate checks whether the pool configuration is valid and sets the
// default values where required.
func (cfg *Config) validate() error {
	var err error
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	if cfg.Threshold < 0 {
		err = multierror.Append(err, xerrors.New("parallel dispatch threshold must not be negative"))
	} else if cfg.Threshold == 0 {
		cfg.Threshold = DefaultThreshold
	}

	return err
}
