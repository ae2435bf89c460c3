package pagerank

import (
	"math"

	"github.com/juju/clock"
	"github.com/linksrus/rankflow/parallel"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(ConfigTestSuite))

type ConfigTestSuite struct{}

func (s *ConfigTestSuite) TestDefaults(c *gc.C) {
	cfg := Config{Epsilon: 1e-6}
	c.Assert(cfg.validate(), gc.IsNil)

	c.Assert(cfg.DampingFactor, gc.Equals, DefaultDampingFactor)
	c.Assert(cfg.MaxIterations, gc.Equals, 0)
	c.Assert(cfg.ComputeWorkers, gc.Equals, 1)
	c.Assert(cfg.ParallelThreshold, gc.Equals, parallel.DefaultThreshold)
	c.Assert(cfg.Observer, gc.FitsTypeOf, nopObserver{})
	c.Assert(cfg.Clock, gc.Equals, clock.WallClock)
	c.Assert(cfg.Logger, gc.NotNil)
}

func (s *ConfigTestSuite) TestBoundedRunWithoutEpsilon(c *gc.C) {
	cfg := Config{MaxIterations: 10}
	c.Assert(cfg.validate(), gc.IsNil)
	c.Assert(cfg.Epsilon, gc.Equals, 0.0)
}

func (s *ConfigTestSuite) TestInvalidConfigs(c *gc.C) {
	specs := []struct {
		descr  string
		cfg    Config
		expErr string
	}{
		{
			descr:  "damping factor equal to 1",
			cfg:    Config{DampingFactor: 1, Epsilon: 1e-6},
			expErr: "(?ms).*DampingFactor must be in the range.*",
		},
		{
			descr:  "negative damping factor",
			cfg:    Config{DampingFactor: -0.5, Epsilon: 1e-6},
			expErr: "(?ms).*DampingFactor must be in the range.*",
		},
		{
			descr:  "NaN damping factor",
			cfg:    Config{DampingFactor: math.NaN(), Epsilon: 1e-6},
			expErr: "(?ms).*DampingFactor must be in the range.*",
		},
		{
			descr:  "NaN epsilon",
			cfg:    Config{Epsilon: math.NaN(), MaxIterations: 5},
			expErr: "(?ms).*Epsilon must be a number.*",
		},
		{
			descr:  "negative max iterations",
			cfg:    Config{Epsilon: 1e-6, MaxIterations: -1},
			expErr: "(?ms).*MaxIterations must not be negative.*",
		},
		{
			descr:  "unbounded run without epsilon",
			cfg:    Config{},
			expErr: "(?ms).*Epsilon must be positive when MaxIterations is unbounded.*",
		},
		{
			descr:  "unbounded run with negative epsilon",
			cfg:    Config{Epsilon: -1},
			expErr: "(?ms).*Epsilon must be positive when MaxIterations is unbounded.*",
		},
	}

	for specIndex, spec := range specs {
		c.Logf("[spec %d] %s", specIndex, spec.descr)
		cfg := spec.cfg
		c.Assert(cfg.validate(), gc.ErrorMatches, spec.expErr)
	}
}

func (s *ConfigTestSuite) TestMultipleErrorsAreReported(c *gc.C) {
	cfg := Config{DampingFactor: 2, MaxIterations: -3}
	err := cfg.validate()
	c.Assert(err, gc.ErrorMatches, "(?ms).*DampingFactor.*MaxIterations.*")
}
