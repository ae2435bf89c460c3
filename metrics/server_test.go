package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/linksrus/rankflow/pagerank"
	"github.com/prometheus/client_golang/prometheus"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(ServerTestSuite))

type ServerTestSuite struct{}

func (s *ServerTestSuite) TestScrape(c *gc.C) {
	reg := prometheus.NewRegistry()
	col, err := NewCollector(reg, "test")
	c.Assert(err, gc.IsNil)
	col.PassCompleted(pagerank.Pass{Iteration: 1, Delta: 0.5, Duration: time.Millisecond})

	srv, err := NewServer(ServerConfig{ListenAddr: ":0", Gatherer: reg})
	c.Assert(err, gc.IsNil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	c.Assert(rec.Code, gc.Equals, http.StatusOK)

	body, err := io.ReadAll(rec.Body)
	c.Assert(err, gc.IsNil)
	c.Assert(strings.Contains(string(body), "test_pagerank_passes_total 1"), gc.Equals, true)
}

func (s *ServerTestSuite) TestConfigValidation(c *gc.C) {
	_, err := NewServer(ServerConfig{})
	c.Assert(err, gc.ErrorMatches, "(?ms).*listen address has not been specified.*")
	c.Assert(err, gc.ErrorMatches, "(?ms).*prometheus gatherer has not been provided.*")
}

func (s *ServerTestSuite) TestRunStopsWhenContextExpires(c *gc.C) {
	srv, err := NewServer(ServerConfig{ListenAddr: "127.0.0.1:0", Gatherer: prometheus.NewRegistry()})
	c.Assert(err, gc.IsNil)

	ctx, cancelFn := context.WithTimeout(context.TODO(), 100*time.Millisecond)
	defer cancelFn()
	c.Assert(srv.Run(ctx), gc.IsNil)
}

func (s *ServerTestSuite) TestRunReportsListenErrors(c *gc.C) {
	srv, err := NewServer(ServerConfig{ListenAddr: "127.0.0.1:-1", Gatherer: prometheus.NewRegistry()})
	c.Assert(err, gc.IsNil)
	c.Assert(srv.Run(context.TODO()), gc.NotNil)
}
