package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var (
	appName = "rankflow-pagerank"
	appSha  = "populated-at-link-time"
	logger  *logrus.Entry
)

func main() {
	host, _ := os.Hostname()
	rootLogger := logrus.New()
	rootLogger.SetFormatter(new(logrus.JSONFormatter))
	logger = rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	})

	if err := makeApp().Run(os.Args); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		_ = os.Stderr.Sync()
		os.Exit(1)
	}
}

func makeApp() *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Version = appSha
	app.Usage = "Compute PageRank scores for the vertices of an edge list"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config",
			EnvVar: "CONFIG_FILE",
			Usage:  "An optional TOML file with default values for the remaining options",
		},
		cli.StringFlag{
			Name:   "edges",
			EnvVar: "EDGES",
			Usage:  "A delimited file with one src,dst[,weight] edge per line",
		},
		cli.StringFlag{
			Name:   "edges-dsn",
			EnvVar: "EDGES_DSN",
			Usage:  "A CockroachDB/Postgres DSN for reading the edge list from a database",
		},
		cli.StringFlag{
			Name:   "edges-query",
			EnvVar: "EDGES_QUERY",
			Usage:  "The query for fetching src, dst[, weight] rows when --edges-dsn is used (defaults to all rows of the edges table)",
		},
		cli.BoolFlag{
			Name:   "undirected",
			EnvVar: "UNDIRECTED",
			Usage:  "Treat the edge list as an undirected graph",
		},
		cli.StringFlag{
			Name:   "delimiter",
			Value:  ",",
			EnvVar: "DELIMITER",
			Usage:  "The field delimiter of the edge list file ('tab' and 'space' are also accepted)",
		},
		cli.BoolFlag{
			Name:   "skip-header",
			EnvVar: "SKIP_HEADER",
			Usage:  "Skip the first row of the edge list file",
		},
		cli.StringFlag{
			Name:   "personalization",
			EnvVar: "PERSONALIZATION",
			Usage:  "An optional name,value file with the personalization weight of each vertex (defaults to a uniform distribution)",
		},
		cli.Float64Flag{
			Name:   "damping",
			Value:  0.85,
			EnvVar: "DAMPING",
			Usage:  "The damping factor of the random walk",
		},
		cli.Float64Flag{
			Name:   "epsilon",
			Value:  1e-6,
			EnvVar: "EPSILON",
			Usage:  "Stop iterating once the L1 difference between successive passes drops below this value",
		},
		cli.IntFlag{
			Name:   "max-iterations",
			Value:  0,
			EnvVar: "MAX_ITERATIONS",
			Usage:  "The maximum number of passes to execute (0 means unbounded)",
		},
		cli.IntFlag{
			Name:   "num-workers",
			Value:  runtime.NumCPU(),
			EnvVar: "NUM_WORKERS",
			Usage:  "The number of workers to use for calculating PageRank scores",
		},
		cli.IntFlag{
			Name:   "parallel-threshold",
			Value:  300,
			EnvVar: "PARALLEL_THRESHOLD",
			Usage:  "Graphs with at most this many vertices are processed sequentially",
		},
		cli.StringFlag{
			Name:   "output",
			Value:  "-",
			EnvVar: "OUTPUT",
			Usage:  "The file to write name,score rows to ('-' for stdout)",
		},
		cli.StringFlag{
			Name:   "serve-addr",
			EnvVar: "SERVE_ADDR",
			Usage:  "If set, keep serving the computed scores over HTTP on this address until a signal is received",
		},
		cli.StringFlag{
			Name:   "metrics-addr",
			EnvVar: "METRICS_ADDR",
			Usage:  "If set, expose prometheus metrics on this address while the scores are being computed and served",
		},
	}
	app.Action = runMain
	return app
}

func runMain(appCtx *cli.Context) error {
	st, err := resolveSettings(appCtx)
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	// Start signal watcher
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		defer signal.Stop(sigCh)
		select {
		case s := <-sigCh:
			logger.WithField("signal", s.String()).Infof("shutting down due to signal")
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return run(ctx, st)
}
