package main

import (
	"os"
	"unicode/utf8"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"
)

// fileConfig describes the layout of the optional TOML configuration file.
// Missing keys leave the corresponding flag defaults untouched.
type fileConfig struct {
	Input struct {
		Edges           *string `toml:"edges"`
		DSN             *string `toml:"dsn"`
		Query           *string `toml:"query"`
		Undirected      *bool   `toml:"undirected"`
		Delimiter       *string `toml:"delimiter"`
		SkipHeader      *bool   `toml:"skip_header"`
		Personalization *string `toml:"personalization"`
	} `toml:"input"`

	PageRank struct {
		Damping           *float64 `toml:"damping"`
		Epsilon           *float64 `toml:"epsilon"`
		MaxIterations     *int     `toml:"max_iterations"`
		Workers           *int     `toml:"workers"`
		ParallelThreshold *int     `toml:"parallel_threshold"`
	} `toml:"pagerank"`

	Output struct {
		Path        *string `toml:"path"`
		ServeAddr   *string `toml:"serve_addr"`
		MetricsAddr *string `toml:"metrics_addr"`
	} `toml:"output"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("load config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	fc := new(fileConfig)
	if err = toml.NewDecoder(f).DisallowUnknownFields().Decode(fc); err != nil {
		return nil, xerrors.Errorf("load config file %q: %w", path, err)
	}
	return fc, nil
}

// settings holds the resolved options for a single invocation.
type settings struct {
	Edges           string
	EdgesDSN        string
	EdgesQuery      string
	Undirected      bool
	Delimiter       rune
	SkipHeader      bool
	Personalization string

	Damping           float64
	Epsilon           float64
	MaxIterations     int
	NumWorkers        int
	ParallelThreshold int

	Output      string
	ServeAddr   string
	MetricsAddr string
}

// resolveSettings merges the command line flags with the contents of the
// configuration file specified by --config. Explicitly set flags take
// precedence over file values which in turn take precedence over flag
// defaults.
func resolveSettings(appCtx *cli.Context) (settings, error) {
	fc := new(fileConfig)
	if path := appCtx.String("config"); path != "" {
		var err error
		if fc, err = loadFileConfig(path); err != nil {
			return settings{}, err
		}
	}

	st := settings{
		Edges:           pick(appCtx, "edges", appCtx.String, fc.Input.Edges),
		EdgesDSN:        pick(appCtx, "edges-dsn", appCtx.String, fc.Input.DSN),
		EdgesQuery:      pick(appCtx, "edges-query", appCtx.String, fc.Input.Query),
		Undirected:      pick(appCtx, "undirected", appCtx.Bool, fc.Input.Undirected),
		SkipHeader:      pick(appCtx, "skip-header", appCtx.Bool, fc.Input.SkipHeader),
		Personalization: pick(appCtx, "personalization", appCtx.String, fc.Input.Personalization),

		Damping:           pick(appCtx, "damping", appCtx.Float64, fc.PageRank.Damping),
		Epsilon:           pick(appCtx, "epsilon", appCtx.Float64, fc.PageRank.Epsilon),
		MaxIterations:     pick(appCtx, "max-iterations", appCtx.Int, fc.PageRank.MaxIterations),
		NumWorkers:        pick(appCtx, "num-workers", appCtx.Int, fc.PageRank.Workers),
		ParallelThreshold: pick(appCtx, "parallel-threshold", appCtx.Int, fc.PageRank.ParallelThreshold),

		Output:      pick(appCtx, "output", appCtx.String, fc.Output.Path),
		ServeAddr:   pick(appCtx, "serve-addr", appCtx.String, fc.Output.ServeAddr),
		MetricsAddr: pick(appCtx, "metrics-addr", appCtx.String, fc.Output.MetricsAddr),
	}

	delim, err := parseDelimiter(pick(appCtx, "delimiter", appCtx.String, fc.Input.Delimiter))
	if err != nil {
		return settings{}, err
	}
	st.Delimiter = delim

	switch {
	case st.Edges == "" && st.EdgesDSN == "":
		return settings{}, xerrors.New("an edge list must be specified with --edges or --edges-dsn")
	case st.Edges != "" && st.EdgesDSN != "":
		return settings{}, xerrors.New("--edges and --edges-dsn are mutually exclusive")
	}

	return st, nil
}

// pick returns the flag value if the flag was explicitly set, the file value
// if one was provided and the flag default otherwise.
func pick[T any](appCtx *cli.Context, name string, flagVal func(string) T, fileVal *T) T {
	if !appCtx.IsSet(name) && fileVal != nil {
		return *fileVal
	}
	return flagVal(name)
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	case "space":
		return ' ', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, xerrors.Errorf("delimiter must be a single character; got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
