// Package edgelist builds graphs from lists of edges whose endpoints are
// identified by name.
//
// Vertex names are mapped to dense graph.Vertex values in the order in which
// they are first encountered. The resulting Index can be used to translate
// between names and vertices when reading auxiliary per-vertex inputs or
// writing scores.
package edgelist

import "golang.org/x/xerrors"

var (
	// ErrMalformedRecord is returned by sources when an input row cannot
	// be parsed into a Record.
	ErrMalformedRecord = xerrors.New("malformed edge list record")

	// ErrUnknownVertexName is returned when a vertex name does not appear
	// in the index.
	ErrUnknownVertexName = xerrors.New("unknown vertex name")
)

// Record describes a single edge list entry.
type Record struct {
	// The names of the edge endpoints.
	Src string
	Dst string

	// The edge weight. Only valid if HasWeight is true.
	Weight    float64
	HasWeight bool
}

// Source is implemented by objects that produce a stream of edge list
// records.
type Source interface {
	// Next advances the source. If no more records are available or an
	// error occurs, calls to Next() return false.
	Next() bool

	// Record returns the currently fetched record.
	Record() *Record

	// Error returns the last error encountered by the source.
	Error() error

	// Close releases any resources associated with the source.
	Close() error
}
