package graph

import "golang.org/x/xerrors"

var (
	// ErrUnknownVertex is returned when attempting to create an edge
	// with an invalid source and/or destination vertex.
	ErrUnknownVertex = xerrors.New("unknown source and/or destination vertex for edge")

	// ErrNilGraph is returned by algorithms that are invoked without a
	// graph instance.
	ErrNilGraph = xerrors.New("graph not specified")
)
