package edgelist

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/linksrus/rankflow/graph"
	"github.com/linksrus/rankflow/propmap"
	"golang.org/x/xerrors"
)

// LoadVertexValues parses "name,value" rows from r into a vertex map that
// covers every vertex in idx. Vertices without a row are assigned def.
func LoadVertexValues(r io.Reader, idx *Index, def float64) (*propmap.Float64VertexMap, error) {
	m := propmap.NewVertexMap(idx.Len())
	m.Fill(def)

	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, xerrors.Errorf("load vertex values: %w", err)
		}

		line, _ := cr.FieldPos(0)
		name := strings.TrimSpace(row[0])
		v, ok := idx.Vertex(name)
		if !ok {
			return nil, xerrors.Errorf("load vertex values: line %d: %q: %w", line, name, ErrUnknownVertexName)
		}

		val, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, xerrors.Errorf("load vertex values: line %d: invalid value %q: %w", line, row[1], ErrMalformedRecord)
		}
		m.Set(v, val)
	}

	return m, nil
}

// WriteScores writes a "name,score" row for each vertex in idx to w.
func WriteScores(w io.Writer, idx *Index, m propmap.VertexMap) error {
	if idx.Len() != m.Len() {
		return xerrors.Errorf("write scores: index has %d vertices but score map has %d", idx.Len(), m.Len())
	}

	cw := csv.NewWriter(w)
	for v := 0; v < idx.Len(); v++ {
		score := strconv.FormatFloat(m.Get(graph.Vertex(v)), 'g', -1, 64)
		if err := cw.Write([]string{idx.Name(graph.Vertex(v)), score}); err != nil {
			return xerrors.Errorf("write scores: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return xerrors.Errorf("write scores: %w", err)
	}
	return nil
}
