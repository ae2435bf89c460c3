package edgelist

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// CSVOptions controls the parsing of delimited edge list files.
type CSVOptions struct {
	// The field delimiter. Defaults to ','.
	Delimiter rune

	// Lines starting with this character are ignored. Defaults to '#'.
	Comment rune

	// If set, the first non-comment row is skipped.
	SkipHeader bool
}

func (o *CSVOptions) applyDefaults() {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.Comment == 0 {
		o.Comment = '#'
	}
}

// csvSource is a Source implementation that reads "src,dst[,weight]" rows.
type csvSource struct {
	in     io.Reader
	r      *csv.Reader
	header bool

	lastErr    error
	latchedRec *Record
}

// NewCSVSource returns a Source that parses delimited edge list rows from r.
// Each row holds the source and destination vertex names followed by an
// optional weight column. If r implements io.Closer, it is closed when
// the source is closed.
func NewCSVSource(r io.Reader, opts CSVOptions) Source {
	opts.applyDefaults()

	cr := csv.NewReader(r)
	cr.Comma = opts.Delimiter
	cr.Comment = opts.Comment
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	return &csvSource{in: r, r: cr, header: opts.SkipHeader}
}

// Next implements Source.
func (s *csvSource) Next() bool {
	if s.lastErr != nil {
		return false
	}

	row, err := s.read()
	if err != nil {
		if err != io.EOF {
			s.lastErr = xerrors.Errorf("csv edge source: %w", err)
		}
		return false
	}

	line, _ := s.r.FieldPos(0)
	if len(row) < 2 || len(row) > 3 {
		s.lastErr = xerrors.Errorf("csv edge source: line %d: expected 2 or 3 columns, got %d: %w", line, len(row), ErrMalformedRecord)
		return false
	}

	rec := &Record{Src: strings.TrimSpace(row[0]), Dst: strings.TrimSpace(row[1])}
	if rec.Src == "" || rec.Dst == "" {
		s.lastErr = xerrors.Errorf("csv edge source: line %d: empty vertex name: %w", line, ErrMalformedRecord)
		return false
	}

	if len(row) == 3 {
		if rec.Weight, err = strconv.ParseFloat(strings.TrimSpace(row[2]), 64); err != nil {
			s.lastErr = xerrors.Errorf("csv edge source: line %d: invalid weight %q: %w", line, row[2], ErrMalformedRecord)
			return false
		}
		rec.HasWeight = true
	}

	s.latchedRec = rec
	return true
}

func (s *csvSource) read() ([]string, error) {
	if s.header {
		s.header = false
		if _, err := s.r.Read(); err != nil {
			return nil, err
		}
	}
	return s.r.Read()
}

// Record implements Source.
func (s *csvSource) Record() *Record {
	return s.latchedRec
}

// Error implements Source.
func (s *csvSource) Error() error {
	return s.lastErr
}

// Close implements Source.
func (s *csvSource) Close() error {
	if c, ok := s.in.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return xerrors.Errorf("csv edge source: %w", err)
		}
	}
	return nil
}
