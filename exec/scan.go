package exec

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/csql-dev/csql/diag"
	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/tuple"
	"github.com/csql-dev/csql/value"
)

// Scan streams one Tuple per non-empty line of a table's CSV file, in
// file order, with no filtering or pruning (spec.md section 4.2).
type Scan struct {
	path    string
	mapping *schema.Mapping
	arity   int

	file   *os.File
	reader *csv.Reader
}

// NewScan opens path immediately so a missing file surfaces as a catalog
// error at construction, not lazily on the first Next().
func NewScan(path string, mapping *schema.Mapping) (*Scan, error) {
	s := &Scan{path: path, mapping: mapping, arity: mapping.Len()}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scan) open() error {
	f, err := os.Open(s.path)
	if err != nil {
		return diag.Errorf(diag.Catalog, "scan", "cannot open table file %s: %s", s.path, err)
	}
	s.file = f
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	s.reader = r
	return nil
}

func (s *Scan) Mapping() *schema.Mapping { return s.mapping }

func (s *Scan) Next() (*tuple.Tuple, error) {
	for {
		record, err := s.reader.Read()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, diag.Errorf(diag.IO, "scan", "reading %s: %s", s.path, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue // skip blank lines
		}
		fields := make([]value.Value, len(record))
		for i, raw := range record {
			fields[i] = value.FromField(strings.TrimSpace(raw))
		}
		return &tuple.Tuple{Fields: fields}, nil
	}
}

// Reset re-opens the file from offset zero, closing the previous handle
// first (spec.md section 5's scoped resource acquisition).
func (s *Scan) Reset() error {
	if s.file != nil {
		s.file.Close()
	}
	return s.open()
}

func (s *Scan) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
