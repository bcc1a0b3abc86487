// Package datafile reads the whitespace-separated numeric text files
// written by PLUMED and GROMACS (fes.dat, COLVAR, .xvg). Lines starting
// with '#' or '@' are headers and are skipped, as are blank lines.
package datafile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	ErrEmpty  = errors.New("datafile: no data rows")
	ErrColumn = errors.New("datafile: column out of range")
)

// Table holds the data rows of a file. Rows may differ in length.
type Table struct {
	Rows [][]float64
	// Header keeps the comment lines in order, without their marker.
	Header []string
}

func (t *Table) Len() int { return len(t.Rows) }

// Column returns column i of every row.
func (t *Table) Column(i int) ([]float64, error) {
	if len(t.Rows) == 0 {
		return nil, ErrEmpty
	}
	out := make([]float64, len(t.Rows))
	for r, row := range t.Rows {
		if i < 0 || i >= len(row) {
			return nil, fmt.Errorf("%w: row %d has %d fields, want column %d", ErrColumn, r, len(row), i)
		}
		out[r] = row[i]
	}
	return out, nil
}

// Columns returns several columns at once, in the requested order.
func (t *Table) Columns(idx ...int) ([][]float64, error) {
	out := make([][]float64, len(idx))
	for k, i := range idx {
		col, err := t.Column(i)
		if err != nil {
			return nil, err
		}
		out[k] = col
	}
	return out, nil
}

func isHeader(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "@")
}

// Read parses r. A field that is not a number fails with its line number.
func Read(r io.Reader) (*Table, error) {
	t := &Table{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if isHeader(text) {
			t.Header = append(t.Header, strings.TrimSpace(text[1:]))
			continue
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("datafile: line %d field %d: %w", line, i+1, err)
			}
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("datafile: line %d: %w", line, err)
	}
	return t, nil
}

// ReadFile opens and parses path. Files ending in .gz or .zst are
// decompressed on the fly.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := decompress(path, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer r.Close()

	t, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

type zstdReader struct{ *zstd.Decoder }

func (z zstdReader) Close() error {
	z.Decoder.Close()
	return nil
}

func decompress(path string, r io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return gzip.NewReader(r)
	case ".zst":
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdReader{d}, nil
	}
	return io.NopCloser(r), nil
}

// Fields returns the column names from a PLUMED "#! FIELDS a b c" header,
// or nil when there is none.
func (t *Table) Fields() []string {
	for _, h := range t.Header {
		rest, ok := strings.CutPrefix(h, "! FIELDS")
		if ok {
			return strings.Fields(rest)
		}
	}
	return nil
}
