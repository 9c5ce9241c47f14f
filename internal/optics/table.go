// Package optics reads column-oriented optics tables (MAD TFS style) and
// drives beamline model construction from them. Column parameters are
// identified automatically from the table header; element types are mapped
// to component constructors through a pluggable TypeFactory.
package optics

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/accel-data/beamline/internal/monitoring"
)

// Table is a parsed optics table: descriptor lines, an ordered column set
// and the data rows.
type Table struct {
	descriptors map[string]string
	columns     []string
	colTypes    []string
	index       map[string]int
	rows        [][]string

	// warned tracks columns already reported missing, one warning per column.
	warned map[string]bool
}

// Row is a single data row of a Table. Lookups by column name return zero
// values for columns absent from the table, with a one-shot warning, so a
// table missing an optional parameter still constructs (MAD tables vary in
// which columns they carry).
type Row struct {
	table  *Table
	fields []string
}

// ReadTable parses a TFS-style optics table: "@" descriptor lines, a "*"
// line naming the columns, an optional "$" line giving column formats, and
// whitespace-separated data rows. Blank lines and "!" comments are skipped.
func ReadTable(r io.Reader) (*Table, error) {
	t := &Table{
		descriptors: make(map[string]string),
		index:       make(map[string]int),
		warned:      make(map[string]bool),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		switch line[0] {
		case '@':
			fields := strings.Fields(line[1:])
			if len(fields) >= 3 {
				t.descriptors[strings.ToUpper(fields[0])] = unquote(strings.Join(fields[2:], " "))
			}
		case '*':
			for _, c := range strings.Fields(line[1:]) {
				name := strings.ToUpper(c)
				t.index[name] = len(t.columns)
				t.columns = append(t.columns, name)
			}
		case '$':
			t.colTypes = strings.Fields(line[1:])
		default:
			if len(t.columns) == 0 {
				return nil, fmt.Errorf("optics: line %d: data before column header", lineNo)
			}
			fields := strings.Fields(line)
			if len(fields) != len(t.columns) {
				return nil, fmt.Errorf("optics: line %d: %d fields, want %d",
					lineNo, len(fields), len(t.columns))
			}
			t.rows = append(t.rows, fields)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("optics: read table: %w", err)
	}
	if len(t.columns) == 0 {
		return nil, fmt.Errorf("optics: no column header found")
	}
	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the i-th data row.
func (t *Table) Row(i int) Row { return Row{table: t, fields: t.rows[i]} }

// Columns returns the column names in table order.
func (t *Table) Columns() []string { return t.columns }

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[strings.ToUpper(name)]
	return ok
}

// Descriptor returns the value of an "@" header descriptor, e.g. "TITLE".
func (t *Table) Descriptor(name string) (string, bool) {
	v, ok := t.descriptors[strings.ToUpper(name)]
	return v, ok
}

func (t *Table) warnMissing(col string) {
	if t.warned[col] {
		return
	}
	t.warned[col] = true
	monitoring.Logf("optics: column %s not present in table; parameter set to zero", col)
}

// Has reports whether the row's table carries the named column.
func (r Row) Has(col string) bool { return r.table.HasColumn(col) }

// Value returns the row's numeric value for the named column, or 0 with a
// one-shot warning if the column is absent or unparsable.
func (r Row) Value(col string) float64 {
	col = strings.ToUpper(col)
	i, ok := r.table.index[col]
	if !ok {
		r.table.warnMissing(col)
		return 0
	}
	v, err := strconv.ParseFloat(r.fields[i], 64)
	if err != nil {
		r.table.warnMissing(col)
		return 0
	}
	return v
}

// Str returns the row's string value for the named column with surrounding
// quotes stripped, or "" if the column is absent.
func (r Row) Str(col string) string {
	col = strings.ToUpper(col)
	i, ok := r.table.index[col]
	if !ok {
		r.table.warnMissing(col)
		return ""
	}
	return unquote(r.fields[i])
}

func unquote(s string) string {
	return strings.Trim(s, `"'`)
}
