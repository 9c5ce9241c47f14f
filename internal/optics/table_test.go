package optics

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accel-data/beamline/internal/monitoring"
)

const sampleTable = `
@ TITLE %s "test line"
@ ORIGIN %s "unit test"
! a comment line
* NAME KEYWORD L K1L
$ %s %s %le %le
"QF" "QUADRUPOLE" 0.5 0.6
"D1" "DRIFT" 1.0 0
"BPM" "MONITOR" 0.0 0
`

func TestReadTable(t *testing.T) {
	t.Parallel()

	table, err := ReadTable(strings.NewReader(sampleTable))
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"NAME", "KEYWORD", "L", "K1L"}, table.Columns())

	title, ok := table.Descriptor("title")
	assert.True(t, ok)
	assert.Equal(t, "test line", title)

	row := table.Row(0)
	assert.Equal(t, "QF", row.Str("NAME"))
	assert.Equal(t, "QUADRUPOLE", row.Str("KEYWORD"))
	assert.InDelta(t, 0.5, row.Value("L"), 1e-12)
	assert.InDelta(t, 0.6, row.Value("K1L"), 1e-12)
}

func TestReadTableColumnOrderIndependent(t *testing.T) {
	t.Parallel()

	shuffled := `
* K1L L KEYWORD NAME
0.6 0.5 "QUADRUPOLE" "QF"
`
	table, err := ReadTable(strings.NewReader(shuffled))
	require.NoError(t, err)

	row := table.Row(0)
	assert.Equal(t, "QF", row.Str("NAME"))
	assert.InDelta(t, 0.5, row.Value("L"), 1e-12)
}

func TestMissingColumnWarnsOnceAndReturnsZero(t *testing.T) {
	// Not parallel: redirects the package logger.
	var logged []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, v...))
	})
	defer monitoring.SetLogger(nil)

	table, err := ReadTable(strings.NewReader(sampleTable))
	require.NoError(t, err)

	row := table.Row(0)
	assert.Zero(t, row.Value("ANGLE"))
	assert.Zero(t, table.Row(1).Value("ANGLE"))
	assert.Zero(t, row.Value("ANGLE"))

	require.Len(t, logged, 1, "one warning per missing column")
	assert.Contains(t, logged[0], "ANGLE")
}

func TestReadTableErrors(t *testing.T) {
	t.Parallel()

	t.Run("data before header", func(t *testing.T) {
		t.Parallel()
		_, err := ReadTable(strings.NewReader("\"QF\" \"QUADRUPOLE\" 0.5\n"))
		assert.Error(t, err)
	})

	t.Run("field count mismatch", func(t *testing.T) {
		t.Parallel()
		_, err := ReadTable(strings.NewReader("* NAME KEYWORD L\n\"QF\" \"QUADRUPOLE\"\n"))
		assert.Error(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		_, err := ReadTable(strings.NewReader(""))
		assert.Error(t, err)
	})
}
