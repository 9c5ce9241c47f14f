package monitoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})
	Logf("built %s", "QF")
	assert.Equal(t, []string{"built QF"}, got)

	// nil installs a no-op, not a nil function.
	SetLogger(nil)
	assert.NotPanics(t, func() { Logf("dropped") })
	assert.Len(t, got, 1)
}

func TestLogfDefaultNotNil(t *testing.T) {
	assert.NotNil(t, Logf)
}
