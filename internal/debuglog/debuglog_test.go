package debuglog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogfDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })
	Enable(false)

	Logf("hidden %d", 1)
	assert.Empty(t, buf.String())
}

func TestLogfFlattensNewlines(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Enable(true)
	t.Cleanup(func() {
		Enable(false)
		SetOutput(nil)
	})

	Logf("lock kind=%s\ncleared=%d", "T", 2)
	line := buf.String()
	assert.True(t, strings.HasSuffix(line, "lock kind=T cleared=2\n"), line)
	assert.Equal(t, 1, strings.Count(line, "\n"))
}
