package gcode

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failWriter struct{ n int }

func (f *failWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("disk full")
}

func TestWriter_WriteMotion(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, DefaultPrecision)

	require.NoError(t, w.WriteMotion(1, 0, 0, 700))
	require.NoError(t, w.WriteMotion(1.005, -0.5, 0.4, 1200.5))

	assert.Equal(t, "G1 X1.00 Y0.00 Z0.00 F700\nG1 X1.00 Y-0.50 Z0.40 F1200.5\n", buf.String())

	blocks := MustParse(buf.String())
	require.Len(t, blocks, 2)
	ok, x := blocks[1].Arg('X')
	assert.True(t, ok)
	assert.Equal(t, 1.0, x)
}

func TestWriter_WriteBlocks(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, DefaultPrecision)

	err := w.WriteBlocks(
		Block{{W: 'G', Arg: 21}},
		Block{{W: 'M', Arg: 104}, {W: 'S', Arg: 220}},
	)
	require.NoError(t, err)
	assert.Equal(t, "G21\nM104 S220\n", buf.String())
}

func TestWriter_Invalid(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, DefaultPrecision)

	assert.Error(t, w.WriteBlock(Block{{W: 'G', Arg: 0}, {W: 'G', Arg: 1}}))
	assert.Empty(t, buf.String())
	assert.NoError(t, w.Err())
}

func TestWriter_StickyError(t *testing.T) {
	f := &failWriter{}
	w := NewWriter(f, DefaultPrecision)

	assert.EqualError(t, w.WriteMotion(1, 2, 3, 4), "disk full")
	assert.EqualError(t, w.WriteMotion(1, 2, 3, 4), "disk full")
	assert.EqualError(t, w.Err(), "disk full")
	assert.Equal(t, 1, f.n)
}
