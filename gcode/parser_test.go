package gcode

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Read(t *testing.T) {
	p := NewParser(strings.NewReader("G1 X1.00 Y-2.50 ; move\n\n; comment only\nm104 s220"))

	b, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, Block{{W: 'G', Arg: 1}, {W: 'X', Arg: 1}, {W: 'Y', Arg: -2.5}}, b)

	b, err = p.Read()
	require.NoError(t, err)
	assert.Equal(t, Block{{W: 'M', Arg: 104}, {W: 'S', Arg: 220}}, b)

	b, err = p.Read()
	assert.Equal(t, io.EOF, err)
	assert.Nil(t, b)
}

func TestParser_Read_Invalid(t *testing.T) {
	_, err := Parse("G21\nG1 X1 (inline)\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestMustParse(t *testing.T) {
	assert.Len(t, MustParse("G21\nG90\n"), 2)
	assert.Panics(t, func() { MustParse("what") })
}
