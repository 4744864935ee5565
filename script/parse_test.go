package script

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/mastercactapus/gturtle/gcode"
	"github.com/mastercactapus/gturtle/turtle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cmds, err := Parse(strings.NewReader(`
; a square corner
move 2 0
go
ROTATE 90   # degrees
snap
frame-move 0 1
framerotate 180
step
step -2
set 1.5 -1
gcode M106 S255
go
`))
	require.NoError(t, err)
	require.Len(t, cmds, 11)

	assert.Equal(t, Command{Op: OpMove, Args: []float64{2, 0}, Line: 3}, cmds[0])
	assert.Equal(t, OpGo, cmds[1].Op)
	assert.Equal(t, OpRotate, cmds[2].Op)
	assert.InDelta(t, math.Pi/2, cmds[2].Args[0], 1e-12)
	assert.Equal(t, []float64{2}, cmds[3].Args)
	assert.Equal(t, OpFrameMove, cmds[4].Op)
	assert.InDelta(t, math.Pi, cmds[5].Args[0], 1e-12)
	assert.Equal(t, []float64{1}, cmds[6].Args)
	assert.Equal(t, []float64{-2}, cmds[7].Args)
	assert.Equal(t, Command{Op: OpSet, Args: []float64{1.5, -1}, Line: 11}, cmds[8])
	assert.Equal(t, gcode.Block{{W: 'M', Arg: 106}, {W: 'S', Arg: 255}}, cmds[9].Block)
	assert.Equal(t, 13, cmds[10].Line)
}

func TestParse_Repeat(t *testing.T) {
	cmds, err := Parse(strings.NewReader(`
repeat 4
  move 5 0
  repeat 2
    go
  end
end
go
`))
	require.NoError(t, err)
	require.Len(t, cmds, 13)

	var ops []Op
	for _, c := range cmds[:3] {
		ops = append(ops, c.Op)
	}
	assert.Equal(t, []Op{OpMove, OpGo, OpGo}, ops)
	assert.Equal(t, 3, cmds[9].Line)

	cmds, err = Parse(strings.NewReader("repeat 0\nmove 1 1\nend\n"))
	require.NoError(t, err)
	assert.Empty(t, cmds)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown":      "jump 1 2",
		"too few":      "move 1",
		"too many":     "go now",
		"bad number":   "move one 2",
		"fraction":     "step 1.5",
		"huge step":    "step 1e300",
		"bad gcode":    "gcode hello",
		"empty gcode":  "gcode",
		"repeat count": "repeat many\nend",
		"stray end":    "go\nend",
		"open repeat":  "repeat 2\ngo",
		"huge repeat":  "repeat 100000\nrepeat 100000\ngo\nend\nend",
		"empty repeat": "repeat 9223372036854775807\nend",
		"over count":   "repeat 100001\ngo\nend",
		"siblings":     "repeat 60000\ngo\nend\nrepeat 60000\ngo\nend",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(src))
			assert.Error(t, err)
		})
	}

	cmds, err := Parse(strings.NewReader("repeat 100000\nend\nrepeat 0\ngo\nend\nrepeat 100000\ngo\nend\n"))
	require.NoError(t, err)
	assert.Len(t, cmds, MaxRepeat)

	_, err = Parse(strings.NewReader("go\n\nmove x 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	s, err := turtle.New(&buf, turtle.DefaultOptions())
	require.NoError(t, err)

	cmds, err := Parse(strings.NewReader(`
move 2 1
go
rotate 45
rotate 45
snap
go
framemove 0 1
go
step 2
gcode M106 S255
go
`))
	require.NoError(t, err)
	require.NoError(t, Run(s, cmds))
	require.NoError(t, s.Close())

	assert.Equal(t, ""+
		"G21\nG90\nM103\nM105\nM104 S220\nM101\n"+
		"G1 X2.00 Y1.00 Z0.00 F700\n"+
		"G1 X-1.00 Y2.00 Z0.00 F700\n"+
		"G1 X-1.00 Y1.00 Z0.00 F700\n"+
		"M106 S255\n"+
		"G1 X-1.00 Y1.00 Z0.80 F700\n"+
		"M103\n"+
		"G1 X-1.00 Y1.00 Z4.80 F700\n"+
		"M104 S0\n",
		buf.String())
}

func TestRun_Error(t *testing.T) {
	var buf bytes.Buffer
	s, err := turtle.New(&buf, turtle.DefaultOptions())
	require.NoError(t, err)

	cmds, err := Parse(strings.NewReader("move 1 1\ngo\nmove NaN 0\ngo\n"))
	require.NoError(t, err)

	err = Run(s, cmds)
	require.Error(t, err)
	assert.ErrorIs(t, err, turtle.ErrNonFinite)
	assert.Contains(t, err.Error(), "line 3")
}

func TestRun_SnapRange(t *testing.T) {
	var buf bytes.Buffer
	s, err := turtle.New(&buf, turtle.DefaultOptions())
	require.NoError(t, err)

	cmds, err := Parse(strings.NewReader("move 2 0\nsnap 400\ngo\n"))
	require.NoError(t, err)

	err = Run(s, cmds)
	assert.ErrorIs(t, err, turtle.ErrPrecision)
	assert.Contains(t, err.Error(), "line 2")
	assert.NotContains(t, buf.String(), "NaN")
}

func TestOp_String(t *testing.T) {
	assert.Equal(t, "framerotate", OpFrameRotate.String())
	assert.Equal(t, "Op(42)", Op(42).String())
	assert.Equal(t, "move[1 2]", Command{Op: OpMove, Args: []float64{1, 2}}.String())
}
