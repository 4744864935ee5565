package script

import (
	"fmt"
	"math"

	"github.com/mastercactapus/gturtle/gcode"
	"github.com/mastercactapus/gturtle/turtle"
)

type Op int

const (
	OpMove Op = iota
	OpSet
	OpRotate
	OpSnap
	OpFrameMove
	OpFrameRotate
	OpStep
	OpGo
	OpGCode
)

var opNames = [...]string{
	OpMove:        "move",
	OpSet:         "set",
	OpRotate:      "rotate",
	OpSnap:        "snap",
	OpFrameMove:   "framemove",
	OpFrameRotate: "framerotate",
	OpStep:        "step",
	OpGo:          "go",
	OpGCode:       "gcode",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// Command is a single parsed script instruction. Angles are
// stored in radians.
type Command struct {
	Op    Op
	Args  []float64
	Block gcode.Block
	Line  int
}

func (c Command) String() string {
	if c.Op == OpGCode {
		return "gcode " + c.Block.String()
	}
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

func (c Command) arg(i int) float64 { return c.Args[i] }

// Apply runs the command against s.
func (c Command) Apply(s *turtle.Session) *turtle.Session {
	switch c.Op {
	case OpMove:
		return s.Move(c.arg(0), c.arg(1))
	case OpSet:
		return s.Set(c.arg(0), c.arg(1))
	case OpRotate:
		return s.Rotate(c.arg(0))
	case OpSnap:
		return s.Snap(int(c.arg(0)))
	case OpFrameMove:
		return s.FrameMove(c.arg(0), c.arg(1))
	case OpFrameRotate:
		return s.FrameRotate(c.arg(0))
	case OpStep:
		return s.Step(int(c.arg(0)))
	case OpGo:
		return s.Go()
	case OpGCode:
		return s.Emit(c.Block)
	}
	panic("unknown op " + c.Op.String())
}

// Run applies cmds to s in order and stops at the first failure.
func Run(s *turtle.Session, cmds []Command) error {
	for _, c := range cmds {
		if err := c.Apply(s).Err(); err != nil {
			return fmt.Errorf("line %d: %s: %w", c.Line, c, err)
		}
	}
	return nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
