package script

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mastercactapus/gturtle/gcode"
)

type syntax struct {
	op       Op
	min, max int
	def      float64
	integer  bool
	degrees  bool
}

var commands = map[string]syntax{
	"move":         {op: OpMove, min: 2, max: 2},
	"set":          {op: OpSet, min: 2, max: 2},
	"rotate":       {op: OpRotate, min: 1, max: 1, degrees: true},
	"turn":         {op: OpRotate, min: 1, max: 1, degrees: true},
	"snap":         {op: OpSnap, max: 1, def: 2, integer: true},
	"framemove":    {op: OpFrameMove, min: 2, max: 2},
	"frame-move":   {op: OpFrameMove, min: 2, max: 2},
	"framerotate":  {op: OpFrameRotate, min: 1, max: 1, degrees: true},
	"frame-rotate": {op: OpFrameRotate, min: 1, max: 1, degrees: true},
	"step":         {op: OpStep, max: 1, def: 1, integer: true},
	"go":           {op: OpGo},
}

const maxInt = 1 << 30

// MaxRepeat bounds both a repeat count and the number of
// commands a script expands to.
const MaxRepeat = 100000

type frame struct {
	count int
	line  int
	cmds  []Command
}

// Parse reads a turtle script, one command per line:
//
//	move 10 0       ; relative move in the current frame
//	rotate 90       ; degrees, counter-clockwise about the frame origin
//	repeat 4
//	  move 5 0
//	  go
//	end
//	gcode M106 S255 ; passed through unchanged
//
// Text after ';' or '#' is ignored. Repeat blocks are expanded.
func Parse(r io.Reader) ([]Command, error) {
	stack := []frame{{count: 1}}
	scan := bufio.NewScanner(r)
	var n int
	for scan.Scan() {
		n++
		line := scan.Text()
		if i := strings.IndexAny(line, ";#"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name := strings.ToLower(fields[0])

		switch name {
		case "repeat":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: repeat takes a count", n)
			}
			count, err := strconv.Atoi(fields[1])
			if err != nil || count < 0 || count > MaxRepeat {
				return nil, fmt.Errorf("line %d: invalid repeat count %q", n, fields[1])
			}
			stack = append(stack, frame{count: count, line: n})
			continue
		case "end":
			if len(fields) != 1 || len(stack) == 1 {
				return nil, fmt.Errorf("line %d: unexpected end", n)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			if len(top.cmds) > 0 && top.count > 0 {
				if len(top.cmds) > (MaxRepeat-len(parent.cmds))/top.count {
					return nil, fmt.Errorf("line %d: script expands to more than %d commands", top.line, MaxRepeat)
				}
				for i := 0; i < top.count; i++ {
					parent.cmds = append(parent.cmds, top.cmds...)
				}
			}
			continue
		}

		cmd, err := parseCommand(name, fields[1:], line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		cmd.Line = n
		top := &stack[len(stack)-1]
		if len(top.cmds) >= MaxRepeat {
			return nil, fmt.Errorf("line %d: script expands to more than %d commands", n, MaxRepeat)
		}
		top.cmds = append(top.cmds, cmd)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	if len(stack) > 1 {
		return nil, fmt.Errorf("line %d: repeat without end", stack[len(stack)-1].line)
	}

	return stack[0].cmds, nil
}

func parseCommand(name string, args []string, line string) (Command, error) {
	if name == "gcode" {
		raw := strings.TrimSpace(line)[len("gcode"):]
		blocks, err := gcode.Parse(raw)
		if err != nil {
			return Command{}, err
		}
		if len(blocks) != 1 {
			return Command{}, fmt.Errorf("gcode needs exactly one block")
		}
		return Command{Op: OpGCode, Block: blocks[0]}, nil
	}

	syn, ok := commands[name]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q", name)
	}
	if len(args) < syn.min || len(args) > syn.max {
		return Command{}, fmt.Errorf("%s takes %d to %d arguments, got %d", name, syn.min, syn.max, len(args))
	}

	cmd := Command{Op: syn.op}
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return Command{}, fmt.Errorf("%s: invalid number %q", name, a)
		}
		if syn.integer && (v != math.Trunc(v) || math.Abs(v) > maxInt) {
			return Command{}, fmt.Errorf("%s: %q is not a whole number", name, a)
		}
		if syn.degrees {
			v = radians(v)
		}
		cmd.Args = append(cmd.Args, v)
	}
	if len(cmd.Args) < syn.max {
		cmd.Args = append(cmd.Args, syn.def)
	}

	return cmd, nil
}
