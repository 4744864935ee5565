package turtle

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/mastercactapus/gturtle/coord"
	"github.com/mastercactapus/gturtle/gcode"
	"github.com/mastercactapus/gturtle/meshlevel"
)

// DefaultSnap is the usual number of decimals kept by Snap.
const DefaultSnap = 2

var (
	// ErrNonFinite is recorded when a command is given a NaN or infinite value.
	ErrNonFinite = errors.New("non-finite coordinate")

	// ErrPrecision is recorded when Snap is given a precision out of range.
	ErrPrecision = errors.New("precision out of range")

	// ErrClosed is returned when writing to a closed session.
	ErrClosed = errors.New("session closed")
)

// Options configure a Session.
type Options struct {
	FeedRate     float64
	StepSize     float64
	Temperature  float64
	RetractSteps int
	Precision    int

	// Leveler, if set, corrects the height of every move
	// that lands inside the probed area.
	Leveler meshlevel.ZOffsetter
}

// DefaultOptions returns the settings for a MakerBot-style extruder.
func DefaultOptions() Options {
	return Options{
		FeedRate:     700,
		StepSize:     0.4,
		Temperature:  220,
		RetractSteps: 10,
		Precision:    gcode.DefaultPrecision,
	}
}

func (opt Options) validate() error {
	if !finite(opt.FeedRate) || opt.FeedRate <= 0 {
		return fmt.Errorf("feed rate must be > 0, got %g", opt.FeedRate)
	}
	if !finite(opt.StepSize) || opt.StepSize <= 0 {
		return fmt.Errorf("step size must be > 0, got %g", opt.StepSize)
	}
	if !finite(opt.Temperature) || opt.Temperature < 0 {
		return fmt.Errorf("temperature must be >= 0, got %g", opt.Temperature)
	}
	if opt.RetractSteps < 0 {
		return fmt.Errorf("retract steps must be >= 0, got %d", opt.RetractSteps)
	}
	if opt.Precision < 0 || opt.Precision > gcode.MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d, got %d", gcode.MaxPrecision, opt.Precision)
	}
	return nil
}

// Session drives a print head like a turtle and writes a G1 line
// for every call to Go.
//
// The turtle moves within a frame of reference that can itself be
// moved and rotated. All mutating methods return the session so
// commands can be chained:
//
//	s.Move(10, 0).Go().Rotate(math.Pi / 2).Move(10, 0).Go()
//
// The first error stops all further output and is reported by
// Err and Close.
type Session struct {
	opt Options

	pos    *Position
	frame  *Frame
	height *Height

	out    io.Writer
	w      *gcode.Writer
	err    error
	closed bool
}

// New starts a session writing to out and emits the heater and
// extruder setup commands. If out is an io.Closer it is closed by Close.
func New(out io.Writer, opt Options) (*Session, error) {
	err := opt.validate()
	if err != nil {
		if c, ok := out.(io.Closer); ok {
			c.Close()
		}
		return nil, err
	}

	s := &Session{
		opt:    opt,
		pos:    NewPosition(),
		frame:  NewFrame(),
		height: NewHeight(opt.StepSize),
		out:    out,
		w:      gcode.NewWriter(out, opt.Precision),
	}

	err = s.w.WriteBlocks(s.preamble()...)
	if err != nil {
		s.closeOutput()
		return nil, err
	}

	return s, nil
}

func (s *Session) preamble() []gcode.Block {
	return []gcode.Block{
		{{W: 'G', Arg: 21}}, // millimeters
		{{W: 'G', Arg: 90}}, // absolute positioning
		{{W: 'M', Arg: 103}},
		{{W: 'M', Arg: 105}},
		{{W: 'M', Arg: 104}, {W: 'S', Arg: s.opt.Temperature}},
		{{W: 'M', Arg: 101}},
	}
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// accept reports whether a command may run, recording ErrNonFinite
// for bad arguments.
func (s *Session) accept(op string, vals ...float64) bool {
	if s.err != nil {
		return false
	}
	if s.closed {
		s.err = ErrClosed
		return false
	}
	if !finite(vals...) {
		s.err = fmt.Errorf("%s%v: %w", op, vals, ErrNonFinite)
		return false
	}
	return true
}

// update runs fn if the command is accepted, and undoes it if the
// resulting turtle, frame or height is no longer finite.
func (s *Session) update(op string, vals []float64, fn func()) *Session {
	if !s.accept(op, vals...) {
		return s
	}

	pos, frame, height := *s.pos, *s.frame, *s.height
	fn()

	x, y := s.XY()
	if s.pos.Vector().IsFinite() && s.frame.Matrix().IsFinite() && finite(x, y, s.height.Current()) {
		return s
	}
	*s.pos, *s.frame, *s.height = pos, frame, height
	s.err = fmt.Errorf("%s%v: result out of range: %w", op, vals, ErrNonFinite)
	return s
}

// Move translates the turtle by dx,dy within the frame.
func (s *Session) Move(dx, dy float64) *Session {
	return s.update("move", []float64{dx, dy}, func() { s.pos.Translate(dx, dy) })
}

// Set puts the turtle at x,y within the frame.
func (s *Session) Set(x, y float64) *Session {
	return s.update("set", []float64{x, y}, func() { s.pos.SetAbsolute(x, y) })
}

// Rotate turns the turtle position counter-clockwise by theta radians
// around the frame origin.
func (s *Session) Rotate(theta float64) *Session {
	return s.update("rotate", []float64{theta}, func() { s.pos.RotateLocal(theta) })
}

// Snap rounds the turtle position to precision decimals,
// which must be within 0..coord.MaxPrecision.
func (s *Session) Snap(precision int) *Session {
	if !s.accept("snap") {
		return s
	}
	if precision < 0 || precision > coord.MaxPrecision {
		s.err = fmt.Errorf("snap %d: %w", precision, ErrPrecision)
		return s
	}
	return s.update("snap", nil, func() { s.pos.Snap(precision) })
}

// FrameMove moves the frame of reference by dx,dy.
func (s *Session) FrameMove(dx, dy float64) *Session {
	return s.update("framemove", []float64{dx, dy}, func() { s.frame.Translate(dx, dy) })
}

// FrameRotate rotates the frame of reference by theta radians.
func (s *Session) FrameRotate(theta float64) *Session {
	return s.update("framerotate", []float64{theta}, func() { s.frame.Rotate(theta) })
}

// Step raises the head by count layers, or lowers it for negative counts.
func (s *Session) Step(count int) *Session {
	return s.update("step", nil, func() { s.height.Step(count) })
}

// XY returns the output position of the turtle.
func (s *Session) XY() (x, y float64) {
	return Project(s.pos, s.frame)
}

// CurrentHeight returns the layer height, without bed leveling.
func (s *Session) CurrentHeight() float64 {
	return s.height.Current()
}

// Go emits a move to the current position and height.
func (s *Session) Go() *Session {
	if !s.accept("go") {
		return s
	}

	x, y := s.XY()
	z := s.height.Current()
	if s.opt.Leveler != nil {
		if ok, offset := s.opt.Leveler.OffsetZ(x, y); ok {
			z += offset
		}
	}
	if !finite(x, y, z) {
		s.err = fmt.Errorf("go to %g,%g,%g: %w", x, y, z, ErrNonFinite)
		return s
	}

	s.err = s.w.WriteMotion(x, y, z, s.opt.FeedRate)
	return s
}

// Emit writes b as-is, without involving the turtle.
func (s *Session) Emit(b gcode.Block) *Session {
	if !s.accept("emit") {
		return s
	}
	for _, w := range b {
		if !finite(w.Arg) {
			s.err = fmt.Errorf("emit %s: %w", b.String(), ErrNonFinite)
			return s
		}
	}
	s.err = s.w.WriteBlock(b)
	return s
}

// Err returns the first error encountered by the session.
func (s *Session) Err() error { return s.err }

// Close turns off the extruder, lifts the head clear of the print,
// turns off the heater and releases the output.
//
// The output is released even if the session has failed.
func (s *Session) Close() error {
	if s.closed {
		return s.err
	}

	if s.err == nil {
		s.Emit(gcode.Block{{W: 'M', Arg: 103}})
		s.Step(s.opt.RetractSteps).Go()
		s.Emit(gcode.Block{{W: 'M', Arg: 104}, {W: 'S', Arg: 0}})
	}
	s.closed = true

	err := s.closeOutput()
	if s.err == nil {
		s.err = err
	}
	return s.err
}

func (s *Session) closeOutput() error {
	if c, ok := s.out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
