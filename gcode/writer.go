package gcode

import (
	"io"
)

const (
	// DefaultPrecision is the number of decimals used for axis words.
	DefaultPrecision = 2

	// MaxPrecision is the largest supported axis precision.
	MaxPrecision = 6
)

// Writer emits blocks as text lines, one block per line.
//
// Axis words (X, Y, Z) are written with a fixed number of decimals.
// All other words use the shortest form that reads back exactly, so a
// feed rate of 700 is written as F700, not F700.0.
//
// The first write error is kept, and all later writes
// return it without touching the underlying writer.
type Writer struct {
	w    io.Writer
	prec int
	err  error
}

func NewWriter(w io.Writer, prec int) *Writer {
	return &Writer{w: w, prec: prec}
}

// Err returns the first error encountered while writing.
func (w *Writer) Err() error { return w.err }

// WriteBlock validates b and writes it as a single line.
func (w *Writer) WriteBlock(b Block) error {
	if w.err != nil {
		return w.err
	}
	err := b.Validate()
	if err != nil {
		return err
	}

	_, w.err = io.WriteString(w.w, b.Format(w.prec)+"\n")
	return w.err
}

// WriteBlocks writes each block in order, stopping at the first error.
func (w *Writer) WriteBlocks(blocks ...Block) error {
	for _, b := range blocks {
		err := w.WriteBlock(b)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteMotion writes a linear move to x,y,z at feed rate f.
func (w *Writer) WriteMotion(x, y, z, f float64) error {
	return w.WriteBlock(Motion(x, y, z, f))
}

// Motion returns a G1 block moving to x,y,z at feed rate f.
func Motion(x, y, z, f float64) Block {
	return Block{
		{W: 'G', Arg: 1},
		{W: 'X', Arg: x},
		{W: 'Y', Arg: y},
		{W: 'Z', Arg: z},
		{W: 'F', Arg: f},
	}
}
