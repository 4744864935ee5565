package gcode

import (
	"strconv"
	"strings"
)

type Word struct {
	W   byte
	Arg float64
}

func (w Word) IsAxis() bool {
	switch w.W {
	case 'X', 'Y', 'Z':
		return true
	}
	return false
}

func (w Word) IsValid() bool {
	return w.W >= 'A' && w.W <= 'Z'
}

func formatFloat(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
	}
	return strings.TrimRight(s, ".")
}

// String renders the word compactly, with at most 3 decimals.
func (w Word) String() string {
	return string(w.W) + formatFloat(w.Arg, 3)
}

// Format renders axis words with exactly prec decimals and
// everything else in its shortest form.
func (w Word) Format(prec int) string {
	if w.IsAxis() {
		return string(w.W) + strconv.FormatFloat(w.Arg, 'f', prec, 64)
	}
	return string(w.W) + strconv.FormatFloat(w.Arg, 'f', -1, 64)
}
