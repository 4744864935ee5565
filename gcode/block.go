package gcode

import (
	"errors"
	"strings"
)

type Block []Word

func (b Block) Arg(w byte) (bool, float64) {
	for _, g := range b {
		if g.W == w {
			return true, g.Arg
		}
	}
	return false, 0
}

func (b Block) Clone() Block {
	c := make(Block, len(b))
	copy(c, b)
	return c
}

func (b Block) String() string {
	var s strings.Builder
	for _, g := range b {
		s.WriteString(g.String())
	}
	return s.String()
}

// Format renders the block as a single space-separated line,
// without the trailing newline.
func (b Block) Format(prec int) string {
	parts := make([]string, len(b))
	for i, g := range b {
		parts[i] = g.Format(prec)
	}
	return strings.Join(parts, " ")
}

func (b Block) Validate() error {
	if len(b) == 0 {
		return errors.New("empty block")
	}

	var checkWord [256]bool
	var checkModal [256]bool

	var m ModalGroup
	for _, g := range b {
		if !g.IsValid() {
			return errors.New("invalid word in block")
		}
		if g.W != 'G' && checkWord[g.W] {
			return errors.New("word was repeated in a block")
		}
		checkWord[g.W] = true
		m = g.ModalGroup()
		if m != ModalGroupNone && checkModal[m] {
			return errors.New("multiple words from same modal group")
		}
		checkModal[m] = true
	}

	return nil
}
