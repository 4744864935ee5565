package turtle

// Height tracks the vertical position as a whole number of layers.
type Height struct {
	steps    int
	stepSize float64
}

func NewHeight(stepSize float64) *Height {
	return &Height{stepSize: stepSize}
}

// Step moves count layers up, or down if count is negative.
func (h *Height) Step(count int) *Height {
	h.steps += count
	return h
}

func (h *Height) Steps() int { return h.steps }

// Current returns the height in output units.
func (h *Height) Current() float64 {
	return float64(h.steps) * h.stepSize
}
