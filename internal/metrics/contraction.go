package metrics

import "github.com/fluidx-lab/musclesim/internal/dynamo"

// Contraction tracks the peak fractional shortening (L0-L)/L0 over a
// run. Zero means the muscle never got shorter than rest.
type Contraction struct {
	name       string
	restLength float64
	max        float64
}

func NewContraction(restLength float64) *Contraction {
	return &Contraction{
		name:       "contraction_max",
		restLength: restLength,
	}
}

func (c *Contraction) Name() string { return c.name }

func (c *Contraction) Observe(x dynamo.State, p float64, t float64) {
	if len(x) < 1 {
		return
	}
	shortening := (c.restLength - x[0]) / c.restLength
	if shortening > c.max {
		c.max = shortening
	}
}

func (c *Contraction) Value() float64 {
	return c.max
}

func (c *Contraction) Reset() {
	c.max = 0
}
