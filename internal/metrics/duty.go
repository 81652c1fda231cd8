package metrics

import "github.com/fluidx-lab/musclesim/internal/dynamo"

// PressureDuty reports the fraction of samples spent under pressure.
// For the square wave this converges on pulse width over period.
type PressureDuty struct {
	name    string
	active  int
	samples int
}

func NewPressureDuty() *PressureDuty {
	return &PressureDuty{
		name: "pressure_duty",
	}
}

func (d *PressureDuty) Name() string { return d.name }

func (d *PressureDuty) Observe(x dynamo.State, p float64, t float64) {
	d.samples++
	if p > 0 {
		d.active++
	}
}

func (d *PressureDuty) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.active) / float64(d.samples)
}

func (d *PressureDuty) Reset() {
	d.active = 0
	d.samples = 0
}
