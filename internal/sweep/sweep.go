// Package sweep runs the same pressure drive across a range of one
// muscle parameter, concurrently, and ranks the outcomes by metric.
package sweep

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fluidx-lab/musclesim/internal/dynamo"
	"github.com/fluidx-lab/musclesim/internal/integrators"
	"github.com/fluidx-lab/musclesim/internal/metrics"
	"github.com/fluidx-lab/musclesim/internal/muscle"
)

// Point is one completed run of a sweep.
type Point struct {
	Value      float64
	Params     muscle.Params
	Metrics    map[string]float64
	ClampCount int
}

var setters = map[string]func(*muscle.Params, float64){
	"damping":     func(p *muscle.Params, v float64) { p.Damping = v },
	"mass":        func(p *muscle.Params, v float64) { p.Mass = v },
	"load":        func(p *muscle.Params, v float64) { p.Load = v },
	"modulus":     func(p *muscle.Params, v float64) { p.ElasticModulus = v },
	"amplitude":   func(p *muscle.Params, v float64) { p.PressureAmp = v },
	"pulse-width": func(p *muscle.Params, v float64) { p.PulseWidth = v },
	"period":      func(p *muscle.Params, v float64) { p.Period = v },
}

// Names lists the parameters a sweep can vary.
func Names() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sweep holds the fixed part of the runs: every point starts from Base
// with one parameter replaced.
type Sweep struct {
	Base       muscle.Params
	Integrator string
	Config     dynamo.Config
}

// Run simulates every value concurrently and returns points in input
// order. The first failing run aborts the whole sweep.
func (s *Sweep) Run(ctx context.Context, param string, values []float64) ([]Point, error) {
	set, ok := setters[param]
	if !ok {
		return nil, fmt.Errorf("unknown sweep parameter %q (have: %v)", param, Names())
	}

	points := make([]Point, len(values))
	errs := make([]error, len(values))

	var wg sync.WaitGroup
	for i, v := range values {
		wg.Add(1)
		go func(idx int, val float64) {
			defer wg.Done()
			points[idx], errs[idx] = s.runOne(ctx, set, val)
		}(i, v)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}

func (s *Sweep) runOne(ctx context.Context, set func(*muscle.Params, float64), val float64) (Point, error) {
	p := s.Base
	set(&p, val)

	mus, err := muscle.New(p)
	if err != nil {
		return Point{}, fmt.Errorf("value %v: %w", val, err)
	}
	integ, err := integrators.New(s.Integrator)
	if err != nil {
		return Point{}, err
	}

	sim := dynamo.New(mus, integ, mus.Waveform())
	sim.SetConstraint(mus.Stroke())
	sim.AddMetric(metrics.NewContraction(p.RestLength))
	sim.AddMetric(metrics.NewPeakVelocity())
	sim.AddMetric(metrics.NewPressureDuty())

	result, err := sim.Run(ctx, mus.InitialState(), s.Config)
	if err != nil {
		return Point{}, fmt.Errorf("value %v: %w", val, err)
	}

	return Point{
		Value:      val,
		Params:     p,
		Metrics:    result.Metrics,
		ClampCount: result.ClampCount,
	}, nil
}

// Best returns the point with the largest value of the named metric.
func Best(points []Point, metric string) (Point, bool) {
	best := -1
	for i, pt := range points {
		v, ok := pt.Metrics[metric]
		if !ok {
			continue
		}
		if best == -1 || v > points[best].Metrics[metric] {
			best = i
		}
	}
	if best == -1 {
		return Point{}, false
	}
	return points[best], true
}

// Linspace builds n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	values := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range values {
		values[i] = lo + float64(i)*step
	}
	values[n-1] = hi
	return values
}
