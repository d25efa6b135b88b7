package scenario

import (
	"errors"
	"fmt"

	"github.com/sarchlab/digisim/instrumentation/hooking"
	"github.com/sarchlab/digisim/mem/datafield"
	"github.com/sarchlab/digisim/mem/ramsel"
	"github.com/sarchlab/digisim/node"
	"github.com/sarchlab/digisim/signal"
)

// ErrExpectationFailed is returned by Run when a step's bus level differs
// from its expectation.
var ErrExpectationFailed = errors.New("expectation failed")

// StepResult is the outcome of one step.
type StepResult struct {
	Index      int
	Bus        signal.BusValue
	Iterations int
	Checked    bool
	Expected   signal.BusValue
}

// Passed returns true if the step had no expectation or met it.
func (r StepResult) Passed() bool {
	return !r.Checked || r.Bus.Equal(r.Expected)
}

// A Runner applies the steps of a scenario to a RAM placed in a network.
type Runner struct {
	scenario *Scenario
	ram      *ramsel.Comp
	network  *node.Network

	addr, cs, we, oe, data *signal.Wire
}

// NewRunner builds the RAM and wires described by s. A non-positive
// maxIterations selects node.DefaultMaxIterations.
func NewRunner(s *Scenario, maxIterations int) (*Runner, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		scenario: s,
		addr:     signal.NewWire("A", s.AddrBits),
		cs:       signal.NewWire("CS", 1),
		we:       signal.NewWire("WE", 1),
		oe:       signal.NewWire("OE", 1),
		data:     signal.NewWire("D_in", s.DataBits),
	}

	for _, w := range r.inputs() {
		w.Set(0)
	}

	b := ramsel.MakeBuilder().
		WithAddrBits(s.AddrBits).
		WithDataBits(s.DataBits).
		WithLabel(s.Label)
	if s.ProgramMemory {
		b = b.AsProgramMemory()
	}
	if len(s.Init) > 0 {
		b = b.WithInitialData(datafield.NewFromWords(s.DataBits, s.Init))
	}
	r.ram = b.Build(s.Label)

	sources := make([]signal.Source, 0, ramsel.NumInputs)
	for _, w := range r.inputs() {
		sources = append(sources, w)
	}

	if err := r.ram.SetInputs(sources); err != nil {
		return nil, err
	}

	r.network = node.NewNetwork(maxIterations)
	r.network.Add(r.ram)

	return r, nil
}

func (r *Runner) inputs() []*signal.Wire {
	return []*signal.Wire{r.addr, r.cs, r.we, r.oe, r.data}
}

// RAM returns the RAM driven by the runner.
func (r *Runner) RAM() *ramsel.Comp {
	return r.ram
}

// AcceptHook registers a hook on the RAM.
func (r *Runner) AcceptHook(h hooking.Hook) {
	r.ram.AcceptHook(h)
}

// Run applies every step. It stops at the first settling error. If all
// steps settle but some expectations are not met, the results are returned
// together with an error wrapping ErrExpectationFailed.
func (r *Runner) Run() ([]StepResult, error) {
	results := make([]StepResult, 0, len(r.scenario.Steps))
	failed := 0

	for i, step := range r.scenario.Steps {
		res, err := r.runStep(i, step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i, err)
		}

		if !res.Passed() {
			failed++
		}

		results = append(results, res)
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d steps: %w",
			failed, len(results), ErrExpectationFailed)
	}

	return results, nil
}

func (r *Runner) runStep(i int, step Step) (StepResult, error) {
	apply(r.cs, step.CS)
	apply(r.addr, step.Addr)
	apply(r.we, step.WE)
	apply(r.oe, step.OE)
	apply(r.data, step.Data)

	iterations, err := r.network.Settle()
	if err != nil {
		return StepResult{}, err
	}

	expected, checked, _ := step.expectation()

	return StepResult{
		Index:      i,
		Bus:        r.ram.DataOut().Bus(),
		Iterations: iterations,
		Checked:    checked,
		Expected:   expected,
	}, nil
}

func apply(w *signal.Wire, level *uint64) {
	if level != nil {
		w.Set(*level)
	}
}
