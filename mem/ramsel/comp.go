// Package ramsel provides a single-port RAM with a chip-select input.
//
// The chip-select input lets an external address decoder assemble a larger
// memory out of several instances. The RAM is written at the end of a write
// pulse: the write address is latched when chip-select and write-enable both
// become active, and the data input is stored when either of them drops.
// While a write pulse is active the RAM releases its data bus.
package ramsel

import (
	"errors"
	"fmt"

	"github.com/sarchlab/digisim/instrumentation/hooking"
	"github.com/sarchlab/digisim/mem/datafield"
	"github.com/sarchlab/digisim/node"
	"github.com/sarchlab/digisim/signal"
)

// Positions of the inputs passed to SetInputs.
const (
	InputAddr = iota
	InputCS
	InputWE
	InputOE
	InputData

	NumInputs
)

// ClockInput is the input that clocks the RAM. Hosts that order nodes by
// their clock inputs should use it.
const ClockInput = InputWE

// InputNames lists the pin names of the inputs, in SetInputs order.
var InputNames = [NumInputs]string{"A", "CS", "WE", "OE", "D_in"}

// ErrMissingInputs is returned when fewer inputs than NumInputs are bound.
var ErrMissingInputs = errors.New("missing inputs")

var (
	// HookPosWriteArm marks the start of a write pulse. The item is a
	// WriteArm.
	HookPosWriteArm = &hooking.HookPos{Name: "RAM Write Arm"}

	// HookPosWriteCommit marks a word being stored at the end of a write
	// pulse. The item is a WriteCommit.
	HookPosWriteCommit = &hooking.HookPos{Name: "RAM Write Commit"}
)

// WriteArm describes the start of a write pulse.
type WriteArm struct {
	Address uint64
}

// WriteCommit describes a word stored at the end of a write pulse.
type WriteCommit struct {
	Address  uint64
	Data     uint64
	Previous uint64
}

// Comp is a RAM with a single data port and a chip-select input.
type Comp struct {
	*hooking.HookableBase

	name            string
	label           string
	addrBits        int
	dataBits        int
	size            int
	isProgramMemory bool
	memory          *datafield.DataField
	dataOut         *signal.Wire
	scheduler       node.Scheduler

	addrIn signal.Source
	csIn   signal.Source
	weIn   signal.Source
	oeIn   signal.Source
	dataIn signal.Source

	readAddr  uint64
	writeAddr uint64
	cs        bool
	oe        bool
	we        bool
	lastWrite bool
}

var (
	_ node.Schedulable = (*Comp)(nil)
	_ signal.Observer  = (*Comp)(nil)
)

// Name returns the name of the RAM.
func (c *Comp) Name() string {
	return c.name
}

// Label returns the label shown by tools.
func (c *Comp) Label() string {
	return c.label
}

// Size returns the number of words.
func (c *Comp) Size() int {
	return c.size
}

// AddrBits returns the width of the address input.
func (c *Comp) AddrBits() int {
	return c.addrBits
}

// DataBits returns the width of a word.
func (c *Comp) DataBits() int {
	return c.dataBits
}

// IsProgramMemory returns true if the RAM holds the program of the circuit.
// Loaders use it to decide where to put a program image; the RAM itself
// behaves the same either way.
func (c *Comp) IsProgramMemory() bool {
	return c.isProgramMemory
}

// Outputs returns the data bus driven by the RAM.
func (c *Comp) Outputs() []signal.Source {
	return []signal.Source{c.dataOut}
}

// DataOut returns the wire the RAM drives in its output phase.
func (c *Comp) DataOut() *signal.Wire {
	return c.dataOut
}

// SetScheduler sets the scheduler to notify when an observed input changes.
func (c *Comp) SetScheduler(s node.Scheduler) {
	c.scheduler = s
}

// NotifyChange schedules the RAM for evaluation.
func (c *Comp) NotifyChange(signal.Source) {
	if c.scheduler != nil {
		c.scheduler.Schedule(c)
	}
}

// SetInputs binds the address, chip-select, write-enable, output-enable and
// data inputs, in this order. The RAM observes every input but the data
// input, which is only sampled when a write pulse ends.
//
// Nothing is bound if an input is missing or has the wrong width.
func (c *Comp) SetInputs(inputs []signal.Source) error {
	if len(inputs) < NumInputs {
		return fmt.Errorf("%s: %d inputs given, %d required: %w",
			c.name, len(inputs), NumInputs, ErrMissingInputs)
	}

	widths := [NumInputs]int{c.addrBits, 1, 1, 1, c.dataBits}
	for i, width := range widths {
		if inputs[i] == nil {
			return fmt.Errorf("%s: input %s is nil: %w",
				c.name, InputNames[i], ErrMissingInputs)
		}

		if err := signal.CheckWidth(inputs[i], width, c.name); err != nil {
			return err
		}
	}

	c.addrIn = inputs[InputAddr]
	c.csIn = inputs[InputCS]
	c.weIn = inputs[InputWE]
	c.oeIn = inputs[InputOE]
	c.dataIn = inputs[InputData]

	c.addrIn.AddObserver(c)
	c.csIn.AddObserver(c)
	c.weIn.AddObserver(c)
	c.oeIn.AddObserver(c)

	return nil
}

// observation holds the levels sampled in one ReadInputs call.
type observation struct {
	cs, oe, we bool
	readAddr   uint64
	writeAddr  uint64
	commit     bool
	data       uint64
}

// ReadInputs samples the inputs and updates the latched state. A write
// address is latched on the rising edge of CS and WE, and the data input is
// stored on the falling edge. Calling ReadInputs again with unchanged inputs
// has no further effect.
//
// If an input cannot be read, the error is returned and neither the state
// nor the memory changes.
func (c *Comp) ReadInputs() error {
	if c.csIn == nil {
		return fmt.Errorf("%s: inputs not bound: %w", c.name, ErrMissingInputs)
	}

	obs, err := c.observe()
	if err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}

	c.cs = obs.cs
	if obs.cs {
		c.readAddr = obs.readAddr
		c.oe = obs.oe
	}
	c.we = obs.we

	write := obs.cs && obs.we
	if write && !c.lastWrite {
		c.writeAddr = obs.writeAddr
		c.InvokeHook(hooking.HookCtx{
			Domain: c,
			Pos:    HookPosWriteArm,
			Item:   WriteArm{Address: c.writeAddr},
		})
	}

	if obs.commit {
		c.commit(obs.data)
	}

	c.lastWrite = write

	return nil
}

func (c *Comp) observe() (observation, error) {
	var (
		obs observation
		err error
	)

	obs.cs, err = c.csIn.Bool()
	if err != nil {
		return obs, err
	}

	if obs.cs {
		if obs.readAddr, err = c.addrIn.Value(); err != nil {
			return obs, err
		}
		obs.readAddr &= signal.Mask(c.addrBits)

		if obs.oe, err = c.oeIn.Bool(); err != nil {
			return obs, err
		}
	}

	if obs.we, err = c.weIn.Bool(); err != nil {
		return obs, err
	}

	write := obs.cs && obs.we
	switch {
	case write && !c.lastWrite:
		obs.writeAddr = obs.readAddr
	case !write && c.lastWrite:
		obs.commit = true
		if obs.data, err = c.dataIn.Value(); err != nil {
			return obs, err
		}
	}

	return obs, nil
}

func (c *Comp) commit(data uint64) {
	previous := c.memory.Word(c.writeAddr)
	c.memory.SetWord(c.writeAddr, data)

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosWriteCommit,
		Item: WriteCommit{
			Address:  c.writeAddr,
			Data:     c.memory.Word(c.writeAddr),
			Previous: previous,
		},
	})
}

// Output returns what the RAM drives on its data bus given the latched
// state. The RAM drives the addressed word only if it is selected, its
// output is enabled and it is not being written.
func (c *Comp) Output() signal.BusValue {
	if c.cs && c.oe && !c.we {
		return signal.Driven(c.memory.Word(c.readAddr))
	}

	return signal.HighZ()
}

// WriteOutputs drives Output onto the data bus.
func (c *Comp) WriteOutputs() error {
	c.dataOut.SetBus(c.Output())
	return nil
}
