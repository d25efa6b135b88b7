// Package scenario describes sequences of input levels applied to a RAM with
// chip-select and runs them through a settling network.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/digisim/mem/ramsel"
	"github.com/sarchlab/digisim/signal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario is wrapped by every validation error.
var ErrInvalidScenario = errors.New("invalid scenario")

// A Step sets input levels and then lets the network settle. Inputs left
// out keep the level of the previous step. All inputs start at 0.
type Step struct {
	CS   *uint64 `yaml:"cs"`
	Addr *uint64 `yaml:"addr"`
	WE   *uint64 `yaml:"we"`
	OE   *uint64 `yaml:"oe"`
	Data *uint64 `yaml:"data"`

	// Expect is the bus level expected once the step settled: "Z" for high
	// impedance or a number. Empty means no check.
	Expect string `yaml:"expect"`
}

// A Scenario configures a RAM and lists the steps applied to it.
type Scenario struct {
	Label         string   `yaml:"label"`
	AddrBits      int      `yaml:"addr_bits"`
	DataBits      int      `yaml:"data_bits"`
	ProgramMemory bool     `yaml:"program_memory"`
	Init          []uint64 `yaml:"init"`
	Steps         []Step   `yaml:"steps"`
}

// Load reads and validates a scenario.
func Load(r io.Reader) (*Scenario, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return Parse(buf)
}

// Parse decodes and validates a scenario. Missing widths default to those of
// ramsel.MakeBuilder.
func Parse(buf []byte) (*Scenario, error) {
	s := &Scenario{}

	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)

	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	s.applyDefaults()

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scenario) applyDefaults() {
	if s.AddrBits == 0 {
		s.AddrBits = 8
	}

	if s.DataBits == 0 {
		s.DataBits = 8
	}

	if s.Label == "" {
		s.Label = "RAM"
	}
}

// Validate checks that the scenario describes a RAM that can be built and
// that every expectation can be parsed.
func (s *Scenario) Validate() error {
	if s.AddrBits < 1 || s.AddrBits > ramsel.MaxAddrBits {
		return fmt.Errorf("%w: addr_bits %d out of range",
			ErrInvalidScenario, s.AddrBits)
	}

	if !signal.ValidWidth(s.DataBits) {
		return fmt.Errorf("%w: data_bits %d out of range",
			ErrInvalidScenario, s.DataBits)
	}

	if len(s.Init) > 1<<uint(s.AddrBits) {
		return fmt.Errorf("%w: init has %d words, capacity is %d",
			ErrInvalidScenario, len(s.Init), 1<<uint(s.AddrBits))
	}

	for i, step := range s.Steps {
		if _, _, err := step.expectation(); err != nil {
			return fmt.Errorf("%w: step %d: %v", ErrInvalidScenario, i, err)
		}
	}

	return nil
}

// expectation parses Expect. The boolean is false if the step has no check.
func (st Step) expectation() (signal.BusValue, bool, error) {
	e := strings.TrimSpace(st.Expect)
	if e == "" {
		return signal.HighZ(), false, nil
	}

	if strings.EqualFold(e, "z") {
		return signal.HighZ(), true, nil
	}

	v, err := strconv.ParseUint(e, 0, 64)
	if err != nil {
		return signal.HighZ(), false, fmt.Errorf("bad expectation %q", e)
	}

	return signal.Driven(v), true, nil
}
