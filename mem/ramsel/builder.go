package ramsel

import (
	"fmt"

	"github.com/sarchlab/digisim/instrumentation/hooking"
	"github.com/sarchlab/digisim/mem/datafield"
	"github.com/sarchlab/digisim/signal"
)

// MaxAddrBits is the widest address a Comp accepts. The memory is allocated
// up front as 2^addrBits 64-bit words, so the widest RAM takes 128 MiB.
const MaxAddrBits = 24

// Builder can build RAM components with a chip-select input.
type Builder struct {
	addrBits        int
	dataBits        int
	label           string
	isProgramMemory bool
	initialData     *datafield.DataField
}

// MakeBuilder returns a Builder with 8 address bits and 8 data bits.
func MakeBuilder() Builder {
	return Builder{
		addrBits: 8,
		dataBits: 8,
	}
}

// WithAddrBits sets the number of address bits. The RAM holds 2^addrBits
// words.
func (b Builder) WithAddrBits(addrBits int) Builder {
	b.addrBits = addrBits
	return b
}

// WithDataBits sets the width of a word.
func (b Builder) WithDataBits(dataBits int) Builder {
	b.dataBits = dataBits
	return b
}

// WithLabel sets the label shown by tools. It defaults to the name.
func (b Builder) WithLabel(label string) Builder {
	b.label = label
	return b
}

// AsProgramMemory marks the RAM as the program memory of the circuit.
func (b Builder) AsProgramMemory() Builder {
	b.isProgramMemory = true
	return b
}

// WithInitialData sets the image the RAM starts with. A shorter image is
// padded with zeros. The image is copied, so the builder can be reused.
func (b Builder) WithInitialData(data *datafield.DataField) Builder {
	b.initialData = data
	return b
}

// Build creates a new Comp.
func (b Builder) Build(name string) *Comp {
	b.mustBeValid(name)

	size := 1 << uint(b.addrBits)

	c := &Comp{
		HookableBase:    hooking.NewHookableBase(),
		name:            name,
		label:           b.label,
		addrBits:        b.addrBits,
		dataBits:        b.dataBits,
		size:            size,
		isProgramMemory: b.isProgramMemory,
	}

	if c.label == "" {
		c.label = name
	}

	c.memory = datafield.New(size, b.dataBits)
	if b.initialData != nil {
		image := datafield.NewFromWords(b.dataBits, b.initialData.Snapshot())
		c.memory = image.Resized(size)
	}

	c.dataOut = signal.NewWire(name+".D", b.dataBits)
	c.dataOut.SetHighZ()

	return c
}

func (b Builder) mustBeValid(name string) {
	if b.addrBits < 1 || b.addrBits > MaxAddrBits {
		panic(fmt.Sprintf("%s: invalid address width %d", name, b.addrBits))
	}

	if !signal.ValidWidth(b.dataBits) {
		panic(fmt.Sprintf("%s: invalid data width %d", name, b.dataBits))
	}

	if b.initialData != nil && b.initialData.Size() > 1<<uint(b.addrBits) {
		panic(fmt.Sprintf(
			"%s: initial image of %d words does not fit in %d words",
			name, b.initialData.Size(), 1<<uint(b.addrBits)))
	}
}
