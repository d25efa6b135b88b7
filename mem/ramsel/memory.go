package ramsel

import (
	"fmt"

	"github.com/sarchlab/digisim/mem/datafield"
)

// Word returns the word stored at addr.
func (c *Comp) Word(addr uint64) uint64 {
	return c.memory.Word(addr)
}

// Snapshot returns a copy of the memory. Changing the copy does not affect
// the RAM.
func (c *Comp) Snapshot() *datafield.DataField {
	return c.memory.Clone()
}

// ReplaceMemory hands data over to the RAM, which uses it as its memory from
// now on. The caller must not modify data afterwards. Data must have exactly
// Size words of DataBits bits, otherwise the memory is left unchanged.
func (c *Comp) ReplaceMemory(data *datafield.DataField) error {
	if err := c.mustFit(data); err != nil {
		return err
	}

	if data.Bits() != c.dataBits {
		return fmt.Errorf("%s: data field has %d-bit words, expected %d: %w",
			c.name, data.Bits(), c.dataBits, datafield.ErrSizeMismatch)
	}

	c.memory = data

	return nil
}

// LoadProgram copies the words of data into the memory of the RAM, masking
// them to the word width. Data must have exactly Size words, otherwise the
// memory is left unchanged.
func (c *Comp) LoadProgram(data *datafield.DataField) error {
	if err := c.mustFit(data); err != nil {
		return err
	}

	return c.memory.CopyFrom(data)
}

func (c *Comp) mustFit(data *datafield.DataField) error {
	if data == nil {
		return fmt.Errorf("%s: nil data field: %w",
			c.name, datafield.ErrSizeMismatch)
	}

	if data.Size() != c.size {
		return fmt.Errorf("%s: %w", c.name,
			&datafield.SizeMismatchError{Expected: c.size, Actual: data.Size()})
	}

	return nil
}
