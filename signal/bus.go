package signal

import "fmt"

// BusValue is the level a driver presents on a shared bus. It is either a
// driven word or high impedance, which means the driver does not drive the
// bus at all. A high-impedance value is not the same as a driven zero.
type BusValue struct {
	word   uint64
	driven bool
}

// Driven returns a bus value that drives word.
func Driven(word uint64) BusValue {
	return BusValue{word: word, driven: true}
}

// HighZ returns the high-impedance bus value.
func HighZ() BusValue {
	return BusValue{}
}

// IsHighZ returns true if the value does not drive the bus.
func (b BusValue) IsHighZ() bool {
	return !b.driven
}

// Word returns the driven word. The second return value is false if the bus
// is in high impedance, in which case the word is meaningless.
func (b BusValue) Word() (uint64, bool) {
	return b.word, b.driven
}

// Equal returns true if both values are high impedance or both drive the
// same word.
func (b BusValue) Equal(other BusValue) bool {
	if b.driven != other.driven {
		return false
	}

	return !b.driven || b.word == other.word
}

func (b BusValue) String() string {
	if !b.driven {
		return "Z"
	}

	return fmt.Sprintf("0x%x", b.word)
}
