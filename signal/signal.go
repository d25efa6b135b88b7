// Package signal defines the signal sources that simulation nodes read from
// and the tri-state values they drive onto shared buses.
package signal

// MaxWidth is the widest signal that can be represented.
const MaxWidth = 64

// A Source is a signal that a node can observe.
type Source interface {
	// Name returns the name of the signal.
	Name() string

	// Width returns the number of bits carried by the signal.
	Width() int

	// Value returns the current level of the signal. It returns an error
	// wrapping ErrUnavailable if the signal is not driven.
	Value() (uint64, error)

	// Bool returns true if the least significant bit of the signal is set.
	Bool() (bool, error)

	// AddObserver registers an observer that is notified whenever the level
	// of the signal changes.
	AddObserver(o Observer)
}

// An Observer is notified when a source it watches changes its level.
type Observer interface {
	NotifyChange(src Source)
}

// Mask returns a mask with the lowest width bits set.
func Mask(width int) uint64 {
	if width >= MaxWidth {
		return ^uint64(0)
	}

	return (uint64(1) << uint(width)) - 1
}

// ValidWidth returns true if width can be carried by a signal.
func ValidWidth(width int) bool {
	return width >= 1 && width <= MaxWidth
}
