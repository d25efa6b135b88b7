package signal

import "fmt"

// A Wire is a settable signal source. It starts undriven, holds the last
// level set on it and notifies its observers whenever that level changes.
type Wire struct {
	name      string
	width     int
	bus       BusValue
	observers []Observer
}

var _ Source = (*Wire)(nil)

// NewWire creates an undriven wire that carries width bits.
func NewWire(name string, width int) *Wire {
	if !ValidWidth(width) {
		panic(fmt.Sprintf("wire %s: invalid width %d", name, width))
	}

	return &Wire{
		name:  name,
		width: width,
		bus:   HighZ(),
	}
}

// Name returns the name of the wire.
func (w *Wire) Name() string {
	return w.name
}

// Width returns the number of bits carried by the wire.
func (w *Wire) Width() int {
	return w.width
}

// Value returns the level of the wire.
func (w *Wire) Value() (uint64, error) {
	word, driven := w.bus.Word()
	if !driven {
		return 0, unavailable(w.name)
	}

	return word, nil
}

// Bool returns the lowest bit of the level of the wire.
func (w *Wire) Bool() (bool, error) {
	v, err := w.Value()
	if err != nil {
		return false, err
	}

	return v&1 == 1, nil
}

// Bus returns the tri-state value of the wire.
func (w *Wire) Bus() BusValue {
	return w.bus
}

// AddObserver registers o. Registering the same observer twice has no
// effect.
func (w *Wire) AddObserver(o Observer) {
	for _, registered := range w.observers {
		if registered == o {
			return
		}
	}

	w.observers = append(w.observers, o)
}

// NumObservers returns how many observers watch the wire.
func (w *Wire) NumObservers() int {
	return len(w.observers)
}

// Set drives v, masked to the width of the wire.
func (w *Wire) Set(v uint64) {
	w.SetBus(Driven(v))
}

// SetBool drives 1 if b is true and 0 otherwise.
func (w *Wire) SetBool(b bool) {
	if b {
		w.Set(1)
		return
	}

	w.Set(0)
}

// SetHighZ releases the wire.
func (w *Wire) SetHighZ() {
	w.SetBus(HighZ())
}

// SetBus applies a tri-state value to the wire. Observers are notified only
// if the level actually changes.
func (w *Wire) SetBus(b BusValue) {
	if word, driven := b.Word(); driven {
		b = Driven(word & Mask(w.width))
	}

	if w.bus.Equal(b) {
		return
	}

	w.bus = b

	for _, o := range w.observers {
		o.NotifyChange(w)
	}
}

func (w *Wire) String() string {
	return fmt.Sprintf("%s=%s", w.name, w.bus)
}
