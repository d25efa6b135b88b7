// Package datafield provides the fixed-capacity word array that backs memory
// elements.
package datafield

import (
	"errors"
	"fmt"

	"github.com/sarchlab/digisim/signal"
)

// ErrSizeMismatch is the sentinel wrapped by SizeMismatchError.
var ErrSizeMismatch = errors.New("data field size mismatch")

// SizeMismatchError reports an attempt to combine data fields of different
// capacity.
type SizeMismatchError struct {
	Expected int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf(
		"data field has %d words, expected %d", e.Actual, e.Expected)
}

// Unwrap returns ErrSizeMismatch.
func (e *SizeMismatchError) Unwrap() error {
	return ErrSizeMismatch
}

// A DataField keeps a fixed number of words of a fixed bit width.
//
// Every word stored is masked to the width, so a data field never holds a
// value that its owner could not put on its data bus.
type DataField struct {
	bits  int
	mask  uint64
	words []uint64
}

// New creates a zeroed data field with size words of bits bits.
func New(size int, bits int) *DataField {
	if size < 0 {
		panic(fmt.Sprintf("invalid data field size %d", size))
	}

	if !signal.ValidWidth(bits) {
		panic(fmt.Sprintf("invalid data field width %d", bits))
	}

	return &DataField{
		bits:  bits,
		mask:  signal.Mask(bits),
		words: make([]uint64, size),
	}
}

// NewFromWords creates a data field holding a masked copy of words.
func NewFromWords(bits int, words []uint64) *DataField {
	d := New(len(words), bits)
	for i, w := range words {
		d.words[i] = w & d.mask
	}

	return d
}

// Size returns the number of words.
func (d *DataField) Size() int {
	return len(d.words)
}

// Bits returns the width of a word.
func (d *DataField) Bits() int {
	return d.bits
}

// Word returns the word at addr. Addresses past the end read as zero.
func (d *DataField) Word(addr uint64) uint64 {
	if addr >= uint64(len(d.words)) {
		return 0
	}

	return d.words[addr]
}

// SetWord stores v, masked to the word width, at addr.
func (d *DataField) SetWord(addr uint64, v uint64) {
	if addr >= uint64(len(d.words)) {
		panic(fmt.Sprintf(
			"address 0x%x beyond data field of %d words", addr, len(d.words)))
	}

	d.words[addr] = v & d.mask
}

// Snapshot returns a copy of all the words.
func (d *DataField) Snapshot() []uint64 {
	out := make([]uint64, len(d.words))
	copy(out, d.words)

	return out
}

// Clone returns an independent copy of the data field.
func (d *DataField) Clone() *DataField {
	return &DataField{
		bits:  d.bits,
		mask:  d.mask,
		words: d.Snapshot(),
	}
}

// CopyFrom overwrites every word with the words of src, masked to the width
// of d. Nothing is copied if the sizes differ.
func (d *DataField) CopyFrom(src *DataField) error {
	if src.Size() != d.Size() {
		return &SizeMismatchError{Expected: d.Size(), Actual: src.Size()}
	}

	for i, w := range src.words {
		d.words[i] = w & d.mask
	}

	return nil
}

// Resized returns a copy of d with size words. Extra words are zero and words
// past size are dropped.
func (d *DataField) Resized(size int) *DataField {
	out := New(size, d.bits)
	copy(out.words, d.words)

	return out
}

// Fill sets every word to v.
func (d *DataField) Fill(v uint64) {
	for i := range d.words {
		d.words[i] = v & d.mask
	}
}

// TrimmedLen returns the number of words up to and including the last
// non-zero word.
func (d *DataField) TrimmedLen() int {
	n := len(d.words)
	for n > 0 && d.words[n-1] == 0 {
		n--
	}

	return n
}

// Equal returns true if both data fields have the same width and words.
func (d *DataField) Equal(other *DataField) bool {
	if other == nil || d.bits != other.bits || d.Size() != other.Size() {
		return false
	}

	for i, w := range d.words {
		if other.words[i] != w {
			return false
		}
	}

	return true
}
