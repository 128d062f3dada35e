package features

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"slices"
)

// vector is the flag storage shared by every context. Byte 0 holds bits 0-7,
// which is the reverse of the wire's most-significant-byte-first order. The
// length is unbounded: a vector may be shorter than the context's known tables
// (missing bytes read as zero) or longer (carrying unknown high bits).
type vector struct {
	flags []byte
}

func (v vector) clone() vector {
	return vector{flags: slices.Clone(v.flags)}
}

func (v vector) equal(o vector) bool {
	return bytes.Equal(v.flags, o.flags)
}

func (v vector) byteCount() int {
	return len(v.flags)
}

func (v vector) String() string {
	return fmt.Sprintf("%x", v.flags)
}

// or merges the other vector's bits into a copy of v, growing it to the longer
// of the two lengths first.
func (v vector) or(o vector) vector {
	flags := make([]byte, max(len(v.flags), len(o.flags)))
	copy(flags, v.flags)
	for i, b := range o.flags {
		flags[i] |= b
	}
	return vector{flags: flags}
}

// requiresUnknownBits reports whether any required (even) bit is set at a
// position the known mask does not cover. Bytes past the end of the mask are
// wholly unknown.
func (v vector) requiresUnknownBits(knownMask []byte) bool {
	for i, b := range v.flags {
		unknown := byte(0b11111111)
		if i < len(knownMask) {
			unknown = ^knownMask[i]
		}
		if b&0b01010101&unknown != 0 {
			return true
		}
	}
	return false
}

// supportsUnknownBits is requiresUnknownBits without the parity restriction:
// any set bit outside the known mask counts.
func (v vector) supportsUnknownBits(knownMask []byte) bool {
	for i, b := range v.flags {
		unknown := byte(0b11111111)
		if i < len(knownMask) {
			unknown = ^knownMask[i]
		}
		if b&unknown != 0 {
			return true
		}
	}
	return false
}

// withKnownRelevant keeps only the bits the target context's known mask
// recognizes. Source bytes past the mask's length are dropped outright, not
// merely masked.
func withKnownRelevant(src vector, knownMask []byte) vector {
	n := min(len(src.flags), len(knownMask))
	flags := make([]byte, n)
	for i := range n {
		flags[i] = src.flags[i] & knownMask[i]
	}
	return vector{flags: flags}
}

// encode writes the 2-byte big-endian flag count followed by the flag bytes in
// wire order, most significant byte first.
func (v vector) encode(w io.Writer) error {
	buf := make([]byte, 2+len(v.flags))
	binary.BigEndian.PutUint16(buf[0:2], uint16(len(v.flags)))
	for i, b := range v.flags {
		buf[len(buf)-1-i] = b
	}
	_, err := w.Write(buf)
	return err
}

// encodeUpTo13 emits the legacy truncated form carrying bits 0 through 13
// only: at most the two lowest storage bytes, with bits 14 and 15 masked off
// the high byte.
func (v vector) encodeUpTo13(w io.Writer) error {
	n := min(2, len(v.flags))
	buf := make([]byte, 2+n)
	binary.BigEndian.PutUint16(buf[0:2], uint16(n))
	for i := n - 1; i >= 0; i-- {
		b := v.flags[i]
		if i > 0 {
			b &= 0b00111111
		}
		buf[2+n-1-i] = b
	}
	_, err := w.Write(buf)
	return err
}

// decodeVector reads the wire form and reverses it into storage order. Read
// errors from r pass through untouched.
func decodeVector(r io.Reader) (vector, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return vector{}, err
	}

	flags := make([]byte, binary.BigEndian.Uint16(lenBuf[:]))
	if _, err := io.ReadFull(r, flags); err != nil {
		return vector{}, err
	}
	slices.Reverse(flags)

	return vector{flags: flags}, nil
}
