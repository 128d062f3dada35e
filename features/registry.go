// Package features implements the BOLT #9 feature-negotiation bit vectors.
//
// Every capability occupies a pair of adjacent bits: an even bit advertising
// it as required and an odd bit advertising it as optional. Which capabilities
// are meaningful depends on the message carrying the vector, so the vectors
// come in three context-bound flavors: InitFeatures, NodeFeatures and
// ChannelFeatures.
package features

import "fmt"

// Feature identifies a single capability by its odd (optional) bit. The
// required bit is always the even sibling directly below it.
type Feature struct {
	name string
	bit  int
}

func mustFeature(name string, oddBit int) Feature {
	if oddBit%2 != 1 {
		panic(fmt.Sprintf("feature %s: bit %d is not odd", name, oddBit))
	}
	return Feature{name: name, bit: oddBit}
}

var (
	DataLossProtect = mustFeature("option_data_loss_protect", 1)
	// Per BOLT #9, initial_routing_sync has no even bit assigned.
	InitialRoutingSync    = mustFeature("initial_routing_sync", 3)
	UpfrontShutdownScript = mustFeature("option_upfront_shutdown_script", 5)
	VariableLengthOnion   = mustFeature("var_onion_optin", 9)
	PaymentSecret         = mustFeature("payment_secret", 15)
	BasicMPP              = mustFeature("basic_mpp", 17)
)

// All lists every capability known to the implementation, lowest bit first.
var All = []Feature{
	DataLossProtect,
	InitialRoutingSync,
	UpfrontShutdownScript,
	VariableLengthOnion,
	PaymentSecret,
	BasicMPP,
}

func (f Feature) Name() string { return f.name }

func (f Feature) EvenBit() int { return f.bit - 1 }

func (f Feature) OddBit() int { return f.bit }

// ByteOffset is the index of the storage byte holding both of the feature's
// bits. Both always land in the same byte because the pair starts on an even
// bit.
func (f Feature) ByteOffset() int { return f.EvenBit() / 8 }

// RequiredMask selects the feature's even bit within the byte at ByteOffset.
func (f Feature) RequiredMask() byte { return 1 << (f.EvenBit() % 8) }

// OptionalMask selects the feature's odd bit within the byte at ByteOffset.
func (f Feature) OptionalMask() byte { return 1 << (f.OddBit() % 8) }

// Supported reports whether flags advertises the feature, either as required
// or as optional. A vector too short to reach the feature's byte has both bits
// implicitly unset.
func (f Feature) Supported(flags []byte) bool {
	off := f.ByteOffset()
	return len(flags) > off && flags[off]&(f.RequiredMask()|f.OptionalMask()) != 0
}

// SetOptional sets the feature's odd bit, growing flags with zero bytes as
// needed. Other bits are left alone.
func (f Feature) SetOptional(flags []byte) []byte {
	off := f.ByteOffset()
	for len(flags) <= off {
		flags = append(flags, 0)
	}
	flags[off] |= f.OptionalMask()
	return flags
}

// ClearBits clears both of the feature's bits. A vector too short to reach the
// feature's byte is left untouched.
func (f Feature) ClearBits(flags []byte) {
	off := f.ByteOffset()
	if len(flags) > off {
		flags[off] &^= f.RequiredMask() | f.OptionalMask()
	}
}
