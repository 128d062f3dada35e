package features

import (
	"io"
	"slices"
)

// InitFeatures is the feature vector exchanged in the handshake init message.
// The zero value is an empty vector.
type InitFeatures struct {
	v vector
}

// EmptyInitFeatures returns a vector with no bits set.
func EmptyInitFeatures() InitFeatures {
	return InitFeatures{}
}

// KnownInitFeatures returns the vector this implementation advertises during
// the handshake: every known init-context capability, as optional.
func KnownInitFeatures() InitFeatures {
	return InitFeatures{v: vector{flags: slices.Clone(initKnownFlags)}}
}

// DecodeInitFeatures reads a length-prefixed feature vector in wire order.
func DecodeInitFeatures(r io.Reader) (InitFeatures, error) {
	v, err := decodeVector(r)
	if err != nil {
		return InitFeatures{}, err
	}
	return InitFeatures{v: v}, nil
}

// InitFeaturesFromWireBytes interprets b as bare flag bytes in wire order,
// most significant byte first, without a length prefix.
func InitFeaturesFromWireBytes(b []byte) InitFeatures {
	flags := slices.Clone(b)
	slices.Reverse(flags)
	return InitFeatures{v: vector{flags: flags}}
}

// Encode writes the vector in the wire form read by DecodeInitFeatures.
func (f InitFeatures) Encode(w io.Writer) error {
	return f.v.encode(w)
}

// EncodeUpTo13 writes the legacy truncated form used for the init message's
// global features field, which never carries bits beyond 13.
func (f InitFeatures) EncodeUpTo13(w io.Writer) error {
	return f.v.encodeUpTo13(w)
}

// Or returns a new vector holding the union of both operands' bits.
func (f InitFeatures) Or(o InitFeatures) InitFeatures {
	return InitFeatures{v: f.v.or(o.v)}
}

func (f InitFeatures) Clone() InitFeatures {
	return InitFeatures{v: f.v.clone()}
}

func (f InitFeatures) Equal(o InitFeatures) bool {
	return f.v.equal(o.v)
}

// ByteCount is the number of flag bytes, excluding the wire length prefix.
func (f InitFeatures) ByteCount() int {
	return f.v.byteCount()
}

func (f InitFeatures) String() string {
	return f.v.String()
}

// RequiresUnknownBits reports whether the peer set a required bit this
// implementation does not know in the init context.
func (f InitFeatures) RequiresUnknownBits() bool {
	return f.v.requiresUnknownBits(initKnownMask)
}

// SupportsUnknownBits reports whether any bit, required or optional, is set
// outside the init context's known positions.
func (f InitFeatures) SupportsUnknownBits() bool {
	return f.v.supportsUnknownBits(initKnownMask)
}

func (f InitFeatures) SupportsDataLossProtect() bool {
	return DataLossProtect.Supported(f.v.flags)
}

func (f *InitFeatures) SetDataLossProtect() {
	f.v.flags = DataLossProtect.SetOptional(f.v.flags)
}

// InitialRoutingSync reports whether the peer asked for a full routing table
// dump. Only the odd bit exists for this capability.
func (f InitFeatures) InitialRoutingSync() bool {
	return InitialRoutingSync.Supported(f.v.flags)
}

func (f *InitFeatures) SetInitialRoutingSync() {
	f.v.flags = InitialRoutingSync.SetOptional(f.v.flags)
}

func (f *InitFeatures) ClearInitialRoutingSync() {
	InitialRoutingSync.ClearBits(f.v.flags)
}

func (f InitFeatures) SupportsUpfrontShutdownScript() bool {
	return UpfrontShutdownScript.Supported(f.v.flags)
}

func (f *InitFeatures) SetUpfrontShutdownScript() {
	f.v.flags = UpfrontShutdownScript.SetOptional(f.v.flags)
}

func (f *InitFeatures) ClearUpfrontShutdownScript() {
	UpfrontShutdownScript.ClearBits(f.v.flags)
}

func (f InitFeatures) SupportsVariableLengthOnion() bool {
	return VariableLengthOnion.Supported(f.v.flags)
}

func (f *InitFeatures) SetVariableLengthOnion() {
	f.v.flags = VariableLengthOnion.SetOptional(f.v.flags)
}

func (f InitFeatures) SupportsPaymentSecret() bool {
	return PaymentSecret.Supported(f.v.flags)
}

func (f *InitFeatures) SetPaymentSecret() {
	f.v.flags = PaymentSecret.SetOptional(f.v.flags)
}

func (f InitFeatures) SupportsBasicMPP() bool {
	return BasicMPP.Supported(f.v.flags)
}

func (f *InitFeatures) SetBasicMPP() {
	f.v.flags = BasicMPP.SetOptional(f.v.flags)
}
